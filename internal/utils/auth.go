package utils

import (
  "fmt"
  "strings"

  "golang.org/x/crypto/bcrypt"
)

func NormalizeEmail(email string) string {
  return strings.ToLower(strings.TrimSpace(email))
}

func HashPassword(password string) (string, error) {
  hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
  if err != nil {
    return "", fmt.Errorf("failed to hash password: %w", err)
  }
  return string(hashed), nil
}

func CheckPassword(hashed, plain string) bool {
  return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(plain)) == nil
}
