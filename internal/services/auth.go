package services

import (
  "context"
  "fmt"
  "time"

  "github.com/golang-jwt/jwt/v5"
  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/jcastell/wellness-backend/internal/logger"
  "github.com/jcastell/wellness-backend/internal/repos"
  "github.com/jcastell/wellness-backend/internal/requestdata"
  "github.com/jcastell/wellness-backend/internal/types"
  "github.com/jcastell/wellness-backend/internal/utils"
)

type RegisterInput struct {
  Email         string
  Name          string
  Password      string
  Age           *int
  Gender        *string
  Height        *float64
  Weight        *float64
  ActivityLevel *string
}

type AuthService interface {
  Register(ctx context.Context, input RegisterInput) (*types.User, error)
  Login(ctx context.Context, email, password string) (string, error)
  ContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
  AccessTTL() time.Duration
}

type authService struct {
  db           *gorm.DB
  log          *logger.Logger
  userRepo     repos.UserRepo
  jwtSecretKey string
  accessTTL    time.Duration
}

func NewAuthService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo, jwtSecretKey string, accessTTL time.Duration) AuthService {
  serviceLog := log.With("service", "AuthService")
  return &authService{
    db:           db,
    log:          serviceLog,
    userRepo:     userRepo,
    jwtSecretKey: jwtSecretKey,
    accessTTL:    accessTTL,
  }
}

type jwtClaims struct {
  Role string `json:"role"`
  jwt.RegisteredClaims
}

func (as *authService) Register(ctx context.Context, input RegisterInput) (*types.User, error) {
  email := utils.NormalizeEmail(input.Email)
  if email == "" {
    return nil, fmt.Errorf("an email is required to register: %w", ErrValidation)
  }
  if input.Password == "" {
    return nil, fmt.Errorf("a password is required to register: %w", ErrValidation)
  }
  if input.Name == "" {
    return nil, fmt.Errorf("a name is required to register: %w", ErrValidation)
  }

  exists, err := as.userRepo.EmailExists(ctx, nil, email)
  if err != nil {
    return nil, fmt.Errorf("failed to check user email: %w", err)
  }
  if exists {
    return nil, fmt.Errorf("email already registered: %w", ErrAlreadyExists)
  }

  hashed, err := utils.HashPassword(input.Password)
  if err != nil {
    return nil, err
  }

  user := &types.User{
    ID:            uuid.New(),
    Email:         email,
    Password:      hashed,
    Name:          input.Name,
    Age:           input.Age,
    Gender:        input.Gender,
    Height:        input.Height,
    Weight:        input.Weight,
    ActivityLevel: input.ActivityLevel,
    Role:          types.RoleUser,
  }

  if err := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    return as.userRepo.Create(ctx, tx, user)
  }); err != nil {
    as.log.Warn("Failed to create user", "error", err)
    return nil, fmt.Errorf("failed to create user: %w", err)
  }
  return user, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (string, error) {
  email = utils.NormalizeEmail(email)
  if email == "" || password == "" {
    return "", fmt.Errorf("email and password are required to login: %w", ErrValidation)
  }

  user, err := as.userRepo.GetByEmail(ctx, nil, email)
  if err != nil {
    return "", fmt.Errorf("error retrieving user by email: %w", err)
  }
  if user == nil || !utils.CheckPassword(user.Password, password) {
    return "", fmt.Errorf("invalid credentials: %w", ErrUnauthorized)
  }

  claims := jwtClaims{
    Role: user.Role,
    RegisteredClaims: jwt.RegisteredClaims{
      Subject:   user.ID.String(),
      ExpiresAt: jwt.NewNumericDate(time.Now().Add(as.accessTTL)),
      IssuedAt:  jwt.NewNumericDate(time.Now()),
    },
  }
  token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
  signed, err := token.SignedString([]byte(as.jwtSecretKey))
  if err != nil {
    return "", fmt.Errorf("failed to sign access token: %w", err)
  }
  return signed, nil
}

func (as *authService) ContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
  parsedToken, err := jwt.ParseWithClaims(tokenString, &jwtClaims{}, func(token *jwt.Token) (interface{}, error) {
    if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
      return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
    }
    return []byte(as.jwtSecretKey), nil
  })
  if err != nil {
    return ctx, fmt.Errorf("failed to parse token: %w", ErrUnauthorized)
  }
  claims, ok := parsedToken.Claims.(*jwtClaims)
  if !ok || !parsedToken.Valid {
    return ctx, fmt.Errorf("invalid or expired token: %w", ErrUnauthorized)
  }
  userID, err := uuid.Parse(claims.Subject)
  if err != nil {
    return ctx, fmt.Errorf("invalid user id in token: %w", ErrUnauthorized)
  }
  rd := &requestdata.RequestData{
    UserID: userID,
    Role:   claims.Role,
  }
  return requestdata.WithRequestData(ctx, rd), nil
}

func (as *authService) AccessTTL() time.Duration {
  return as.accessTTL
}
