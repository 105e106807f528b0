package services

import (
  "context"
  "fmt"

  "github.com/google/uuid"
  "gorm.io/gorm"

  "github.com/jcastell/wellness-backend/internal/logger"
  "github.com/jcastell/wellness-backend/internal/repos"
  "github.com/jcastell/wellness-backend/internal/requestdata"
  "github.com/jcastell/wellness-backend/internal/types"
)

type UserUpdateInput struct {
  Name          *string
  Age           *int
  Gender        *string
  Height        *float64
  Weight        *float64
  ActivityLevel *string
}

type UserService interface {
  GetMe(ctx context.Context) (*types.User, error)
  UpdateMe(ctx context.Context, input UserUpdateInput) (*types.User, error)
  GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error)
  ListAll(ctx context.Context) ([]*types.User, error)
}

type userService struct {
  db       *gorm.DB
  log      *logger.Logger
  userRepo repos.UserRepo
}

func NewUserService(db *gorm.DB, log *logger.Logger, userRepo repos.UserRepo) UserService {
  serviceLog := log.With("service", "UserService")
  return &userService{db: db, log: serviceLog, userRepo: userRepo}
}

func callerID(ctx context.Context) (uuid.UUID, error) {
  rd := requestdata.GetRequestData(ctx)
  if rd == nil || rd.UserID == uuid.Nil {
    return uuid.Nil, fmt.Errorf("request identity not set: %w", ErrUnauthorized)
  }
  return rd.UserID, nil
}

func (us *userService) GetMe(ctx context.Context) (*types.User, error) {
  userID, err := callerID(ctx)
  if err != nil {
    return nil, err
  }
  user, err := us.userRepo.GetByID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("error fetching user: %w", err)
  }
  if user == nil {
    return nil, fmt.Errorf("user does not exist: %w", ErrNotFound)
  }
  return user, nil
}

func (us *userService) UpdateMe(ctx context.Context, input UserUpdateInput) (*types.User, error) {
  userID, err := callerID(ctx)
  if err != nil {
    return nil, err
  }

  var out *types.User
  if err := us.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
    user, err := us.userRepo.GetByID(ctx, tx, userID)
    if err != nil {
      return fmt.Errorf("error fetching user: %w", err)
    }
    if user == nil {
      return fmt.Errorf("user does not exist: %w", ErrNotFound)
    }

    if input.Name != nil {
      user.Name = *input.Name
    }
    if input.Age != nil {
      user.Age = input.Age
    }
    if input.Gender != nil {
      user.Gender = input.Gender
    }
    if input.Height != nil {
      user.Height = input.Height
    }
    if input.Weight != nil {
      user.Weight = input.Weight
    }
    if input.ActivityLevel != nil {
      user.ActivityLevel = input.ActivityLevel
    }

    if err := us.userRepo.Update(ctx, tx, user); err != nil {
      return fmt.Errorf("failed to update user: %w", err)
    }
    out = user
    return nil
  }); err != nil {
    return nil, err
  }
  return out, nil
}

func (us *userService) GetByID(ctx context.Context, userID uuid.UUID) (*types.User, error) {
  user, err := us.userRepo.GetByID(ctx, nil, userID)
  if err != nil {
    return nil, fmt.Errorf("error fetching user: %w", err)
  }
  if user == nil {
    return nil, fmt.Errorf("user not found: %w", ErrNotFound)
  }
  return user, nil
}

func (us *userService) ListAll(ctx context.Context) ([]*types.User, error) {
  users, err := us.userRepo.ListAll(ctx, nil)
  if err != nil {
    return nil, fmt.Errorf("error listing users: %w", err)
  }
  return users, nil
}
