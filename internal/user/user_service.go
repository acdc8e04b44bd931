package user

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"friendgraph/internal/common"
	"friendgraph/internal/dbsql"
	"friendgraph/internal/relation"

	"go.uber.org/zap"
)

//go:generate mockgen -destination=mock_service_test.go -package=user friendgraph/internal/user UserService,FriendService

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// UserService handles signup and login; it is the identity collaborator the
// friend operations rely on.
type UserService interface {
	RegisterUser(ctx context.Context, email, name, password string) (*dbsql.User, string, error)
	LoginUser(ctx context.Context, email, password string) (*dbsql.User, string, error)
	GetProfile(ctx context.Context, userID uint64) (*dbsql.User, error)
}

type userService struct {
	userRepo UserRepository
	tokens   *common.TokenManager
	log      *zap.Logger
}

func NewUserService(userRepo UserRepository, tokens *common.TokenManager, log *zap.Logger) UserService {
	return &userService{userRepo: userRepo, tokens: tokens, log: log.Named("users")}
}

func (s *userService) RegisterUser(ctx context.Context, email, name, password string) (*dbsql.User, string, error) {
	if err := common.ValidateEmail(email); err != nil {
		return nil, "", err
	}
	if err := common.ValidateName(name); err != nil {
		return nil, "", err
	}
	if err := common.ValidatePassword(password); err != nil {
		return nil, "", err
	}

	email = common.NormalizeEmail(email)
	exists, err := s.userRepo.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, "", ErrEmailTaken
	}

	hashed, err := common.HashPassword(password)
	if err != nil {
		return nil, "", fmt.Errorf("hash password: %w", err)
	}

	user := &dbsql.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hashed,
	}
	// A concurrent signup can still win the unique index after the check above.
	if err := s.userRepo.CreateUser(ctx, user); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return nil, "", ErrEmailTaken
		}
		return nil, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.GenerateToken(user.UserID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	s.log.Info("user registered", zap.Uint64("user_id", user.UserID))
	return user, token, nil
}

func (s *userService) LoginUser(ctx context.Context, email, password string) (*dbsql.User, string, error) {
	if strings.TrimSpace(email) == "" || password == "" {
		return nil, "", fmt.Errorf("%w: email and password required", relation.ErrValidation)
	}

	user, err := s.userRepo.GetUserByEmail(ctx, email)
	if errors.Is(err, relation.ErrUserNotFound) {
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if err := common.CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, common.ErrPasswordMismatch) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("check password: %w", err)
	}

	token, err := s.tokens.GenerateToken(user.UserID, user.Email)
	if err != nil {
		return nil, "", fmt.Errorf("generate token: %w", err)
	}
	return user, token, nil
}

func (s *userService) GetProfile(ctx context.Context, userID uint64) (*dbsql.User, error) {
	return s.userRepo.GetUserByID(ctx, userID)
}
