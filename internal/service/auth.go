package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/iliyamo/localrot/internal/model"
	"github.com/iliyamo/localrot/internal/repository"
	"github.com/iliyamo/localrot/internal/utils"
)

// AuthOptions controls password hashing and token issuance.
type AuthOptions struct {
	PasswordScheme string
	BcryptCost     int
	JWTSecret      string
	AccessTTLMin   int
}

// AuthService registers and authenticates users.
type AuthService struct {
	Users repository.UserStore
	Opts  AuthOptions
	Now   func() time.Time
}

func NewAuthService(users repository.UserStore, opts AuthOptions) *AuthService {
	return &AuthService{Users: users, Opts: opts, Now: time.Now}
}

// LoginResult is a successful login.
type LoginResult struct {
	User  model.User
	Token utils.AccessToken
}

// Register creates a user.  Both fields are required; a taken username
// yields ErrUsernameTaken.
func (s *AuthService) Register(ctx context.Context, username, password string) (model.User, error) {
	if username == "" || password == "" {
		return model.User{}, invalid("Missing fields")
	}
	hash, err := utils.HashPassword(password, s.Opts.PasswordScheme, s.Opts.BcryptCost)
	if err != nil {
		return model.User{}, fmt.Errorf("hash password: %w", err)
	}
	id, err := utils.NewID(utils.PrefixUser)
	if err != nil {
		return model.User{}, fmt.Errorf("generate user id: %w", err)
	}
	u := model.User{ID: id, Username: username, Password: hash, CreatedAt: s.Now().UnixMilli()}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return model.User{}, ErrUsernameTaken
		}
		return model.User{}, fmt.Errorf("save user: %w", err)
	}
	log.WithFields(log.Fields{"user_id": u.ID, "username": u.Username}).Info("user registered")
	return u, nil
}

// Login verifies the credentials and issues an access token.  Unknown
// users and wrong passwords are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		return LoginResult{}, ErrInvalidCredentials
	}
	if err != nil {
		return LoginResult{}, fmt.Errorf("load user: %w", err)
	}
	if !utils.VerifyPassword(u.Password, password) {
		return LoginResult{}, ErrInvalidCredentials
	}
	tok, err := utils.NewAccessToken(s.Opts.JWTSecret, u.ID, u.Username, s.Opts.AccessTTLMin)
	if err != nil {
		return LoginResult{}, fmt.Errorf("issue token: %w", err)
	}
	return LoginResult{User: u, Token: tok}, nil
}
