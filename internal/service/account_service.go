package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Bulletin/internal/auth"
	"github.com/lshigami/Bulletin/internal/dto"
	"github.com/lshigami/Bulletin/internal/errorz"
	"github.com/lshigami/Bulletin/internal/model"
	"github.com/lshigami/Bulletin/internal/repository"
	"github.com/lshigami/Bulletin/internal/validation"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
)

const msgUsernameTaken = "A user with that username already exists."

type AccountService interface {
	// Signup creates the account and logs it in.
	Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	Logout(ctx context.Context, claims *auth.Claims) error
	CurrentUser(ctx context.Context, id uint) (*model.User, error)
	Me(ctx context.Context, id uint) (*dto.UserResponse, error)
}

type accountService struct {
	repo       repository.UserRepository
	issuer     *auth.TokenIssuer
	now        Clock
	bcryptCost int
}

func NewAccountService(repo repository.UserRepository, issuer *auth.TokenIssuer, now Clock) AccountService {
	return &accountService{repo: repo, issuer: issuer, now: now, bcryptCost: bcrypt.DefaultCost}
}

func (s *accountService) Signup(ctx context.Context, req dto.SignupRequest) (*dto.AuthResponse, error) {
	in, err := validation.ValidateSignup(validation.SignupInput{
		Username:  req.Username,
		Email:     req.Email,
		Password1: req.Password1,
		Password2: req.Password2,
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.repo.FindByUsername(ctx, in.Username); err == nil {
		return nil, usernameTaken()
	} else if !errors.Is(err, errorz.ErrNotFound) {
		return nil, fmt.Errorf("lookup username: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password1), s.bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := model.User{
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		DateJoined:   s.now(),
	}
	if err := s.repo.Create(ctx, &user); err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, usernameTaken()
		}
		log.Error().Err(err).Str("username", in.Username).Msg("Failed to create user")
		return nil, fmt.Errorf("create user: %w", err)
	}
	log.Info().Uint("userID", user.ID).Str("username", user.Username).Msg("User signed up")

	return s.startSession(ctx, &user)
}

func (s *accountService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	in, err := validation.ValidateLogin(validation.LoginInput{Username: req.Username, Password: req.Password})
	if err != nil {
		return nil, err
	}
	user, err := s.repo.FindByUsername(ctx, in.Username)
	if err != nil {
		if errors.Is(err, errorz.ErrNotFound) {
			return nil, errorz.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		log.Warn().Str("username", in.Username).Msg("Login failed: wrong password")
		return nil, errorz.ErrInvalidCredentials
	}
	return s.startSession(ctx, user)
}

func (s *accountService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return nil
	}
	if err := s.issuer.Revoke(ctx, claims); err != nil {
		log.Error().Err(err).Str("username", claims.Username).Msg("Failed to revoke token")
		return fmt.Errorf("revoke token: %w", err)
	}
	log.Info().Str("username", claims.Username).Msg("User logged out")
	return nil
}

func (s *accountService) CurrentUser(ctx context.Context, id uint) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *accountService) Me(ctx context.Context, id uint) (*dto.UserResponse, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	var resp dto.UserResponse
	if err := copier.Copy(&resp, user); err != nil {
		return nil, fmt.Errorf("map user: %w", err)
	}
	return &resp, nil
}

func (s *accountService) startSession(ctx context.Context, user *model.User) (*dto.AuthResponse, error) {
	now := s.now()
	if err := s.repo.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, fmt.Errorf("update last login: %w", err)
	}
	user.LastLogin = &now

	token, claims, err := s.issuer.Issue(user)
	if err != nil {
		return nil, err
	}
	resp := &dto.AuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresAt:   claims.ExpiresAt.Time,
	}
	if err := copier.Copy(&resp.User, user); err != nil {
		return nil, fmt.Errorf("map user: %w", err)
	}
	return resp, nil
}

func usernameTaken() error {
	ve := &errorz.ValidationError{}
	ve.Add("username", msgUsernameTaken)
	return ve
}
