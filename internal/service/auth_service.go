package service

import (
	"context"

	"go-inventory-tracker/internal/apperr"
	"go-inventory-tracker/internal/model"
	"go-inventory-tracker/internal/repository"
	"go-inventory-tracker/pkg/jwt"
	"go-inventory-tracker/pkg/validator"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (*LoginResponse, error)
	Logout(ctx context.Context, userID uuid.UUID) error
	ResetPassword(ctx context.Context, req ResetPasswordRequest) error
	// SetPassword is the administrative reset used by the CLI; it skips the old password check
	SetPassword(ctx context.Context, email, newPassword string) error
	// Authenticate verifies the token signature and the user's current session version
	Authenticate(ctx context.Context, tokenString string) (*Session, error)
	ValidateToken(ctx context.Context, tokenString string) (*TokenValidationResponse, error)
}

type LoginResponse struct {
	Token      string             `json:"token"`
	User       model.UserResponse `json:"user"`
	Role       *model.Role        `json:"role"`
	Privileges []string           `json:"privileges"`
}

type TokenValidationResponse struct {
	User       model.UserResponse `json:"user"`
	Role       *model.Role        `json:"role"`
	Privileges []string           `json:"privileges"`
}

// Session is an authenticated request's identity
type Session struct {
	UserID     uuid.UUID
	Actor      Actor
	Privileges []string
	User       *model.User
}

type authService struct {
	userRepo repository.UserRepository
	tokens   *jwt.Manager
	log      zerolog.Logger
}

func NewAuthService(userRepo repository.UserRepository, tokens *jwt.Manager, log zerolog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		log:      log.With().Str("component", "auth").Logger(),
	}
}

var errInvalidCredentials = apperr.Unauthorized("invalid email or password")

func (s *authService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := validator.Validate(&req); err != nil {
		return nil, err
	}

	// 1. Find user by email
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, errInvalidCredentials
		}
		return nil, err
	}

	// 2. Check if user is active
	if !user.IsActive {
		return nil, apperr.Forbidden("user account is inactive")
	}

	// 3. Verify password
	if !user.CheckPassword(req.Password) {
		return nil, errInvalidCredentials
	}

	// 4. Single session: a new token version invalidates older tokens
	version := uuid.New().String()
	if err := s.userRepo.UpdateTokenVersion(ctx, user.ID, version); err != nil {
		return nil, err
	}

	roleCode := ""
	if user.Role != nil {
		roleCode = user.Role.Code
	}
	token, err := s.tokens.GenerateToken(user.ID, user.Email, user.FullName, roleCode, user.GetPrivilegeCodes(), version)
	if err != nil {
		return nil, apperr.Store(err)
	}

	s.log.Info().Str("user_id", user.ID.String()).Msg("user logged in")
	return &LoginResponse{
		Token:      token,
		User:       user.ToResponse(),
		Role:       user.Role,
		Privileges: user.GetPrivilegeCodes(),
	}, nil
}

func (s *authService) Logout(ctx context.Context, userID uuid.UUID) error {
	if err := s.userRepo.UpdateTokenVersion(ctx, userID, uuid.New().String()); err != nil {
		return err
	}
	s.log.Info().Str("user_id", userID.String()).Msg("user logged out")
	return nil
}

func (s *authService) ResetPassword(ctx context.Context, req ResetPasswordRequest) error {
	if err := validator.Validate(&req); err != nil {
		return err
	}
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return errInvalidCredentials
		}
		return err
	}
	if !user.CheckPassword(req.OldPassword) {
		return errInvalidCredentials
	}
	return s.replacePassword(ctx, user, req.NewPassword)
}

func (s *authService) SetPassword(ctx context.Context, email, newPassword string) error {
	if len(newPassword) < 8 {
		return apperr.Validation("password must be at least 8 characters")
	}
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return err
	}
	return s.replacePassword(ctx, user, newPassword)
}

// replacePassword stores the new hash and revokes every open session
func (s *authService) replacePassword(ctx context.Context, user *model.User, password string) error {
	if err := user.SetPassword(password); err != nil {
		return apperr.Validation("password cannot be used: %v", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, user.ID, user.Password); err != nil {
		return err
	}
	if err := s.userRepo.UpdateTokenVersion(ctx, user.ID, uuid.New().String()); err != nil {
		return err
	}
	s.log.Info().Str("user_id", user.ID.String()).Msg("password changed")
	return nil
}

func (s *authService) Authenticate(ctx context.Context, tokenString string) (*Session, error) {
	// 1. Validate JWT token
	claims, err := s.tokens.ValidateToken(tokenString)
	if err != nil {
		return nil, apperr.Unauthorized(err.Error())
	}

	// 2. Check strict session against DB
	user, err := s.userRepo.FindByID(ctx, claims.UserID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.Unauthorized("user not found")
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperr.Unauthorized("user account is inactive")
	}
	if user.TokenVersion != claims.TokenVersion {
		return nil, apperr.Unauthorized("session expired (logged out or logged in elsewhere)")
	}

	return &Session{
		UserID:     user.ID,
		Actor:      Actor{ID: user.ID.String(), Name: user.FullName, Email: user.Email},
		Privileges: user.GetPrivilegeCodes(),
		User:       user,
	}, nil
}

func (s *authService) ValidateToken(ctx context.Context, tokenString string) (*TokenValidationResponse, error) {
	session, err := s.Authenticate(ctx, tokenString)
	if err != nil {
		return nil, err
	}
	return &TokenValidationResponse{
		User:       session.User.ToResponse(),
		Role:       session.User.Role,
		Privileges: session.Privileges,
	}, nil
}
