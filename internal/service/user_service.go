// Package service contains the application's business logic.
package service

import (
	"context"

	"pressroom/internal/auth"
	"pressroom/internal/models"
	"pressroom/internal/repository"
	"pressroom/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// bcryptCost trades login latency for resistance to offline cracking.
const bcryptCost = 12

type UserService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenService
}

type RegisterInput struct {
	Email    string
	Password string
}

// ProvisionUserInput is the admin-issued registration payload. Role may be
// any valid role, including another admin.
type ProvisionUserInput struct {
	Email    string
	Password string
	Role     string
}

type Credentials struct {
	Email    string
	Password string
}

// AuthResult pairs a fresh token with the account it identifies.
type AuthResult struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

func NewUserService(userRepo repository.UserRepository, tokens *auth.TokenService) *UserService {
	return &UserService{userRepo: userRepo, tokens: tokens}
}

// Register creates a self-service account. The role is always reader no
// matter what the caller sends.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	return s.createAccount(ctx, in.Email, in.Password, models.RoleReader)
}

// RegisterWithRole creates an account with an arbitrary role. Only admins may
// call it; everyone else gets Forbidden before any input is inspected.
func (s *UserService) RegisterWithRole(ctx context.Context, actor auth.Identity, in ProvisionUserInput) (*AuthResult, error) {
	if err := auth.RequireRole(actor, models.UserProvisioners); err != nil {
		return nil, err
	}

	role, ok := models.ParseRole(in.Role)
	if !ok {
		return nil, models.NewValidationError("Invalid role")
	}

	return s.createAccount(ctx, in.Email, in.Password, role)
}

func (s *UserService) createAccount(ctx context.Context, email, password string, role models.Role) (*AuthResult, error) {
	email = validation.NormalizeEmail(email)
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.NewConflictError("Email already registered")
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Email:    email,
		Password: string(digest),
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// Login verifies credentials and issues a token. An unknown email and a wrong
// password produce the same error, so neither case confirms an account exists.
func (s *UserService) Login(ctx context.Context, in Credentials) (*AuthResult, error) {
	email := validation.NormalizeEmail(in.Email)

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, models.NewUnauthenticatedError("Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		return nil, models.NewUnauthenticatedError("Invalid credentials")
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	return &AuthResult{Token: token, User: user}, nil
}

// GetUserByID fetches a single account.
func (s *UserService) GetUserByID(ctx context.Context, id uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
