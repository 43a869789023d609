package service

import (
	"context"
	"errors"
	"strings"

	"jobboard/internal/models"
	"jobboard/internal/observability"
	"jobboard/internal/repository"
	"jobboard/internal/security"
	"jobboard/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

// Login failure messages. They deliberately tell the caller which check failed.
const (
	msgUnknownEmail = "User not found with this email"
	msgRoleMismatch = "Role does not match the registered account"
	msgBadPassword  = "Password is incorrect"
)

type UserService struct {
	userRepo repository.UserRepository
	tokens   *security.TokenIssuer
	hashCost int
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     models.Role
}

type LoginInput struct {
	Email    string
	Password string
	Role     models.Role
}

// LoginResult is a signed token together with the account it was issued for.
type LoginResult struct {
	Token string
	User  *models.User
}

func NewUserService(userRepo repository.UserRepository, tokens *security.TokenIssuer) *UserService {
	return &UserService{userRepo: userRepo, tokens: tokens, hashCost: bcrypt.DefaultCost}
}

// WithHashCost overrides the bcrypt cost. Tests use bcrypt.MinCost.
func (s *UserService) WithHashCost(cost int) *UserService {
	s.hashCost = cost
	return s
}

func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, error) {
	ctx, end := observability.StartSpan(ctx, "UserService.Register")
	user, err := s.register(ctx, in)
	end(err)
	return user, err
}

func (s *UserService) register(ctx context.Context, in RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(in.Name)
	email := validation.NormalizeEmail(in.Email)
	if name == "" || email == "" || in.Password == "" || in.Role == "" {
		return nil, models.NewValidationError("All fields are required")
	}
	if !in.Role.Valid() {
		return nil, models.NewValidationError("Role must be jobSeeker or recruiter")
	}
	if err := validation.ValidateName(name); err != nil {
		return nil, models.NewValidationError(capitalize(err.Error()))
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, models.NewValidationError(capitalize(err.Error()))
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(capitalize(err.Error()))
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, models.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.hashCost)
	if err != nil {
		return nil, models.NewInternalError(err)
	}

	user := &models.User{
		Name:     name,
		Email:    email,
		Password: string(hash),
		Role:     in.Role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	ctx, end := observability.StartSpan(ctx, "UserService.Login")
	result, outcome, err := s.login(ctx, in)
	observability.LoginAttempts.WithLabelValues(outcome).Inc()
	end(err)
	return result, err
}

func (s *UserService) login(ctx context.Context, in LoginInput) (*LoginResult, string, error) {
	email := validation.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return nil, observability.LoginUnknownEmail, models.NewUnauthorizedError(msgUnknownEmail)
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, observability.LoginError, err
	}
	if user == nil {
		return nil, observability.LoginUnknownEmail, models.NewUnauthorizedError(msgUnknownEmail)
	}
	if user.Role != in.Role {
		return nil, observability.LoginRoleMismatch, models.NewUnauthorizedError(msgRoleMismatch)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(in.Password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return nil, observability.LoginBadPassword, models.NewUnauthorizedError(msgBadPassword)
		}
		return nil, observability.LoginError, models.NewInternalError(err)
	}

	token, err := s.tokens.Issue(user)
	if err != nil {
		return nil, observability.LoginError, models.NewInternalError(err)
	}
	return &LoginResult{Token: token, User: user}, observability.LoginSuccess, nil
}

func (s *UserService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}

func capitalize(msg string) string {
	if msg == "" {
		return msg
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}
