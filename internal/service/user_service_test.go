package service

import (
	"context"
	"errors"
	"testing"

	"jobboard/internal/models"
	"jobboard/internal/observability"
	"jobboard/internal/repository"
	"jobboard/internal/security"
	"jobboard/internal/testutil"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "service-test-secret-0123456789abcdef"

func newUserService(repo repository.UserRepository) (*UserService, *security.TokenIssuer) {
	tokens := security.NewTokenIssuer(testSecret)
	return NewUserService(repo, tokens).WithHashCost(bcrypt.MinCost), tokens
}

func TestUserService_Register_Validation(t *testing.T) {
	t.Parallel()

	svc, _ := newUserService(noopUserRepo())
	ctx := context.Background()

	tests := []struct {
		name    string
		input   RegisterInput
		message string
	}{
		{
			name:    "missing name",
			input:   RegisterInput{Email: "a@example.com", Password: "secret123", Role: models.RoleJobSeeker},
			message: "All fields are required",
		},
		{
			name:    "missing role",
			input:   RegisterInput{Name: "Ada", Email: "a@example.com", Password: "secret123"},
			message: "All fields are required",
		},
		{
			name:    "unknown role",
			input:   RegisterInput{Name: "Ada", Email: "a@example.com", Password: "secret123", Role: "admin"},
			message: "Role must be jobSeeker or recruiter",
		},
		{
			name:    "bad email",
			input:   RegisterInput{Name: "Ada", Email: "not-an-email", Password: "secret123", Role: models.RoleRecruiter},
			message: "Invalid email format",
		},
		{
			name:    "short password",
			input:   RegisterInput{Name: "Ada", Email: "a@example.com", Password: "abc1", Role: models.RoleRecruiter},
			message: "Password must be at least 8 characters long",
		},
		{
			name:    "password without digit",
			input:   RegisterInput{Name: "Ada", Email: "a@example.com", Password: "abcdefgh", Role: models.RoleRecruiter},
			message: "Password must contain at least one digit",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Register(ctx, tc.input)
			assertAppError(t, err, models.CodeValidation, tc.message)
		})
	}
}

func TestUserService_Register_NormalizesAndHashes(t *testing.T) {
	t.Parallel()

	var saved *models.User
	repo := noopUserRepo()
	repo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
		assert.Equal(t, "ada@example.com", email)
		return nil, nil
	}
	repo.createFn = func(_ context.Context, u *models.User) error {
		u.ID = 7
		saved = u
		return nil
	}
	svc, _ := newUserService(repo)

	user, err := svc.Register(context.Background(), RegisterInput{
		Name: "  Ada Lovelace ", Email: " Ada@Example.COM ", Password: "analytical1", Role: models.RoleRecruiter,
	})
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, "Ada Lovelace", user.Name)
	assert.Equal(t, "ada@example.com", user.Email)
	assert.NotEqual(t, "analytical1", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("analytical1")))
}

func TestUserService_Register_Duplicate(t *testing.T) {
	t.Parallel()

	t.Run("pre-check", func(t *testing.T) {
		repo := noopUserRepo()
		repo.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) {
			return &models.User{ID: 1}, nil
		}
		repo.createFn = func(_ context.Context, _ *models.User) error {
			t.Fatal("create must not be called for a known email")
			return nil
		}
		svc, _ := newUserService(repo)
		_, err := svc.Register(context.Background(), RegisterInput{
			Name: "Ada", Email: "ada@example.com", Password: "secret123", Role: models.RoleJobSeeker,
		})
		assert.ErrorIs(t, err, models.ErrEmailTaken)
	})

	t.Run("unique index", func(t *testing.T) {
		db := testutil.NewSQLiteDB(t)
		svc, _ := newUserService(repository.NewUserRepository(db))
		in := RegisterInput{Name: "Ada", Email: "ada@example.com", Password: "secret123", Role: models.RoleJobSeeker}

		_, err := svc.Register(context.Background(), in)
		require.NoError(t, err)

		in.Email = "ADA@example.com"
		_, err = svc.Register(context.Background(), in)
		assert.ErrorIs(t, err, models.ErrEmailTaken)
		assertAppError(t, err, models.CodeConflict, "User already exists")
	})
}

func TestUserService_Login(t *testing.T) {
	db := testutil.NewSQLiteDB(t)
	svc, tokens := newUserService(repository.NewUserRepository(db))
	ctx := context.Background()

	registered, err := svc.Register(ctx, RegisterInput{
		Name: "Grace", Email: "grace@example.com", Password: "compiler42", Role: models.RoleRecruiter,
	})
	require.NoError(t, err)

	tests := []struct {
		name    string
		input   LoginInput
		outcome string
		message string
	}{
		{
			name:    "unknown email",
			input:   LoginInput{Email: "nobody@example.com", Password: "compiler42", Role: models.RoleRecruiter},
			outcome: observability.LoginUnknownEmail,
			message: "User not found with this email",
		},
		{
			name:    "wrong role",
			input:   LoginInput{Email: "grace@example.com", Password: "compiler42", Role: models.RoleJobSeeker},
			outcome: observability.LoginRoleMismatch,
			message: "Role does not match the registered account",
		},
		{
			name:    "wrong password",
			input:   LoginInput{Email: "grace@example.com", Password: "compiler43", Role: models.RoleRecruiter},
			outcome: observability.LoginBadPassword,
			message: "Password is incorrect",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			before := promtest.ToFloat64(observability.LoginAttempts.WithLabelValues(tc.outcome))
			_, err := svc.Login(ctx, tc.input)
			assertAppError(t, err, models.CodeUnauthorized, tc.message)
			assert.Equal(t, before+1, promtest.ToFloat64(observability.LoginAttempts.WithLabelValues(tc.outcome)))
		})
	}

	t.Run("success", func(t *testing.T) {
		result, err := svc.Login(ctx, LoginInput{Email: " GRACE@example.com", Password: "compiler42", Role: models.RoleRecruiter})
		require.NoError(t, err)
		assert.Equal(t, registered.ID, result.User.ID)

		claims, err := tokens.Verify(result.Token)
		require.NoError(t, err)
		assert.Equal(t, registered.ID, claims.UserID)
		assert.Equal(t, "grace@example.com", claims.Email)
		assert.Equal(t, models.RoleRecruiter, claims.Role)
	})
}

func TestUserService_Login_RepositoryFailure(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.getByEmailFn = func(_ context.Context, _ string) (*models.User, error) {
		return nil, models.NewInternalError(errors.New("connection refused"))
	}
	svc, _ := newUserService(repo)

	_, err := svc.Login(context.Background(), LoginInput{Email: "a@example.com", Password: "x", Role: models.RoleJobSeeker})
	assertAppError(t, err, models.CodeInternal, "")
}

func TestUserService_Profile(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.getByIDFn = func(_ context.Context, id uint) (*models.User, error) {
		if id == 3 {
			return &models.User{ID: 3, Name: "Linus"}, nil
		}
		return nil, models.ErrUserNotFound
	}
	svc, _ := newUserService(repo)

	user, err := svc.Profile(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, "Linus", user.Name)

	_, err = svc.Profile(context.Background(), 4)
	assertAppError(t, err, models.CodeNotFound, "User not found")
}
