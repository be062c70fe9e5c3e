package auth

import (
	"context"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/aliffarhan/threadmart-backend/internal/users"
	pkgauth "github.com/aliffarhan/threadmart-backend/pkg/auth"
	"github.com/aliffarhan/threadmart-backend/pkg/config"
	"github.com/aliffarhan/threadmart-backend/pkg/db/models"
	"github.com/aliffarhan/threadmart-backend/pkg/enums"
	pkgerrors "github.com/aliffarhan/threadmart-backend/pkg/errors"
	"github.com/aliffarhan/threadmart-backend/pkg/security"
	"github.com/google/uuid"
)

type stubUserRepo struct {
	createFn      func(ctx context.Context, dto users.CreateUserDTO) (*models.User, error)
	findByEmailFn func(ctx context.Context, email string) (*models.User, error)
}

func (s *stubUserRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error) {
	return s.createFn(ctx, dto)
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.findByEmailFn(ctx, email)
}

type stubSessionStore struct {
	stored  []string
	revoked []string
	err     error
}

func (s *stubSessionStore) PutSession(_ context.Context, sessionID string, _ time.Duration) error {
	if s.err != nil {
		return s.err
	}
	s.stored = append(s.stored, sessionID)
	return nil
}

func (s *stubSessionStore) RevokeSession(_ context.Context, sessionID string) error {
	if s.err != nil {
		return s.err
	}
	s.revoked = append(s.revoked, sessionID)
	return nil
}

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "threadmart-test",
		ExpirationMinutes: 15,
		SessionTTLMinutes: 60,
	}
}

func testPasswordConfig() config.PasswordConfig {
	return config.PasswordConfig{
		ArgonMemoryKB:    8192,
		ArgonTime:        1,
		ArgonParallelism: 1,
		ArgonSaltLen:     16,
		ArgonKeyLen:      32,
	}
}

func newService(t *testing.T, repo userRepository, sessions sessionStore) Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		UserRepo:    repo,
		Sessions:    sessions,
		JWTConfig:   testJWTConfig(),
		PasswordCfg: testPasswordConfig(),
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestRegisterIssuesTokenAndSession(t *testing.T) {
	t.Parallel()

	var created users.CreateUserDTO
	repo := &stubUserRepo{
		findByEmailFn: func(context.Context, string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
		createFn: func(_ context.Context, dto users.CreateUserDTO) (*models.User, error) {
			created = dto
			user := dto.ToModel()
			user.ID = uuid.New()
			return user, nil
		},
	}
	sessions := &stubSessionStore{}
	svc := newService(t, repo, sessions)

	resp, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "  Amira@Example.COM ",
		Password: "hunter22throwaway",
		FullName: "Amira Hassan",
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	if created.Email != "amira@example.com" {
		t.Fatalf("email not normalized: %q", created.Email)
	}
	if created.PasswordHash == "" || created.PasswordHash == "hunter22throwaway" {
		t.Fatalf("password not hashed: %q", created.PasswordHash)
	}
	ok, err := security.VerifyPassword("hunter22throwaway", created.PasswordHash)
	if err != nil || !ok {
		t.Fatalf("stored hash does not verify: %v", err)
	}

	if resp.AccessToken == "" || resp.User == nil {
		t.Fatalf("incomplete response: %+v", resp)
	}
	claims, err := pkgauth.ParseAccessToken(testJWTConfig(), resp.AccessToken)
	if err != nil {
		t.Fatalf("ParseAccessToken: %v", err)
	}
	if claims.Email != "amira@example.com" || claims.Role != enums.UserRoleCustomer {
		t.Fatalf("unexpected claims: %+v", claims)
	}
	if len(sessions.stored) != 1 || sessions.stored[0] != claims.ID {
		t.Fatalf("session jti mismatch: %v vs %s", sessions.stored, claims.ID)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	t.Parallel()

	repo := &stubUserRepo{
		findByEmailFn: func(context.Context, string) (*models.User, error) {
			return &models.User{ID: uuid.New()}, nil
		},
	}
	svc := newService(t, repo, &stubSessionStore{})

	_, err := svc.Register(context.Background(), RegisterRequest{
		Email:    "amira@example.com",
		Password: "hunter22throwaway",
		FullName: "Amira Hassan",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestRegisterRejectsWeakInput(t *testing.T) {
	t.Parallel()

	svc := newService(t, &stubUserRepo{}, &stubSessionStore{})

	cases := map[string]RegisterRequest{
		"bad email":      {Email: "not-an-email", Password: "hunter22throwaway", FullName: "A"},
		"short password": {Email: "a@example.com", Password: "short", FullName: "A"},
		"no name":        {Email: "a@example.com", Password: "hunter22throwaway", FullName: "  "},
	}
	for name, req := range cases {
		_, err := svc.Register(context.Background(), req)
		typed := pkgerrors.As(err)
		if typed == nil || typed.Code() != pkgerrors.CodeValidation {
			t.Fatalf("%s: expected validation error, got %v", name, err)
		}
	}
}

func TestLoginVerifiesPassword(t *testing.T) {
	t.Parallel()

	hash, err := security.HashPassword("hunter22throwaway", testPasswordConfig())
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	repo := &stubUserRepo{
		findByEmailFn: func(context.Context, string) (*models.User, error) {
			return &models.User{
				ID:           uuid.New(),
				Email:        "amira@example.com",
				PasswordHash: hash,
				FullName:     "Amira Hassan",
				Role:         enums.UserRoleCustomer,
			}, nil
		},
	}
	sessions := &stubSessionStore{}
	svc := newService(t, repo, sessions)

	resp, err := svc.Login(context.Background(), LoginRequest{
		Email:    "amira@example.com",
		Password: "hunter22throwaway",
	})
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if resp.AccessToken == "" || len(sessions.stored) != 1 {
		t.Fatalf("incomplete login: %+v, sessions %v", resp, sessions.stored)
	}

	// Wrong password and unknown user both return the same generic message.
	_, err = svc.Login(context.Background(), LoginRequest{
		Email:    "amira@example.com",
		Password: "wrong-password",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if typed.Message() != invalidCredentialsMessage {
		t.Fatalf("leaky message: %q", typed.Message())
	}
}

func TestLogoutRevokesSession(t *testing.T) {
	t.Parallel()

	sessions := &stubSessionStore{}
	svc := newService(t, &stubUserRepo{}, sessions)

	jti := uuid.NewString()
	if err := svc.Logout(context.Background(), jti); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if len(sessions.revoked) != 1 || sessions.revoked[0] != jti {
		t.Fatalf("session not revoked: %v", sessions.revoked)
	}

	err := svc.Logout(context.Background(), "  ")
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized for blank session id, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	t.Parallel()

	repo := &stubUserRepo{
		findByEmailFn: func(context.Context, string) (*models.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
	}
	svc := newService(t, repo, &stubSessionStore{})

	_, err := svc.Login(context.Background(), LoginRequest{
		Email:    "ghost@example.com",
		Password: "whatever123",
	})
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeUnauthorized {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}
