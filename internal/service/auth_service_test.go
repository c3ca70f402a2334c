package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/Smai-Software/lunardi-movimento-terra-sub000/config"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/dto"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/internal/model"
	"github.com/Smai-Software/lunardi-movimento-terra-sub000/pkg/jwt"
)

func setupTestAuthService(t *testing.T) (AuthService, *mockRepos, *jwt.Manager) {
	t.Helper()
	repo, mocks := newMockRepos()
	authCfg := &config.AuthConfig{
		JWTSecret:       "test-secret-test-secret",
		AccessTokenTTL:  15 * time.Minute,
		RefreshTokenTTL: 168 * time.Hour,
	}
	cfg := &config.Config{Auth: *authCfg}
	jwtMgr := jwt.NewManager(authCfg)
	svc := NewAuthService(cfg, repo, jwtMgr, nil, zap.NewNop())
	return svc, mocks, jwtMgr
}

func seedCredentialedUser(t *testing.T, mocks *mockRepos, id, email, password string, bloccato bool) *model.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user := &model.User{
		UserID:       id,
		Nome:         "Mario Rossi",
		Email:        email,
		PasswordHash: string(hash),
		Role:         model.RoleUser,
		Bloccato:     bloccato,
	}
	mocks.user.users[id] = user
	return user
}

func TestAuthService_Login_Success(t *testing.T) {
	svc, mocks, jwtMgr := setupTestAuthService(t)
	seedCredentialedUser(t, mocks, "user-001", "mario@lunardi.it", "segreta123", false)

	result, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "mario@lunardi.it", Password: "segreta123"})
	if err != nil {
		t.Fatalf("Login should succeed: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatal("expected a token pair")
	}

	claims, err := jwtMgr.ParseToken(result.AccessToken)
	if err != nil {
		t.Fatalf("access token should parse: %v", err)
	}
	if claims.UserID != "user-001" || claims.TokenType != "access" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	svc, mocks, _ := setupTestAuthService(t)
	seedCredentialedUser(t, mocks, "user-001", "mario@lunardi.it", "segreta123", false)

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "mario@lunardi.it", Password: "sbagliata"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "nessuno@lunardi.it", Password: "segreta123"}); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown email must not be distinguishable, got %v", err)
	}
}

func TestAuthService_Login_Bloccato(t *testing.T) {
	svc, mocks, _ := setupTestAuthService(t)
	seedCredentialedUser(t, mocks, "user-001", "mario@lunardi.it", "segreta123", true)

	if _, err := svc.Login(context.Background(), &dto.LoginRequest{Email: "mario@lunardi.it", Password: "segreta123"}); !errors.Is(err, ErrUserBloccato) {
		t.Errorf("expected ErrUserBloccato, got %v", err)
	}
}

func TestAuthService_Refresh(t *testing.T) {
	svc, mocks, jwtMgr := setupTestAuthService(t)
	seedCredentialedUser(t, mocks, "user-001", "mario@lunardi.it", "segreta123", false)

	refresh, err := jwtMgr.GenerateRefreshToken("user-001", model.RoleUser)
	if err != nil {
		t.Fatalf("refresh token: %v", err)
	}

	result, err := svc.Refresh(context.Background(), refresh)
	if err != nil {
		t.Fatalf("Refresh should succeed: %v", err)
	}
	if result.AccessToken == "" {
		t.Error("expected a new access token")
	}

	// an access token is not accepted as refresh token
	access, _ := jwtMgr.GenerateAccessToken("user-001", model.RoleUser)
	if _, err := svc.Refresh(context.Background(), access); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for access token, got %v", err)
	}

	if _, err := svc.Refresh(context.Background(), "garbage"); !errors.Is(err, ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid for garbage, got %v", err)
	}
}

func TestAuthService_Refresh_BloccatoAfterIssue(t *testing.T) {
	svc, mocks, jwtMgr := setupTestAuthService(t)
	user := seedCredentialedUser(t, mocks, "user-001", "mario@lunardi.it", "segreta123", false)

	refresh, _ := jwtMgr.GenerateRefreshToken("user-001", model.RoleUser)
	user.Bloccato = true

	if _, err := svc.Refresh(context.Background(), refresh); !errors.Is(err, ErrUserBloccato) {
		t.Errorf("a blocked user must not refresh, got %v", err)
	}
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, mocks, _ := setupTestAuthService(t)
	user := seedCredentialedUser(t, mocks, "user-001", "mario@lunardi.it", "segreta123", false)
	user.MustChangePassword = true

	req := &dto.ChangePasswordRequest{OldPassword: "sbagliata", NewPassword: "nuovissima1"}
	if err := svc.ChangePassword(context.Background(), "user-001", req); !errors.Is(err, ErrWrongPassword) {
		t.Errorf("expected ErrWrongPassword, got %v", err)
	}

	req = &dto.ChangePasswordRequest{OldPassword: "segreta123", NewPassword: "nuovissima1"}
	if err := svc.ChangePassword(context.Background(), "user-001", req); err != nil {
		t.Fatalf("ChangePassword should succeed: %v", err)
	}
	if user.MustChangePassword {
		t.Error("a successful change must clear the must-change flag")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("nuovissima1")); err != nil {
		t.Error("new password should verify against the stored hash")
	}
}
