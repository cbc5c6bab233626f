package service

import (
	"ProjectShelf/internal/api/config"
	"ProjectShelf/internal/api/dto"
	"ProjectShelf/internal/pkg/consts"
	"ProjectShelf/internal/pkg/security"
	"ProjectShelf/internal/repository"
	"context"
	"errors"
	"testing"
)

func strPtr(s string) *string {
	return &s
}

func newUserFixture(t *testing.T) (UserService, repository.UserRepo, func()) {
	t.Helper()
	// GenerateToken 读取全局配置
	config.Cfg = &config.Config{
		JWT: config.JWTConfig{Secret: "test-secret", ExpireHours: 1},
	}
	gdb, cleanup := setupAnalyticsTestDB(t)
	userRepo := repository.NewUserRepo(gdb)
	return NewUserService(userRepo), userRepo, cleanup
}

func registerTestUser(t *testing.T, svc UserService, username string) *dto.AuthDTO {
	t.Helper()
	auth, err := svc.Register(context.Background(), &dto.RegisterDTO{
		Email:    username + "@example.com",
		Username: username,
		Name:     "Test " + username,
		Password: "secret123",
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	return auth
}

func TestRegisterIssuesVisitorToken(t *testing.T) {
	svc, _, cleanup := newUserFixture(t)
	defer cleanup()

	auth := registerTestUser(t, svc, "alice")
	if auth.Token == "" {
		t.Fatalf("register must issue a token")
	}
	if auth.User.Role != consts.RoleVisitor {
		t.Fatalf("new users start as visitors, got %s", auth.User.Role)
	}

	claims, err := security.ValidateToken(auth.Token)
	if err != nil {
		t.Fatalf("issued token must validate: %v", err)
	}
	if claims.UserID != auth.User.UserID || claims.Role != consts.RoleVisitor {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

func TestRegisterRejectsDuplicates(t *testing.T) {
	svc, _, cleanup := newUserFixture(t)
	defer cleanup()

	registerTestUser(t, svc, "alice")

	_, err := svc.Register(context.Background(), &dto.RegisterDTO{
		Email: "alice@example.com", Username: "other", Name: "Other", Password: "secret123",
	})
	if !errors.Is(err, ErrUserEmailExist) {
		t.Fatalf("expected email conflict, got %v", err)
	}

	_, err = svc.Register(context.Background(), &dto.RegisterDTO{
		Email: "fresh@example.com", Username: "alice", Name: "Other", Password: "secret123",
	})
	if !errors.Is(err, ErrUserUsernameExist) {
		t.Fatalf("expected username conflict, got %v", err)
	}
}

func TestLoginByEmailOrUsername(t *testing.T) {
	svc, _, cleanup := newUserFixture(t)
	defer cleanup()

	registerTestUser(t, svc, "alice")
	ctx := context.Background()

	auth, err := svc.Login(ctx, &dto.CredentialDTO{Email: strPtr("alice@example.com"), Password: "secret123"})
	if err != nil {
		t.Fatalf("email login failed: %v", err)
	}
	if auth.User.Username != "alice" {
		t.Fatalf("unexpected user: %s", auth.User.Username)
	}

	if _, err = svc.Login(ctx, &dto.CredentialDTO{Username: strPtr("alice"), Password: "secret123"}); err != nil {
		t.Fatalf("username login failed: %v", err)
	}

	_, err = svc.Login(ctx, &dto.CredentialDTO{Username: strPtr("alice"), Password: "wrong"})
	if !errors.Is(err, ErrPasswordIncorrect) {
		t.Fatalf("wrong password must fail, got %v", err)
	}

	// 不存在的账号与错误密码返回同一错误,避免枚举
	_, err = svc.Login(ctx, &dto.CredentialDTO{Email: strPtr("nobody@example.com"), Password: "secret123"})
	if !errors.Is(err, ErrPasswordIncorrect) {
		t.Fatalf("unknown account must look like a bad password, got %v", err)
	}

	_, err = svc.Login(ctx, &dto.CredentialDTO{Password: "secret123"})
	if !errors.Is(err, ErrMissingLoginCredentials) {
		t.Fatalf("expected missing credentials error, got %v", err)
	}
}

func TestUpgradeToCreatorReissuesToken(t *testing.T) {
	svc, _, cleanup := newUserFixture(t)
	defer cleanup()
	ctx := context.Background()

	auth := registerTestUser(t, svc, "alice")

	upgraded, err := svc.UpgradeToCreator(ctx, auth.User.UserID)
	if err != nil {
		t.Fatalf("upgrade failed: %v", err)
	}
	if upgraded.User.Role != consts.RoleCreator {
		t.Fatalf("expected creator role, got %s", upgraded.User.Role)
	}
	claims, err := security.ValidateToken(upgraded.Token)
	if err != nil {
		t.Fatalf("reissued token must validate: %v", err)
	}
	if claims.Role != consts.RoleCreator {
		t.Fatalf("reissued token must carry the new role, got %s", claims.Role)
	}

	_, err = svc.UpgradeToCreator(ctx, auth.User.UserID)
	if !errors.Is(err, ErrUserAlreadyCreator) {
		t.Fatalf("second upgrade must fail, got %v", err)
	}
}

func TestUpdateProfileAndPublicView(t *testing.T) {
	svc, _, cleanup := newUserFixture(t)
	defer cleanup()
	ctx := context.Background()

	auth := registerTestUser(t, svc, "alice")

	err := svc.UpdateProfile(ctx, auth.User.UserID, &dto.UpdateProfileDTO{
		Name: strPtr("Alice A."),
		Bio:  strPtr("builder of things"),
	})
	if err != nil {
		t.Fatalf("update profile failed: %v", err)
	}

	me, err := svc.GetUserInfo(ctx, auth.User.UserID)
	if err != nil {
		t.Fatalf("get user info failed: %v", err)
	}
	if me.Name != "Alice A." || me.Bio == nil || *me.Bio != "builder of things" {
		t.Fatalf("profile not updated: %+v", me)
	}
	if me.Email == "" {
		t.Fatalf("own view must include email")
	}

	public, err := svc.GetPublicProfile(ctx, "alice")
	if err != nil {
		t.Fatalf("get public profile failed: %v", err)
	}
	if public.Email != "" {
		t.Fatalf("public profile must not expose email")
	}

	if _, err = svc.GetPublicProfile(ctx, "nobody"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
