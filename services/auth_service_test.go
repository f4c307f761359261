package services

import (
	"testing"
	"time"

	"github.com/BeeBeBong/Emenu/entity"
	"github.com/BeeBeBong/Emenu/pkg/apperr"
	"github.com/BeeBeBong/Emenu/utils"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func seedUser(t *testing.T, db *gorm.DB, username, password, role string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	u := &entity.User{
		Username: username,
		Password: string(hash),
		FullName: "Test Staff",
		Role:     role,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func TestLogin(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret", time.Hour)
	user := seedUser(t, db, "alice", "s3cret", entity.RoleStaff)

	res, err := svc.Login("alice", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if res.UserID != user.ID || res.Role != entity.RoleStaff || res.FullName != "Test Staff" {
		t.Errorf("login result = %+v", res)
	}

	claims, err := utils.ParseToken(res.Token, "test-secret")
	if err != nil {
		t.Fatalf("ParseToken: %v", err)
	}
	if claims.UserID != user.ID || claims.Role != entity.RoleStaff {
		t.Errorf("claims = %+v", claims)
	}

	// username is trimmed before lookup
	if _, err := svc.Login("  alice  ", "s3cret"); err != nil {
		t.Errorf("Login with padded username: %v", err)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret", time.Hour)
	seedUser(t, db, "alice", "s3cret", entity.RoleStaff)

	_, err := svc.Login("alice", "wrong")
	wantKind(t, err, apperr.KindUnauthorized)

	_, err = svc.Login("nobody", "s3cret")
	wantKind(t, err, apperr.KindUnauthorized)
}

func TestLoginTokenRejectsWrongSecret(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret", time.Hour)
	seedUser(t, db, "alice", "s3cret", entity.RoleAdmin)

	res, err := svc.Login("alice", "s3cret")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, err := utils.ParseToken(res.Token, "other-secret"); err == nil {
		t.Fatal("token verified with the wrong secret")
	}
}

func TestMe(t *testing.T) {
	db := newTestDB(t)
	svc := NewAuthService(db, "test-secret", time.Hour)
	user := seedUser(t, db, "alice", "s3cret", entity.RoleStaff)

	got, err := svc.Me(user.ID)
	if err != nil {
		t.Fatalf("Me: %v", err)
	}
	if got.Username != "alice" {
		t.Errorf("username = %q, want alice", got.Username)
	}

	_, err = svc.Me(404)
	wantKind(t, err, apperr.KindUnauthorized)
}
