package services

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/bienestar-escolar/backend/internal/apperr"
	"github.com/bienestar-escolar/backend/internal/models"
	"github.com/bienestar-escolar/backend/internal/repositories"
	"golang.org/x/crypto/bcrypt"
)

func newUserService(t *testing.T) (*UserService, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	store := repositories.NewStore[models.User](env.db, repositories.StoreConfig{
		DefaultOrder: "last_name ASC, first_name ASC",
	})
	return NewUserService(store, env.recorder, env.log), env
}

func TestUserCreateHashesPassword(t *testing.T) {
	svc, env := newUserService(t)

	u, err := svc.Create(context.Background(), uintPtr(1),
		[]byte(`{"email":"ana@colegio.cl","firstName":"Ana","lastName":"Soto","rut":"12.345.678-5"}`),
		"secreto-largo")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if u.Password == "secreto-largo" || u.Password == "" {
		t.Fatal("password stored in plaintext or empty")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("secreto-largo")); err != nil {
		t.Errorf("stored hash does not verify: %v", err)
	}
	if u.RUT != "12345678-5" {
		t.Errorf("RUT = %q, want normalized", u.RUT)
	}

	// json:"-" keeps the hash out of every serialization, audits included
	body, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(strings.ToLower(string(body)), "password") {
		t.Errorf("serialized user leaks password field: %s", body)
	}

	a := env.lastAudit(t)
	if a.Action != models.AuditActionCreate || a.Module != models.ModuleUsers {
		t.Errorf("audit action/module = %s/%s", a.Action, a.Module)
	}
	if strings.Contains(strings.ToLower(string(a.NewValues)), "password") {
		t.Errorf("audit snapshot leaks password: %s", a.NewValues)
	}
}

func TestUserCreateUniqueness(t *testing.T) {
	svc, _ := newUserService(t)

	if _, err := svc.Create(context.Background(), nil,
		[]byte(`{"email":"ana@colegio.cl","rut":"12345678-5"}`), "secreto-largo"); err != nil {
		t.Fatalf("first create: %v", err)
	}

	cases := []struct {
		name string
		body string
	}{
		{"same email", `{"email":"ana@colegio.cl","rut":"11111111-1"}`},
		{"same rut", `{"email":"otra@colegio.cl","rut":"12.345.678-5"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), nil, []byte(tc.body), "secreto-largo")
			if errKind(t, err) != apperr.KindConflict {
				t.Errorf("err = %v, want conflict", err)
			}
		})
	}
}

func TestUserUpdatePasswordHandling(t *testing.T) {
	svc, _ := newUserService(t)

	u, err := svc.Create(context.Background(), nil,
		[]byte(`{"email":"ana@colegio.cl","rut":"12345678-5"}`), "secreto-largo")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	originalHash := u.Password

	// password field in the body must not clobber the stored hash
	got, err := svc.Update(context.Background(), nil, u.ID, []byte(`{"department":"Convivencia"}`), "")
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if got.Password != originalHash {
		t.Error("hash changed on a password-less update")
	}
	if got.Department != "Convivencia" {
		t.Errorf("Department = %q", got.Department)
	}

	got, err = svc.Update(context.Background(), nil, u.ID, []byte(`{}`), "nuevo-secreto")
	if err != nil {
		t.Fatalf("Update with password: %v", err)
	}
	if got.Password == originalHash {
		t.Error("hash not rotated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(got.Password), []byte("nuevo-secreto")); err != nil {
		t.Errorf("new hash does not verify: %v", err)
	}
}

func TestUserUpdateEmailConflict(t *testing.T) {
	svc, _ := newUserService(t)

	if _, err := svc.Create(context.Background(), nil,
		[]byte(`{"email":"ana@colegio.cl","rut":"12345678-5"}`), "secreto-largo"); err != nil {
		t.Fatalf("create first: %v", err)
	}
	u2, err := svc.Create(context.Background(), nil,
		[]byte(`{"email":"otra@colegio.cl","rut":"11111111-1"}`), "secreto-largo")
	if err != nil {
		t.Fatalf("create second: %v", err)
	}

	_, err = svc.Update(context.Background(), nil, u2.ID, []byte(`{"email":"ana@colegio.cl"}`), "")
	if errKind(t, err) != apperr.KindConflict {
		t.Errorf("err = %v, want conflict", err)
	}
}

func TestUserDeleteIsSoft(t *testing.T) {
	svc, env := newUserService(t)

	u, err := svc.Create(context.Background(), nil,
		[]byte(`{"email":"ana@colegio.cl","rut":"12345678-5"}`), "secreto-largo")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(context.Background(), uintPtr(9), u.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	got, err := svc.Get(context.Background(), u.ID)
	if err != nil {
		t.Fatalf("deactivated user must remain retrievable: %v", err)
	}
	if got.IsActive || got.DeletedAt == nil {
		t.Errorf("got IsActive=%v DeletedAt=%v, want deactivated", got.IsActive, got.DeletedAt)
	}

	a := env.lastAudit(t)
	if a.Action != models.AuditActionDelete {
		t.Errorf("audit action = %s, want %s", a.Action, models.AuditActionDelete)
	}
	if a.UserID == nil || *a.UserID != 9 {
		t.Errorf("audit actor = %v, want 9", a.UserID)
	}
}
