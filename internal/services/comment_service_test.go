package services

import (
	"context"
	"testing"

	"github.com/bienestar-escolar/backend/internal/apperr"
	"github.com/bienestar-escolar/backend/internal/models"
	"github.com/bienestar-escolar/backend/internal/repositories"
)

func newCommentService(t *testing.T) (*CommentService, *testEnv) {
	t.Helper()
	env := newTestEnv(t)
	store := repositories.NewStore[models.InterventionComment](env.db, repositories.StoreConfig{
		DefaultOrder: "created_at DESC",
	})
	return NewCommentService(store, env.recorder, env.log), env
}

func TestCommentCreateForcesAuthor(t *testing.T) {
	svc, env := newCommentService(t)

	// the body claims another author; the principal wins
	cm, err := svc.Create(context.Background(), 7, []byte(`{"content":"Seguimiento semanal","interventionId":3,"userId":99}`))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if cm.UserID != 7 {
		t.Errorf("UserID = %d, want principal 7", cm.UserID)
	}

	a := env.lastAudit(t)
	if a.Action != models.AuditActionCreate || a.Module != models.ModuleComments {
		t.Errorf("audit action/module = %s/%s", a.Action, a.Module)
	}
}

func TestCommentCreateValidation(t *testing.T) {
	svc, _ := newCommentService(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing intervention", `{"content":"hola"}`},
		{"missing content", `{"interventionId":3}`},
		{"bad json", `{`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.Create(context.Background(), 1, []byte(tc.body)); errKind(t, err) != apperr.KindValidation {
				t.Errorf("err = %v, want validation", err)
			}
		})
	}
}

func TestCommentUpdateAuthorOnly(t *testing.T) {
	svc, _ := newCommentService(t)

	cm, err := svc.Create(context.Background(), 7, []byte(`{"content":"original","interventionId":3}`))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.Update(context.Background(), 8, cm.ID, []byte(`{"content":"ajeno"}`))
	if errKind(t, err) != apperr.KindForbidden {
		t.Errorf("non-author update err = %v, want forbidden", err)
	}
	got, err := svc.Get(context.Background(), cm.ID)
	if err != nil || got.Content != "original" {
		t.Errorf("comment changed by rejected update: %v, %v", got, err)
	}

	updated, err := svc.Update(context.Background(), 7, cm.ID, []byte(`{"content":"corregido","userId":99}`))
	if err != nil {
		t.Fatalf("author update: %v", err)
	}
	if updated.Content != "corregido" {
		t.Errorf("Content = %q", updated.Content)
	}
	if updated.UserID != 7 {
		t.Errorf("authorship rewritten via body: UserID = %d", updated.UserID)
	}
}

func TestCommentDeleteAuthorOnly(t *testing.T) {
	svc, env := newCommentService(t)

	cm, err := svc.Create(context.Background(), 7, []byte(`{"content":"a borrar","interventionId":3}`))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(context.Background(), 8, cm.ID); errKind(t, err) != apperr.KindForbidden {
		t.Errorf("non-author delete err = %v, want forbidden", err)
	}
	if _, err := svc.Get(context.Background(), cm.ID); err != nil {
		t.Fatalf("comment removed by rejected delete: %v", err)
	}

	if err := svc.Delete(context.Background(), 7, cm.ID); err != nil {
		t.Fatalf("author delete: %v", err)
	}
	if _, err := svc.Get(context.Background(), cm.ID); errKind(t, err) != apperr.KindNotFound {
		t.Errorf("comment still present after delete")
	}

	a := env.lastAudit(t)
	if a.Action != models.AuditActionDelete {
		t.Errorf("audit action = %s, want %s", a.Action, models.AuditActionDelete)
	}
	if len(a.OldValues) == 0 {
		t.Error("delete audit should capture the removed comment")
	}
}

func TestCommentMutateUnknownIDIsNotFound(t *testing.T) {
	svc, _ := newCommentService(t)

	// existence is checked before authorship
	if _, err := svc.Update(context.Background(), 1, 404, []byte(`{"content":"x"}`)); errKind(t, err) != apperr.KindNotFound {
		t.Errorf("update err = %v, want not found", err)
	}
	if err := svc.Delete(context.Background(), 1, 404); errKind(t, err) != apperr.KindNotFound {
		t.Errorf("delete err = %v, want not found", err)
	}
}
