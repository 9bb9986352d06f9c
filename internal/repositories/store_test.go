package repositories

import (
	"context"
	"fmt"
	"testing"

	"github.com/bienestar-escolar/backend/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&models.User{}, &models.Student{}, &models.Intervention{}, &models.InterventionComment{}, &models.Audit{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return gdb
}

func seedStudents(t *testing.T, store *Store[models.Student], n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		st := models.Student{
			FirstName: "Estudiante",
			LastName:  fmt.Sprintf("Apellido%02d", i),
			RUT:       fmt.Sprintf("%d-%d", 10000000+i, i%10),
			Grade:     "8° Básico",
			IsActive:  true,
		}
		if err := store.Create(context.Background(), &st); err != nil {
			t.Fatalf("create student %d: %v", i, err)
		}
	}
}

func TestListPagination(t *testing.T) {
	store := NewStore[models.Student](newTestDB(t), StoreConfig{DefaultOrder: "last_name ASC, first_name ASC"})
	seedStudents(t, store, 12)

	items, total, err := store.List(context.Background(), ListQuery{Page: 2, Limit: 5})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 12 {
		t.Errorf("total = %d, want 12", total)
	}
	if len(items) != 5 {
		t.Fatalf("len(items) = %d, want 5", len(items))
	}
	// page 2 of 5 over last_name ASC is Apellido06..Apellido10
	for i, it := range items {
		want := fmt.Sprintf("Apellido%02d", i+6)
		if it.LastName != want {
			t.Errorf("items[%d].LastName = %q, want %q", i, it.LastName, want)
		}
	}
}

func TestListDefaultsPageAndLimit(t *testing.T) {
	store := NewStore[models.Student](newTestDB(t), StoreConfig{DefaultOrder: "last_name ASC"})
	seedStudents(t, store, 12)

	items, total, err := store.List(context.Background(), ListQuery{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 12 || len(items) != 10 {
		t.Errorf("got total=%d len=%d, want total=12 len=10", total, len(items))
	}
}

func TestListFilterCond(t *testing.T) {
	store := NewStore[models.Student](newTestDB(t), StoreConfig{})
	seedStudents(t, store, 3)

	items, total, err := store.List(context.Background(), ListQuery{
		Conds: []Cond{{Query: "last_name = ?", Args: []any{"Apellido02"}}},
	})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if total != 1 || len(items) != 1 {
		t.Fatalf("got total=%d len=%d, want 1/1", total, len(items))
	}
}

func TestListIgnoresUnknownRelations(t *testing.T) {
	store := NewStore[models.Student](newTestDB(t), StoreConfig{})
	seedStudents(t, store, 1)

	items, _, err := store.List(context.Background(), ListQuery{Relations: []string{"bogus"}})
	if err != nil {
		t.Fatalf("List with unknown relation: %v", err)
	}
	if len(items) != 1 {
		t.Errorf("len(items) = %d, want 1", len(items))
	}
}

func TestGetNotFound(t *testing.T) {
	store := NewStore[models.Student](newTestDB(t), StoreConfig{})

	if _, err := store.Get(context.Background(), 999); err != ErrNotFound {
		t.Errorf("Get(999) err = %v, want ErrNotFound", err)
	}
}

func TestHardDelete(t *testing.T) {
	store := NewStore[models.Intervention](newTestDB(t), StoreConfig{})

	iv := models.Intervention{Title: "Caso", StudentID: 1}
	if err := store.Create(context.Background(), &iv); err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := store.HardDelete(context.Background(), iv.ID); err != nil {
		t.Fatalf("HardDelete: %v", err)
	}
	if _, err := store.Get(context.Background(), iv.ID); err != ErrNotFound {
		t.Errorf("row still present after HardDelete")
	}
	if err := store.HardDelete(context.Background(), iv.ID); err != ErrNotFound {
		t.Errorf("second HardDelete err = %v, want ErrNotFound", err)
	}
}

func TestGetPreloadsAllowedRelation(t *testing.T) {
	gdb := newTestDB(t)
	students := NewStore[models.Student](gdb, StoreConfig{})
	interventions := NewStore[models.Intervention](gdb, StoreConfig{
		Relations: map[string]string{"student": "Student"},
	})

	st := models.Student{FirstName: "Ana", LastName: "Soto", RUT: "12345678-5", IsActive: true}
	if err := students.Create(context.Background(), &st); err != nil {
		t.Fatalf("create student: %v", err)
	}
	iv := models.Intervention{Title: "Caso", StudentID: st.ID}
	if err := interventions.Create(context.Background(), &iv); err != nil {
		t.Fatalf("create intervention: %v", err)
	}

	got, err := interventions.Get(context.Background(), iv.ID, "student")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Student == nil || got.Student.ID != st.ID {
		t.Errorf("student relation not preloaded: %+v", got.Student)
	}
}
