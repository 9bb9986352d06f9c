package services

import (
	"testing"

	"github.com/bienestar-escolar/backend/internal/models"
	"github.com/bienestar-escolar/backend/internal/repositories"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type testEnv struct {
	db       *gorm.DB
	recorder *AuditRecorder
	audits   *repositories.AuditRepo
	log      *zap.Logger
}

func newTestEnv(t *testing.T) *testEnv {
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
	log := zap.NewNop()
	audits := repositories.NewAuditRepo(gdb)
	return &testEnv{
		db:       gdb,
		recorder: NewAuditRecorder(audits, log),
		audits:   audits,
		log:      log,
	}
}

func (e *testEnv) lastAudit(t *testing.T) *models.Audit {
	t.Helper()
	var a models.Audit
	if err := e.db.Order("id DESC").First(&a).Error; err != nil {
		t.Fatalf("no audit record: %v", err)
	}
	return &a
}

func (e *testEnv) auditCount(t *testing.T) int64 {
	t.Helper()
	var n int64
	if err := e.db.Model(&models.Audit{}).Count(&n).Error; err != nil {
		t.Fatalf("count audits: %v", err)
	}
	return n
}

func uintPtr(v uint) *uint { return &v }
