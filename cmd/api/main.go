package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/bienestar-escolar/backend/internal/config"
	"github.com/bienestar-escolar/backend/internal/db"
	apphttp "github.com/bienestar-escolar/backend/internal/http"
	"github.com/bienestar-escolar/backend/internal/http/handlers"
	"github.com/bienestar-escolar/backend/internal/models"
	"github.com/bienestar-escolar/backend/internal/repositories"
	"github.com/bienestar-escolar/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

func main() {
	log, _ := zap.NewProduction()
	defer log.Sync()

	cfg := config.Load()
	cfg.Validate(log)

	// Database
	gdb, err := db.Open(cfg, log)
	if err != nil {
		log.Fatal("failed to open database", zap.Error(err))
	}

	// Record stores, one per tracked entity, resolved at wiring time
	userStore := repositories.NewStore[models.User](gdb, repositories.StoreConfig{
		DefaultOrder: "last_name ASC, first_name ASC",
	})
	studentStore := repositories.NewStore[models.Student](gdb, repositories.StoreConfig{
		DefaultOrder: "last_name ASC, first_name ASC",
	})
	interventionStore := repositories.NewStore[models.Intervention](gdb, repositories.StoreConfig{
		DefaultOrder: "date_reported DESC",
		Relations: map[string]string{
			"student":     "Student",
			"informer":    "Informer",
			"responsible": "Responsible",
		},
	})
	commentStore := repositories.NewStore[models.InterventionComment](gdb, repositories.StoreConfig{
		DefaultOrder: "created_at DESC",
		Relations: map[string]string{
			"intervention": "Intervention",
			"user":         "User",
		},
	})
	auditRepo := repositories.NewAuditRepo(gdb)

	// Services
	recorder := services.NewAuditRecorder(auditRepo, log)
	userService := services.NewUserService(userStore, recorder, log)
	studentService := services.NewStudentService(studentStore, recorder, log)
	interventionService := services.NewInterventionService(interventionStore, recorder, log)
	commentService := services.NewCommentService(commentStore, recorder, log)

	// Handlers
	authHandler := handlers.NewAuthHandler(userStore, recorder, cfg, log)
	userHandler := handlers.NewUserHandler(userService, log)
	studentHandler := handlers.NewStudentHandler(studentService, log)
	interventionHandler := handlers.NewInterventionHandler(interventionService, log)
	commentHandler := handlers.NewCommentHandler(commentService, log)
	auditHandler := handlers.NewAuditHandler(auditRepo, log)

	app := fiber.New(fiber.Config{
		ErrorHandler: apphttp.ErrorHandler(log),
	})

	apphttp.SetupRouter(app, cfg, log, authHandler, userHandler, studentHandler, interventionHandler, commentHandler, auditHandler)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")
		_ = app.Shutdown()
	}()

	addr := fmt.Sprintf(":%s", cfg.Port)
	log.Info("starting API server", zap.String("addr", addr), zap.String("env", cfg.Environment))
	if err := app.Listen(addr); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
