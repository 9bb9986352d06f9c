package handlers

import (
	"errors"
	"time"

	"github.com/bienestar-escolar/backend/internal/apperr"
	"github.com/bienestar-escolar/backend/internal/auth"
	"github.com/bienestar-escolar/backend/internal/config"
	"github.com/bienestar-escolar/backend/internal/http/dto"
	"github.com/bienestar-escolar/backend/internal/middleware"
	"github.com/bienestar-escolar/backend/internal/models"
	"github.com/bienestar-escolar/backend/internal/repositories"
	"github.com/bienestar-escolar/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type AuthHandler struct {
	users *repositories.Store[models.User]
	audit *services.AuditRecorder
	cfg   *config.Config
	log   *zap.Logger
}

func NewAuthHandler(users *repositories.Store[models.User], audit *services.AuditRecorder, cfg *config.Config, log *zap.Logger) *AuthHandler {
	return &AuthHandler{users: users, audit: audit, cfg: cfg, log: log}
}

// Login checks credentials and issues a token. Every attempt is audited;
// failures log the attempted email with a null user, never the password.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Email and password are required"})
	}

	user, err := h.users.FindFirst(c.Context(), "email = ?", req.Email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		// a broken store is not a credential failure and must not be
		// recorded as one
		return apperr.Internal("Login failed", err)
	}
	if err != nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		h.audit.Record(c.Context(), services.AuditEntry{
			EntityName: "Authentication",
			Action:     models.AuditActionLoginFailed,
			Details:    "Failed login attempt for email: " + req.Email,
			IPAddress:  c.IP(),
			Module:     models.ModuleAuth,
		})
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Message: "Invalid credentials"})
	}

	token, err := auth.GenerateJWT(h.cfg.JWTSecret, user, h.cfg.JWTExpiration)
	if err != nil {
		h.log.Error("token generation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Login failed"})
	}

	now := time.Now()
	user.LastLogin = &now
	if err := h.users.Save(c.Context(), user); err != nil {
		h.log.Warn("failed to stamp last login", zap.Uint("user_id", user.ID), zap.Error(err))
	}

	h.audit.Record(c.Context(), services.AuditEntry{
		UserID:     &user.ID,
		EntityName: "Authentication",
		EntityID:   &user.ID,
		Action:     models.AuditActionLoginSuccess,
		Details:    "User logged in successfully",
		IPAddress:  c.IP(),
		Module:     models.ModuleAuth,
	})

	return c.JSON(dto.AuthResponse{Token: token, User: user.PublicView()})
}

// Refresh issues a new token with the same claims and a fresh expiry window.
// The prior token stays valid until natural expiry; there is no revocation
// list.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)

	token, err := auth.GenerateJWT(h.cfg.JWTSecret, &models.User{
		ID:         p.UserID,
		Email:      p.Email,
		Role:       p.Role,
		FirstName:  p.FirstName,
		LastName:   p.LastName,
		StaffType:  p.StaffType,
		Department: p.Department,
	}, h.cfg.JWTExpiration)
	if err != nil {
		h.log.Error("token generation failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Token refresh failed"})
	}

	h.audit.Record(c.Context(), services.AuditEntry{
		UserID:     &p.UserID,
		EntityName: "Authentication",
		EntityID:   &p.UserID,
		Action:     models.AuditActionTokenRefresh,
		Details:    "User refreshed authentication token",
		IPAddress:  c.IP(),
		Module:     models.ModuleAuth,
	})

	return c.JSON(dto.TokenResponse{Token: token})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	p := middleware.GetPrincipal(c)

	h.audit.Record(c.Context(), services.AuditEntry{
		UserID:     &p.UserID,
		EntityName: "Authentication",
		EntityID:   &p.UserID,
		Action:     models.AuditActionLogout,
		Details:    "User logged out",
		IPAddress:  c.IP(),
		Module:     models.ModuleAuth,
	})

	return c.JSON(dto.MessageResponse{Message: "Logged out successfully"})
}
