package handlers

import (
	"github.com/bienestar-escolar/backend/internal/http/dto"
	"github.com/bienestar-escolar/backend/internal/repositories"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var auditFilter = repositories.Filter{
	Fields: []repositories.FieldSpec{
		{Param: "entityName", Column: "entity_name", Kind: repositories.MatchExact},
		{Param: "action", Column: "action", Kind: repositories.MatchExact},
		{Param: "module", Column: "module", Kind: repositories.MatchExact},
		{Param: "userId", Column: "user_id", Kind: repositories.MatchRelationID},
		{Param: "entityId", Column: "entity_id", Kind: repositories.MatchRelationID},
		{Param: "dateFrom", Column: "created_at", Kind: repositories.MatchDateFrom},
		{Param: "dateTo", Column: "created_at", Kind: repositories.MatchDateTo},
	},
}

// AuditHandler exposes the audit trail read-only. The mutation routes exist
// solely to answer 403: audit rows are written exclusively by the recorder.
type AuditHandler struct {
	audits *repositories.AuditRepo
	log    *zap.Logger
}

func NewAuditHandler(audits *repositories.AuditRepo, log *zap.Logger) *AuditHandler {
	return &AuditHandler{audits: audits, log: log}
}

func (h *AuditHandler) List(c *fiber.Ctx) error {
	page, limit := paging(c)
	q := repositories.ListQuery{
		Conds:     auditFilter.Compile(queryGetter(c)),
		Page:      page,
		Limit:     limit,
		Relations: relations(c),
	}

	audits, total, err := h.audits.List(c.Context(), q)
	if err != nil {
		h.log.Error("list audit records failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Error fetching audit records", Error: err.Error()})
	}
	return c.JSON(dto.PagedResponse{Data: audits, Total: total, Page: q.Page, Limit: q.Limit})
}

func (h *AuditHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid audit id"})
	}

	audit, err := h.audits.Get(c.Context(), uint(id), "user")
	if err == repositories.ErrNotFound {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Message: "Audit record not found"})
	}
	if err != nil {
		h.log.Error("get audit record failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: "Error fetching audit record", Error: err.Error()})
	}
	return c.JSON(audit)
}

func (h *AuditHandler) Create(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Message: "Audit records cannot be created manually"})
}

func (h *AuditHandler) Update(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Message: "Audit records cannot be updated"})
}

func (h *AuditHandler) Delete(c *fiber.Ctx) error {
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Message: "Audit records cannot be deleted"})
}
