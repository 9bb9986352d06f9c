package handlers

import (
	"github.com/bienestar-escolar/backend/internal/http/dto"
	"github.com/bienestar-escolar/backend/internal/repositories"
	"github.com/bienestar-escolar/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var interventionFilter = repositories.Filter{
	Fields: []repositories.FieldSpec{
		{Param: "type", Column: "type", Kind: repositories.MatchExact},
		{Param: "status", Column: "status", Kind: repositories.MatchExact},
		{Param: "priority", Column: "priority", Kind: repositories.MatchExact},
		{Param: "interventionScope", Column: "intervention_scope", Kind: repositories.MatchExact},
		{Param: "requiresExternalReferral", Column: "requires_external_referral", Kind: repositories.MatchBool},
		{Param: "studentId", Column: "student_id", Kind: repositories.MatchRelationID},
		{Param: "informerId", Column: "informer_id", Kind: repositories.MatchRelationID},
		{Param: "responsibleId", Column: "responsible_id", Kind: repositories.MatchRelationID},
		{Param: "dateFrom", Column: "date_reported", Kind: repositories.MatchDateFrom},
		{Param: "dateTo", Column: "date_reported", Kind: repositories.MatchDateTo},
	},
}

type InterventionHandler struct {
	interventions *services.InterventionService
	log           *zap.Logger
}

func NewInterventionHandler(interventions *services.InterventionService, log *zap.Logger) *InterventionHandler {
	return &InterventionHandler{interventions: interventions, log: log}
}

func (h *InterventionHandler) List(c *fiber.Ctx) error {
	page, limit := paging(c)
	q := repositories.ListQuery{
		Conds:     interventionFilter.Compile(queryGetter(c)),
		Page:      page,
		Limit:     limit,
		Relations: relations(c, "student", "informer", "responsible"),
	}

	interventions, total, err := h.interventions.List(c.Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(dto.PagedResponse{Data: interventions, Total: total, Page: q.Page, Limit: q.Limit})
}

func (h *InterventionHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid intervention id"})
	}

	intervention, err := h.interventions.Get(c.Context(), uint(id), relations(c)...)
	if err != nil {
		return err
	}
	return c.JSON(intervention)
}

func (h *InterventionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateInterventionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "title and studentId are required", Error: err.Error()})
	}

	intervention, err := h.interventions.Create(c.Context(), actorID(c), c.Body())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(intervention)
}

func (h *InterventionHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid intervention id"})
	}

	intervention, err := h.interventions.Update(c.Context(), actorID(c), uint(id), c.Body())
	if err != nil {
		return err
	}
	return c.JSON(intervention)
}

func (h *InterventionHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid intervention id"})
	}

	if err := h.interventions.Delete(c.Context(), actorID(c), uint(id)); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Intervention deleted successfully"})
}
