package handlers

import (
	"github.com/bienestar-escolar/backend/internal/http/dto"
	"github.com/bienestar-escolar/backend/internal/middleware"
	"github.com/bienestar-escolar/backend/internal/repositories"
	"github.com/bienestar-escolar/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var commentFilter = repositories.Filter{
	Fields: []repositories.FieldSpec{
		{Param: "tipo", Column: "tipo", Kind: repositories.MatchExact},
		{Param: "isPrivate", Column: "is_private", Kind: repositories.MatchBool},
		{Param: "interventionId", Column: "intervention_id", Kind: repositories.MatchRelationID},
		{Param: "userId", Column: "user_id", Kind: repositories.MatchRelationID},
	},
}

type CommentHandler struct {
	comments *services.CommentService
	log      *zap.Logger
}

func NewCommentHandler(comments *services.CommentService, log *zap.Logger) *CommentHandler {
	return &CommentHandler{comments: comments, log: log}
}

func (h *CommentHandler) List(c *fiber.Ctx) error {
	page, limit := paging(c)
	q := repositories.ListQuery{
		Conds:     commentFilter.Compile(queryGetter(c)),
		Page:      page,
		Limit:     limit,
		Relations: relations(c, "intervention", "user"),
	}

	comments, total, err := h.comments.List(c.Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(dto.PagedResponse{Data: comments, Total: total, Page: q.Page, Limit: q.Limit})
}

func (h *CommentHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid comment id"})
	}

	comment, err := h.comments.Get(c.Context(), uint(id), relations(c, "intervention", "user")...)
	if err != nil {
		return err
	}
	return c.JSON(comment)
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "content and interventionId are required", Error: err.Error()})
	}

	p := middleware.GetPrincipal(c)
	comment, err := h.comments.Create(c.Context(), p.UserID, c.Body())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *CommentHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid comment id"})
	}

	p := middleware.GetPrincipal(c)
	comment, err := h.comments.Update(c.Context(), p.UserID, uint(id), c.Body())
	if err != nil {
		return err
	}
	return c.JSON(comment)
}

// Delete responds 204; the other entities answer deletes with a message body.
// The difference is historical and kept for client compatibility.
func (h *CommentHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid comment id"})
	}

	p := middleware.GetPrincipal(c)
	if err := h.comments.Delete(c.Context(), p.UserID, uint(id)); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
