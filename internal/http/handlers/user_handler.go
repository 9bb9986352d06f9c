package handlers

import (
	"github.com/bienestar-escolar/backend/internal/http/dto"
	"github.com/bienestar-escolar/backend/internal/repositories"
	"github.com/bienestar-escolar/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var userFilter = repositories.Filter{
	Fields: []repositories.FieldSpec{
		{Param: "role", Column: "role", Kind: repositories.MatchExact},
		{Param: "department", Column: "department", Kind: repositories.MatchExact},
		{Param: "staffType", Column: "staff_type", Kind: repositories.MatchExact},
		{Param: "isActive", Column: "is_active", Kind: repositories.MatchBool},
	},
	SearchColumns: []string{"first_name", "last_name", "email", "rut"},
}

type UserHandler struct {
	users *services.UserService
	log   *zap.Logger
}

func NewUserHandler(users *services.UserService, log *zap.Logger) *UserHandler {
	return &UserHandler{users: users, log: log}
}

func (h *UserHandler) List(c *fiber.Ctx) error {
	page, limit := paging(c)
	q := repositories.ListQuery{
		Conds:     userFilter.Compile(queryGetter(c)),
		Page:      page,
		Limit:     limit,
		Relations: relations(c),
	}

	users, total, err := h.users.List(c.Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(dto.PagedResponse{Data: users, Total: total, Page: q.Page, Limit: q.Limit})
}

func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid user id"})
	}

	user, err := h.users.Get(c.Context(), uint(id), relations(c)...)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "email, password and rut are required", Error: err.Error()})
	}

	user, err := h.users.Create(c.Context(), actorID(c), c.Body(), req.Password)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid user id"})
	}

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid password", Error: err.Error()})
	}

	user, err := h.users.Update(c.Context(), actorID(c), uint(id), c.Body(), req.Password)
	if err != nil {
		return err
	}
	return c.JSON(user)
}

func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid user id"})
	}

	if err := h.users.Delete(c.Context(), actorID(c), uint(id)); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "User deactivated successfully"})
}
