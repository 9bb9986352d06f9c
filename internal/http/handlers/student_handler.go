package handlers

import (
	"github.com/bienestar-escolar/backend/internal/http/dto"
	"github.com/bienestar-escolar/backend/internal/repositories"
	"github.com/bienestar-escolar/backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

var studentFilter = repositories.Filter{
	Fields: []repositories.FieldSpec{
		{Param: "grade", Column: "grade", Kind: repositories.MatchExact},
		{Param: "isActive", Column: "is_active", Kind: repositories.MatchBool},
		{Param: "academicYear", Column: "academic_year", Kind: repositories.MatchExact},
		{Param: "section", Column: "section", Kind: repositories.MatchExact},
		{Param: "matriculaNumber", Column: "matricula_number", Kind: repositories.MatchExact},
		{Param: "enrollmentStatus", Column: "enrollment_status", Kind: repositories.MatchExact},
		{Param: "comuna", Column: "comuna", Kind: repositories.MatchExact},
		{Param: "region", Column: "region", Kind: repositories.MatchExact},
		{Param: "prevision", Column: "prevision", Kind: repositories.MatchExact},
		{Param: "diagnosticoPIE", Column: "diagnostico_pie", Kind: repositories.MatchExact},
		{Param: "beneficioJUNAEB", Column: "beneficio_junaeb", Kind: repositories.MatchBool},
		{Param: "prioritario", Column: "prioritario", Kind: repositories.MatchBool},
		{Param: "preferente", Column: "preferente", Kind: repositories.MatchBool},
	},
	SearchColumns: []string{"first_name", "last_name", "rut", "email"},
}

type StudentHandler struct {
	students *services.StudentService
	log      *zap.Logger
}

func NewStudentHandler(students *services.StudentService, log *zap.Logger) *StudentHandler {
	return &StudentHandler{students: students, log: log}
}

func (h *StudentHandler) List(c *fiber.Ctx) error {
	page, limit := paging(c)
	q := repositories.ListQuery{
		Conds:     studentFilter.Compile(queryGetter(c)),
		Page:      page,
		Limit:     limit,
		Relations: relations(c),
	}

	students, total, err := h.students.List(c.Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(dto.PagedResponse{Data: students, Total: total, Page: q.Page, Limit: q.Limit})
}

func (h *StudentHandler) Get(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid student id"})
	}

	student, err := h.students.Get(c.Context(), uint(id), relations(c)...)
	if err != nil {
		return err
	}
	return c.JSON(student)
}

func (h *StudentHandler) CheckRUT(c *fiber.Ctx) error {
	exists, err := h.students.CheckRUT(c.Context(), c.Params("rut"))
	if err != nil {
		return err
	}

	msg := "RUT disponible"
	if exists {
		msg = "RUT ya registrado"
	}
	return c.JSON(dto.RutCheckResponse{Exists: exists, Message: msg})
}

func (h *StudentHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid request body"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "El campo RUT es obligatorio"})
	}

	student, err := h.students.Create(c.Context(), actorID(c), c.Body())
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(student)
}

func (h *StudentHandler) Update(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid student id"})
	}

	student, err := h.students.Update(c.Context(), actorID(c), uint(id), c.Body())
	if err != nil {
		return err
	}
	return c.JSON(student)
}

func (h *StudentHandler) Delete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Message: "Invalid student id"})
	}

	if err := h.students.Delete(c.Context(), actorID(c), uint(id)); err != nil {
		return err
	}
	return c.JSON(dto.MessageResponse{Message: "Estudiante desactivado correctamente"})
}
