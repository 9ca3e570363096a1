package handlers

import (
	"errors"
	"strconv"

	"vigil/internal/models"
	"vigil/internal/services/rule"
	"vigil/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type RuleHandler struct {
	service rule.Service
}

func NewRuleHandler(service rule.Service) *RuleHandler {
	return &RuleHandler{service: service}
}

func (h *RuleHandler) Create(c *fiber.Ctx) error {
	var req rule.CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if claims, ok := c.Locals("claims").(*models.UserClaims); ok {
		req.CreatedBy = claims.UserID
	}

	r, err := h.service.Create(c.Context(), req)
	if err != nil {
		if isValidationError(err) {
			return response.BadRequest(c, err.Error())
		}
		return response.ServerError(c, "Failed to create rule")
	}
	return c.Status(fiber.StatusCreated).JSON(r)
}

func (h *RuleHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid rule id")
	}

	var req rule.UpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	r, err := h.service.Update(c.Context(), uint(id), req)
	if err != nil {
		switch {
		case errors.Is(err, rule.ErrRuleNotFound):
			return response.NotFound(c, err.Error())
		case isValidationError(err):
			return response.BadRequest(c, err.Error())
		default:
			return response.ServerError(c, "Failed to update rule")
		}
	}
	return c.JSON(r)
}

func (h *RuleHandler) List(c *fiber.Ctx) error {
	rules, err := h.service.List(c.Context())
	if err != nil {
		return response.ServerError(c, "Failed to list rules")
	}
	return c.JSON(fiber.Map{"rules": rules})
}

func isValidationError(err error) bool {
	return errors.Is(err, rule.ErrInvalidCondition) ||
		errors.Is(err, rule.ErrInvalidRuleType) ||
		errors.Is(err, rule.ErrInvalidAction) ||
		errors.Is(err, rule.ErrNameRequired)
}
