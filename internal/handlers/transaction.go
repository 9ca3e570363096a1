package handlers

import (
	"errors"
	"strconv"

	"vigil/internal/models"
	"vigil/internal/services/dashboard"
	"vigil/internal/services/transaction"
	"vigil/internal/utils/pagination"
	"vigil/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type TransactionHandler struct {
	service   transaction.Service
	dashboard dashboard.Service
}

func NewTransactionHandler(service transaction.Service, dashboard dashboard.Service) *TransactionHandler {
	return &TransactionHandler{service: service, dashboard: dashboard}
}

// Submit ingests a transaction and returns it classified, along with
// the rules that fired.
func (h *TransactionHandler) Submit(c *fiber.Ctx) error {
	var req transaction.SubmitRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if claims, ok := c.Locals("claims").(*models.UserClaims); ok {
		req.UserID = claims.UserID
	}

	tx, effects, err := h.service.Submit(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, transaction.ErrDuplicateReference):
			return response.Conflict(c, err.Error())
		case errors.Is(err, transaction.ErrInvalidType),
			errors.Is(err, transaction.ErrInvalidAmount),
			errors.Is(err, transaction.ErrInvalidRiskScore):
			return response.BadRequest(c, err.Error())
		default:
			return response.ServerError(c, "Failed to process transaction")
		}
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"transaction": tx,
		"fired_rules": effects,
	})
}

func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid transaction id")
	}

	tx, err := h.service.Get(c.Context(), uint(id))
	if err != nil {
		if errors.Is(err, transaction.ErrTransactionNotFound) {
			return response.NotFound(c, err.Error())
		}
		return response.ServerError(c, "Failed to get transaction")
	}
	return c.JSON(tx)
}

// List returns a filtered, paginated transaction listing.
func (h *TransactionHandler) List(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)
	page, err := h.dashboard.ListTransactions(
		c.Context(),
		c.Query("status"),
		c.Query("risk_level"),
		p.Page,
		p.Limit,
	)
	if err != nil {
		return response.ServerError(c, "Failed to list transactions")
	}
	return c.JSON(page)
}

// OverrideStatus is the privileged manual status update. It may set any
// valid status, including de-escalations the engine would never apply.
func (h *TransactionHandler) OverrideStatus(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid transaction id")
	}

	var input struct {
		Status string `json:"status"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	tx, err := h.service.OverrideStatus(c.Context(), uint(id), input.Status)
	if err != nil {
		switch {
		case errors.Is(err, transaction.ErrTransactionNotFound):
			return response.NotFound(c, err.Error())
		case errors.Is(err, transaction.ErrInvalidStatus):
			return response.BadRequest(c, err.Error())
		default:
			return response.ServerError(c, "Failed to update transaction status")
		}
	}
	return c.JSON(tx)
}
