package handlers

import (
	"net/http"

	"fintrack-api/internal/dto"
	"fintrack-api/internal/errors"
	"fintrack-api/internal/models"
	"fintrack-api/internal/repositories"
	"fintrack-api/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// BudgetHandler handles budget-related HTTP requests
type BudgetHandler struct {
	budgetService services.BudgetServiceInterface
}

// NewBudgetHandler creates a new budget handler
func NewBudgetHandler(budgetService services.BudgetServiceInterface) *BudgetHandler {
	return &BudgetHandler{
		budgetService: budgetService,
	}
}

// CreateBudget creates a monthly budget for a category
// @Summary Create budget
// @Description Create a budget for a (category, month) pair. Spent is seeded from existing expenses in that month.
// @Tags Budgets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateBudgetRequest true "Budget details"
// @Success 201 {object} models.Budget "Created budget with seeded spent"
// @Failure 400 {object} errors.ErrorResponse "BUDGET_003 - Invalid amount or VALIDATION_007 - Invalid month key"
// @Failure 404 {object} errors.ErrorResponse "CATEGORY_001 - Category not found"
// @Failure 409 {object} errors.ErrorResponse "BUDGET_002 - Budget already exists for this category and month"
// @Router /budgets [post]
func (h *BudgetHandler) CreateBudget(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.CreateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	budget, err := h.budgetService.CreateBudget(userID, &req)
	if err != nil {
		switch err {
		case services.ErrInvalidBudgetValue:
			return SendError(c, errors.BudgetInvalidAmount)
		case models.ErrInvalidBudgetMonth:
			return SendError(c, errors.ValidationInvalidMonth)
		case repositories.ErrCategoryNotFound:
			return SendError(c, errors.CategoryNotFound)
		case services.ErrBudgetAlreadyExists:
			return SendError(c, errors.BudgetAlreadyExists)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, budget)
}

// GetBudgets lists the authenticated user's budgets, optionally for one month
// @Summary List budgets
// @Tags Budgets
// @Security BearerAuth
// @Produce json
// @Param month query string false "Month key (YYYY-MM)"
// @Success 200 {array} models.Budget "Budgets"
// @Failure 400 {object} errors.ErrorResponse "VALIDATION_007 - Invalid month key"
// @Router /budgets [get]
func (h *BudgetHandler) GetBudgets(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	month := c.QueryParam("month")

	budgets, err := h.budgetService.GetUserBudgets(userID, month)
	if err != nil {
		if err == models.ErrInvalidBudgetMonth {
			return SendError(c, errors.ValidationInvalidMonth)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, budgets)
}

// GetBudget retrieves a single budget by ID
// @Summary Get budget
// @Tags Budgets
// @Security BearerAuth
// @Produce json
// @Param id path string true "Budget ID (UUID)"
// @Success 200 {object} models.Budget "Budget"
// @Failure 404 {object} errors.ErrorResponse "BUDGET_001 - Budget not found"
// @Router /budgets/{id} [get]
func (h *BudgetHandler) GetBudget(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	budgetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Budget ID must be a valid UUID"))
	}

	budget, err := h.budgetService.GetBudget(userID, budgetID)
	if err != nil {
		if err == repositories.ErrBudgetNotFound {
			return SendError(c, errors.BudgetNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, budget)
}

// UpdateBudget updates a budget's target amount
// @Summary Update budget
// @Description Change the budgeted amount. Category and month identify the budget and cannot be changed.
// @Tags Budgets
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "Budget ID (UUID)"
// @Param request body dto.UpdateBudgetRequest true "Budget fields"
// @Success 200 {object} models.Budget "Updated budget"
// @Failure 400 {object} errors.ErrorResponse "BUDGET_003 - Invalid amount"
// @Failure 404 {object} errors.ErrorResponse "BUDGET_001 - Budget not found"
// @Failure 422 {object} errors.ErrorResponse "BUDGET_004 - Budget key is immutable"
// @Router /budgets/{id} [put]
func (h *BudgetHandler) UpdateBudget(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	budgetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Budget ID must be a valid UUID"))
	}

	var req dto.UpdateBudgetRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	budget, err := h.budgetService.UpdateBudget(userID, budgetID, &req)
	if err != nil {
		switch err {
		case repositories.ErrBudgetNotFound:
			return SendError(c, errors.BudgetNotFound)
		case services.ErrBudgetKeyImmutable:
			return SendError(c, errors.BudgetKeyImmutable)
		case services.ErrInvalidBudgetValue:
			return SendError(c, errors.BudgetInvalidAmount)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, budget)
}

// DeleteBudget deletes a budget
// @Summary Delete budget
// @Description Delete a budget. Transactions in the month are unaffected.
// @Tags Budgets
// @Security BearerAuth
// @Produce json
// @Param id path string true "Budget ID (UUID)"
// @Success 200 {object} SuccessResponse{message=string} "Budget deleted"
// @Failure 404 {object} errors.ErrorResponse "BUDGET_001 - Budget not found"
// @Router /budgets/{id} [delete]
func (h *BudgetHandler) DeleteBudget(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	budgetID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Budget ID must be a valid UUID"))
	}

	if err := h.budgetService.DeleteBudget(userID, budgetID); err != nil {
		if err == repositories.ErrBudgetNotFound {
			return SendError(c, errors.BudgetNotFound)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Message: "Budget deleted successfully",
	})
}
