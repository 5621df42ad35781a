package services

import (
	"errors"
	"log/slog"

	"fintrack-api/internal/dto"
	"fintrack-api/internal/models"
	"fintrack-api/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrCategoryInUse         = errors.New("category is referenced by transactions or budgets and cannot be deleted")
	ErrCategoryTypeImmutable = errors.New("category type cannot change while transactions or budgets reference it")
)

// CategoryService handles category business logic
type CategoryService struct {
	categoryRepo    repositories.CategoryRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	budgetRepo      repositories.BudgetRepositoryInterface
	logger          *slog.Logger
}

// NewCategoryService creates a new category service
func NewCategoryService(
	categoryRepo repositories.CategoryRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	budgetRepo repositories.BudgetRepositoryInterface,
	logger *slog.Logger,
) CategoryServiceInterface {
	return &CategoryService{
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		budgetRepo:      budgetRepo,
		logger:          logger,
	}
}

// CreateCategory creates a category
func (s *CategoryService) CreateCategory(userID uuid.UUID, req *dto.CreateCategoryRequest) (*models.Category, error) {
	category := &models.Category{
		UserID:       userID,
		Name:         req.Name,
		CategoryType: req.CategoryType,
		Color:        req.Color,
	}

	if err := s.categoryRepo.Create(category); err != nil {
		return nil, err
	}

	s.logger.Info("category created",
		"category_id", category.ID,
		"user_id", userID,
		"type", category.CategoryType)

	return category, nil
}

// GetCategory retrieves one category scoped to its owner
func (s *CategoryService) GetCategory(userID, categoryID uuid.UUID) (*models.Category, error) {
	return s.categoryRepo.GetByIDForUser(categoryID, userID)
}

// GetUserCategories lists the user's categories
func (s *CategoryService) GetUserCategories(userID uuid.UUID) ([]models.Category, error) {
	return s.categoryRepo.GetByUserID(userID)
}

// UpdateCategory edits a category. The type is frozen once transactions or
// budgets reference the category; flipping it would detach budgets from the
// expense contributions they accumulate.
func (s *CategoryService) UpdateCategory(userID, categoryID uuid.UUID, req *dto.UpdateCategoryRequest) (*models.Category, error) {
	category, err := s.categoryRepo.GetByIDForUser(categoryID, userID)
	if err != nil {
		return nil, err
	}

	if req.CategoryType != category.CategoryType {
		referenced, err := s.isReferenced(category.ID)
		if err != nil {
			return nil, err
		}
		if referenced {
			return nil, ErrCategoryTypeImmutable
		}
		category.CategoryType = req.CategoryType
	}

	category.Name = req.Name
	if req.Color != "" {
		category.Color = req.Color
	}

	if err := s.categoryRepo.Update(category); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory removes a category, refused while anything references it
func (s *CategoryService) DeleteCategory(userID, categoryID uuid.UUID) error {
	category, err := s.categoryRepo.GetByIDForUser(categoryID, userID)
	if err != nil {
		return err
	}

	referenced, err := s.isReferenced(category.ID)
	if err != nil {
		return err
	}
	if referenced {
		return ErrCategoryInUse
	}

	if err := s.categoryRepo.Delete(category.ID); err != nil {
		return err
	}

	s.logger.Info("category deleted",
		"category_id", categoryID,
		"user_id", userID)

	return nil
}

func (s *CategoryService) isReferenced(categoryID uuid.UUID) (bool, error) {
	transactions, err := s.transactionRepo.CountByCategoryID(categoryID)
	if err != nil {
		return false, err
	}
	if transactions > 0 {
		return true, nil
	}

	budgets, err := s.budgetRepo.CountByCategoryID(categoryID)
	if err != nil {
		return false, err
	}

	return budgets > 0, nil
}
