package dto

// CreateCategoryRequest contains the payload for creating a category
type CreateCategoryRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=100"`
	CategoryType string `json:"categoryType" validate:"required,oneof=income expense"`
	Color        string `json:"color" validate:"omitempty,hexcolor"`
}

// UpdateCategoryRequest contains the editable category fields. A type change
// is rejected once transactions or budgets reference the category.
type UpdateCategoryRequest struct {
	Name         string `json:"name" validate:"required,min=1,max=100"`
	CategoryType string `json:"categoryType" validate:"required,oneof=income expense"`
	Color        string `json:"color" validate:"omitempty,hexcolor"`
}
