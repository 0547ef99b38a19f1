package service

import (
	"strings"

	"github.com/google/uuid"
)

type AddProductRequest struct {
	Brand       string `json:"brand" validate:"required,min=2,max=50"`
	Barcode     int64  `json:"barcode" validate:"required,gt=0"`
	Description string `json:"description" validate:"max=500"`
	Category    string `json:"category" validate:"required,max=50"`
	Stocks      *int64 `json:"stocks" validate:"required,gte=0,lte=2147483647"`
}

func (r *AddProductRequest) normalize() {
	r.Brand = strings.TrimSpace(r.Brand)
	r.Category = strings.TrimSpace(r.Category)
	r.Description = strings.TrimSpace(r.Description)
}

// EditProductRequest is a partial update: nil fields keep their current value.
// Barcode may only echo the current value.
type EditProductRequest struct {
	Brand       *string `json:"brand" validate:"omitempty,min=2,max=50"`
	Barcode     *int64  `json:"barcode" validate:"omitempty,gt=0"`
	Description *string `json:"description" validate:"omitempty,max=500"`
	Category    *string `json:"category" validate:"omitempty,min=1,max=50"`
	Stocks      *int64  `json:"stocks" validate:"omitempty,gte=0,lte=2147483647"`
}

func (r *EditProductRequest) normalize() {
	trim := func(s *string) {
		if s != nil {
			*s = strings.TrimSpace(*s)
		}
	}
	trim(r.Brand)
	trim(r.Category)
	trim(r.Description)
}

func (r *EditProductRequest) empty() bool {
	return r.Brand == nil && r.Barcode == nil && r.Description == nil && r.Category == nil && r.Stocks == nil
}

// RecordTransactionRequest is the body of POST /transactions
type RecordTransactionRequest struct {
	ProductID uuid.UUID `json:"productId" validate:"uuid_required"`
	Action    string    `json:"action" validate:"required"`
	Quantity  int64     `json:"quantity"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8,max=72"`
}
