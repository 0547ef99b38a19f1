package validator

import (
	"testing"

	"go-inventory-tracker/internal/apperr"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Brand   string    `json:"brand" validate:"required,min=2,max=50"`
	Barcode int64     `json:"barcode" validate:"gt=0"`
	OwnerID uuid.UUID `json:"ownerId" validate:"uuid_required"`
	Note    *string   `json:"note" validate:"omitempty,max=5"`
}

func TestValidatePasses(t *testing.T) {
	err := Validate(&sample{Brand: "Acme", Barcode: 1, OwnerID: uuid.New()})
	assert.NoError(t, err)
}

func TestValidateReportsJSONFieldNames(t *testing.T) {
	long := "too long note"
	err := Validate(&sample{Brand: "A", Barcode: 0, Note: &long})
	require.Error(t, err)

	assert.True(t, apperr.Is(err, apperr.KindValidation))
	msg := apperr.Message(err)
	assert.Contains(t, msg, "brand must be at least 2 characters")
	assert.Contains(t, msg, "barcode must be greater than 0")
	assert.Contains(t, msg, "ownerId is required")
	assert.Contains(t, msg, "note must be at most 5 characters")
}

func TestValidateStructCountsRunes(t *testing.T) {
	errs := ValidateStruct(&sample{Brand: "ÅÖ", Barcode: 3, OwnerID: uuid.New()})
	assert.Empty(t, errs)
}
