package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindValidation, KindOf(Validation("brand is required")))
	assert.Equal(t, KindConflict, KindOf(Conflict("barcode %d already exists", 42)))
	assert.Equal(t, KindNotFound, KindOf(NotFound("product not found")))
	assert.Equal(t, KindStore, KindOf(errors.New("connection refused")))
}

func TestKindSurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("stock out: %w", Validation("insufficient stock"))
	assert.True(t, Is(err, KindValidation))
	assert.Equal(t, "insufficient stock", Message(err))
}

func TestStoreKeepsExistingKind(t *testing.T) {
	notFound := NotFound("transaction not found")
	assert.Same(t, notFound, Store(notFound))

	wrapped := Store(errors.New("dial tcp: timeout"))
	assert.Equal(t, KindStore, KindOf(wrapped))
	assert.Equal(t, "storage failure", Message(wrapped))
	assert.Contains(t, wrapped.Error(), "dial tcp")
	assert.Nil(t, Store(nil))
}
