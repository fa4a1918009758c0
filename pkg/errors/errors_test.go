package errors

import (
	"fmt"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHarvestErrorMessage(t *testing.T) {
	err := NewNetwork(3, "fetch failed", io.ErrUnexpectedEOF)
	assert.Equal(t, "[network] page 3: fetch failed - unexpected EOF", err.Error())
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	err = NewValidation("missing fingerprint")
	assert.Equal(t, "[validation] missing fingerprint", err.Error())
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, NewNetwork(1, "timeout", nil).IsRetryable())
	assert.False(t, NewRateLimit(1, 0).IsRetryable())
	assert.False(t, NewParsing(1, "bad html", nil).IsRetryable())
	assert.False(t, NewStore("insert", nil).IsRetryable())

	wrapped := fmt.Errorf("page loop: %w", NewNetwork(2, "reset", nil))
	assert.True(t, IsRetryable(wrapped))
	assert.False(t, IsRetryable(io.EOF))
}

func TestTypeOf(t *testing.T) {
	typ, ok := TypeOf(fmt.Errorf("wrap: %w", NewStore("commit", io.EOF)))
	assert.True(t, ok)
	assert.Equal(t, ErrorTypeStore, typ)

	_, ok = TypeOf(io.EOF)
	assert.False(t, ok)
}
