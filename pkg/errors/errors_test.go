package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsErrorType(t *testing.T) {
	assert.True(t, IsErrorType(NewConfigMissingRequired("NEO4J_URI"), ErrorTypeConfig))
	assert.True(t, IsErrorType(NewBackendUnavailable("bolt://localhost:7687", nil), ErrorTypeGraph))
	assert.True(t, IsErrorType(NewSchemaViolation(256, 128), ErrorTypeGraph))
	assert.True(t, IsErrorType(NewEmbeddingUnavailable("text-embedding-004", nil), ErrorTypeEmbedding))
	assert.True(t, IsErrorType(ErrEmbeddingEmpty, ErrorTypeEmbedding))
	assert.False(t, IsErrorType(NewEmbeddingUnavailable("m", nil), ErrorTypeGraph))
	assert.False(t, IsErrorType(errors.New("plain"), ErrorTypeGraph))
}

func TestIsErrorType_Wrapped(t *testing.T) {
	inner := NewBackendUnavailable("bolt://localhost:7687", nil)
	wrapped := fmt.Errorf("connect: %w", inner)
	assert.True(t, IsErrorType(wrapped, ErrorTypeGraph))

	skipped := NewArticleSkipped("tg-1001", inner)
	assert.True(t, IsErrorType(skipped, ErrorTypeIngest))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(NewBackendUnavailable("bolt://localhost:7687", nil)))
	assert.True(t, IsRetryable(NewEmbeddingUnavailable("text-embedding-004", nil)))
	assert.True(t, IsRetryable(ErrEmbeddingEmpty))

	assert.False(t, IsRetryable(NewConfigMissingRequired("NEO4J_URI")))
	assert.False(t, IsRetryable(NewQueryRejected("RETURN 1", "syntax", nil)))
	assert.False(t, IsRetryable(NewSchemaViolation(256, 128)))
	assert.False(t, IsRetryable(errors.New("plain")))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t,
		"[config] missing required config: NEO4J_URI",
		NewConfigMissingRequired("NEO4J_URI").Error())
	assert.Equal(t,
		"[graph] embedding dimension mismatch: want 256, got 128",
		NewSchemaViolation(256, 128).Error())

	rejected := NewQueryRejected("RETURN 1", "status 422: invalid", nil)
	assert.Equal(t, "[graph] query rejected: status 422: invalid", rejected.Error())
	assert.Equal(t, "RETURN 1", rejected.Statement)

	wrapped := NewBackendUnavailable("bolt://localhost:7687", errors.New("refused"))
	assert.Contains(t, wrapped.Error(), "refused")
	assert.EqualError(t, errors.Unwrap(wrapped), "refused")
}
