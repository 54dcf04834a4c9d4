package errors

import (
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
	// ErrorTypeGraph represents knowledge graph backend errors
	ErrorTypeGraph ErrorType = "graph"
	// ErrorTypeEmbedding represents embedding provider errors
	ErrorTypeEmbedding ErrorType = "embedding"
	// ErrorTypeIngest represents article ingestion errors
	ErrorTypeIngest ErrorType = "ingest"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// Base exposes the common fields; promotion makes every typed error in this
// package satisfy the same accessor
func (e *BaseError) Base() *BaseError {
	return e
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Config Errors

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// Graph Errors

// ErrBackendUnavailable is returned when a graph backend cannot be reached
type ErrBackendUnavailable struct {
	*BaseError
	Endpoint string
}

func NewBackendUnavailable(endpoint string, err error) *ErrBackendUnavailable {
	return &ErrBackendUnavailable{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("backend unavailable: %s", endpoint), err),
		Endpoint:  endpoint,
	}
}

// ErrQueryRejected is returned when the backend rejects a statement
type ErrQueryRejected struct {
	*BaseError
	Statement string
	Detail    string
}

func NewQueryRejected(statement, detail string, err error) *ErrQueryRejected {
	msg := "query rejected"
	if detail != "" {
		msg = fmt.Sprintf("query rejected: %s", detail)
	}
	return &ErrQueryRejected{
		BaseError: NewBaseError(ErrorTypeGraph, msg, err),
		Statement: statement,
		Detail:    detail,
	}
}

// ErrSchemaViolation is returned when a write breaks a schema invariant,
// such as an embedding whose length differs from the configured dimension
type ErrSchemaViolation struct {
	*BaseError
	Want int
	Got  int
}

func NewSchemaViolation(want, got int) *ErrSchemaViolation {
	return &ErrSchemaViolation{
		BaseError: NewBaseError(ErrorTypeGraph, fmt.Sprintf("embedding dimension mismatch: want %d, got %d", want, got), nil),
		Want:      want,
		Got:       got,
	}
}

// Embedding Errors

// ErrEmbeddingEmpty is returned when the provider returns no vector
var ErrEmbeddingEmpty = NewBaseError(ErrorTypeEmbedding, "provider returned an empty embedding", nil)

// ErrEmbeddingUnavailable is returned when the embedding provider fails
type ErrEmbeddingUnavailable struct {
	*BaseError
	Model string
}

func NewEmbeddingUnavailable(model string, err error) *ErrEmbeddingUnavailable {
	return &ErrEmbeddingUnavailable{
		BaseError: NewBaseError(ErrorTypeEmbedding, fmt.Sprintf("embedding request failed for model %s", model), err),
		Model:     model,
	}
}

// Ingest Errors

// ErrArticleSkipped is returned when one article's ingestion is aborted;
// the pipeline logs it and continues with the rest of the batch
type ErrArticleSkipped struct {
	*BaseError
	MessageID string
}

func NewArticleSkipped(messageID string, err error) *ErrArticleSkipped {
	return &ErrArticleSkipped{
		BaseError: NewBaseError(ErrorTypeIngest, fmt.Sprintf("article skipped: %s", messageID), err),
		MessageID: messageID,
	}
}

// Helper functions

// IsErrorType checks if an error is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	if typed, ok := err.(interface{ Base() *BaseError }); ok {
		return typed.Base().Type == errType
	}
	if wrapper, ok := err.(interface{ Unwrap() error }); ok {
		if inner := wrapper.Unwrap(); inner != nil {
			return IsErrorType(inner, errType)
		}
	}
	return false
}

// IsRetryable checks if an error is retryable
func IsRetryable(err error) bool {
	// Config errors and rejected statements are never retryable
	if IsErrorType(err, ErrorTypeConfig) {
		return false
	}
	if _, ok := err.(*ErrQueryRejected); ok {
		return false
	}
	if _, ok := err.(*ErrSchemaViolation); ok {
		return false
	}
	// Transport failures to the graph or the embedding provider are worth
	// another attempt
	if _, ok := err.(*ErrBackendUnavailable); ok {
		return true
	}
	if IsErrorType(err, ErrorTypeEmbedding) {
		return true
	}
	return false
}
