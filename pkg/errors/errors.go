package errors

import (
	"errors"
	"fmt"
	"time"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeNetwork represents network-related errors
	ErrorTypeNetwork ErrorType = "network"
	// ErrorTypeParsing represents HTML parsing errors
	ErrorTypeParsing ErrorType = "parsing"
	// ErrorTypeRateLimit represents rate limiting errors
	ErrorTypeRateLimit ErrorType = "rate_limit"
	// ErrorTypeCache represents cache-related errors
	ErrorTypeCache ErrorType = "cache"
	// ErrorTypePublisher represents publisher-related errors
	ErrorTypePublisher ErrorType = "publisher"
	// ErrorTypeStore represents persistence errors
	ErrorTypeStore ErrorType = "store"
	// ErrorTypeValidation represents validation errors
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConfiguration represents configuration errors
	ErrorTypeConfiguration ErrorType = "configuration"
)

// HarvestError represents an error raised while harvesting a listing page
type HarvestError struct {
	Type    ErrorType
	Page    int
	Message string
	Err     error
	Time    time.Time
}

// Error implements the error interface
func (e *HarvestError) Error() string {
	where := ""
	if e.Page > 0 {
		where = fmt.Sprintf(" page %d:", e.Page)
	}
	if e.Err != nil {
		return fmt.Sprintf("[%s]%s %s - %v", e.Type, where, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s]%s %s", e.Type, where, e.Message)
}

// Unwrap returns the underlying error
func (e *HarvestError) Unwrap() error {
	return e.Err
}

// IsRetryable returns true if the error is retryable
func (e *HarvestError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeNetwork:
		return true
	default:
		return false
	}
}

// New creates a new HarvestError
func New(errType ErrorType, page int, message string, err error) *HarvestError {
	return &HarvestError{
		Type:    errType,
		Page:    page,
		Message: message,
		Err:     err,
		Time:    time.Now(),
	}
}

// NewNetwork creates a new network error
func NewNetwork(page int, message string, err error) *HarvestError {
	return New(ErrorTypeNetwork, page, message, err)
}

// NewParsing creates a new parsing error
func NewParsing(page int, message string, err error) *HarvestError {
	return New(ErrorTypeParsing, page, message, err)
}

// NewRateLimit creates a new rate limit error
func NewRateLimit(page int, duration time.Duration) *HarvestError {
	message := fmt.Sprintf("rate limited for %v", duration)
	return New(ErrorTypeRateLimit, page, message, nil)
}

// NewCache creates a new cache error
func NewCache(message string, err error) *HarvestError {
	return New(ErrorTypeCache, 0, message, err)
}

// NewPublisher creates a new publisher error
func NewPublisher(message string, err error) *HarvestError {
	return New(ErrorTypePublisher, 0, message, err)
}

// NewStore creates a new store error
func NewStore(message string, err error) *HarvestError {
	return New(ErrorTypeStore, 0, message, err)
}

// NewValidation creates a new validation error
func NewValidation(message string) *HarvestError {
	return New(ErrorTypeValidation, 0, message, nil)
}

// NewConfiguration creates a new configuration error
func NewConfiguration(message string, err error) *HarvestError {
	return New(ErrorTypeConfiguration, 0, message, err)
}

// TypeOf reports the ErrorType of the first HarvestError in err's chain
func TypeOf(err error) (ErrorType, bool) {
	var he *HarvestError
	if errors.As(err, &he) {
		return he.Type, true
	}
	return "", false
}

// IsRetryable reports whether err wraps a retryable HarvestError
func IsRetryable(err error) bool {
	var he *HarvestError
	if errors.As(err, &he) {
		return he.IsRetryable()
	}
	return false
}
