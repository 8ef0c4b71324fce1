package services

import "github.com/sambulosenda/glamfric-mobile/internal/common"

// ValidationError rejects a request argument. Message is safe to show.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

func (e *ValidationError) Is(target error) bool { return target == common.ErrorInvalidInput }
