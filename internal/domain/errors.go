package domain

import "errors"

var (
	// ErrInputMissing signals an invocation with no candidate items at all.
	ErrInputMissing = errors.New("no input items")
	// ErrSchemaInvalid signals a malformed invocation payload.
	ErrSchemaInvalid = errors.New("invalid input schema")
	// ErrModelConfigInvalid signals a learned-model configuration that cannot be used.
	ErrModelConfigInvalid = errors.New("invalid model configuration")
)
