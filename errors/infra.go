// Package errors defines the infrastructural error family the engine returns
// for failures that are not expression-level faults: an unreadable
// catalogue, a cycle in a hierarchy, a missing reference table. Ordinary
// expression faults never reach here — they are reported as
// [model.Warning] values inside a Result, per the engine's no-throw contract.
package errors

import (
	"errors"
	"fmt"
)

// InfraCode identifies a class of infrastructural failure.
type InfraCode string

const (
	// ErrCatalogueUnreadable indicates the catalogue database could not be opened or read.
	ErrCatalogueUnreadable InfraCode = "catalogue-unreadable"
	// ErrCatalogueNotLoaded indicates validation was attempted before a catalogue finished loading.
	ErrCatalogueNotLoaded InfraCode = "catalogue-not-loaded"
	// ErrHierarchyCycle indicates a cycle was detected in a hierarchy's parent links.
	ErrHierarchyCycle InfraCode = "hierarchy-cycle"
	// ErrReferenceTableMissing indicates a required reference table (forbidden-process CSV, rule-sets file) is absent or unreadable.
	ErrReferenceTableMissing InfraCode = "reference-table-missing"
	// ErrNilExpression indicates a nil or empty expression was passed where one is required.
	ErrNilExpression InfraCode = "nil-expression"
)

// InfraError describes a single infrastructural failure with a code and context.
type InfraError struct {
	Code    InfraCode
	Message string
	Detail  string
}

// Error implements the error interface.
func (e *InfraError) Error() string {
	if e == nil {
		return "infra error <nil>"
	}
	if e.Detail != "" {
		return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Detail)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// New builds an InfraError.
func New(code InfraCode, message string) *InfraError {
	return &InfraError{Code: code, Message: message}
}

// Newf builds an InfraError with detail context.
func Newf(code InfraCode, message, detailFormat string, args ...any) *InfraError {
	return &InfraError{Code: code, Message: message, Detail: fmt.Sprintf(detailFormat, args...)}
}

// AsInfra extracts an *InfraError from err, if present anywhere in its chain.
func AsInfra(err error) (*InfraError, bool) {
	var ie *InfraError
	if errors.As(err, &ie) {
		return ie, true
	}
	return nil, false
}
