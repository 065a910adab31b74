// Package diagnostics defines the coded errors and warnings produced by
// every analysis stage. Diagnostics are collected, never thrown: source
// under analysis is being edited live and is expected to be transiently
// invalid.
package diagnostics

import (
	"fmt"

	"github.com/pcodekit/pcheck/internal/token"
)

// Severity of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

// Diagnostic codes. Stable identifiers for hosts that filter or
// suppress by code.
const (
	// Lexical
	ErrL001 = "L001" // unrecognized character
	ErrL002 = "L002" // unterminated string literal

	// Syntax
	ErrP001 = "P001" // unexpected token
	ErrP002 = "P002" // expected token not found
	ErrP003 = "P003" // invalid type name
	ErrP004 = "P004" // unterminated block
	ErrP006 = "P006" // recursion depth limit exceeded

	// Type errors
	ErrT001 = "T001" // incompatible date/time arithmetic
	ErrT002 = "T002" // operator applied to incompatible operands
	ErrT003 = "T003" // call arguments do not match signature
	ErrT004 = "T004" // incompatible assignment
	ErrT005 = "T005" // expression is not callable

	// Type warnings
	ErrW001 = "W001" // implicit narrowing from Object/Any to an application class
)

// DiagnosticError is a single positioned diagnostic.
type DiagnosticError struct {
	Code     string
	Severity Severity
	Message  string
	Token    token.Token
	File     string
}

func (e *DiagnosticError) Error() string {
	file := e.File
	if file == "" {
		file = "<source>"
	}
	return fmt.Sprintf("[%s] %s:%d:%d %s", e.Code, file, e.Token.Line, e.Token.Column, e.Message)
}

// Key is the deduplication key: two diagnostics at the same position
// with the same code are the same diagnostic.
func (e *DiagnosticError) Key() string {
	return fmt.Sprintf("%d:%d:%s", e.Token.Line, e.Token.Column, e.Code)
}

// NewError creates an error-severity diagnostic.
func NewError(code string, tok token.Token, msg string) *DiagnosticError {
	return &DiagnosticError{Code: code, Severity: SeverityError, Message: msg, Token: tok}
}

// NewWarning creates a warning-severity diagnostic.
func NewWarning(code string, tok token.Token, msg string) *DiagnosticError {
	return &DiagnosticError{Code: code, Severity: SeverityWarning, Message: msg, Token: tok}
}
