package errors

import (
	"fmt"
	"strings"
)

// Error types for the symld analyzer
type ErrorType string

const (
	// Ingest errors
	ErrorTypeIngest ErrorType = "ingest"
	ErrorTypeScan   ErrorType = "scan"

	// Link-time conditions
	ErrorTypeLink   ErrorType = "link"
	ErrorTypeUnlink ErrorType = "unlink"

	// Lookup errors
	ErrorTypeNotFound  ErrorType = "not_found"
	ErrorTypeAmbiguous ErrorType = "ambiguous"

	// Configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// IngestError represents a fatal error during listing ingest: a
// malformed or duplicate object header, or a seed symbol that names no
// definition. Unrecognized type codes are reported as ScanError.
type IngestError struct {
	Type       ErrorType
	File       string
	Line       int
	Operation  string
	Underlying error
}

// NewIngestError creates a new ingest error with context
func NewIngestError(op string, err error) *IngestError {
	return &IngestError{
		Type:       ErrorTypeIngest,
		Operation:  op,
		Underlying: err,
	}
}

// WithLocation adds file and line information to the error
func (e *IngestError) WithLocation(file string, line int) *IngestError {
	e.File = file
	e.Line = line
	return e
}

// Error implements the error interface
func (e *IngestError) Error() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d: %s failed: %v", e.File, e.Line, e.Operation, e.Underlying)
	}
	return fmt.Sprintf("%s failed: %v", e.Operation, e.Underlying)
}

// Unwrap returns the underlying error for errors.Is/As
func (e *IngestError) Unwrap() error {
	return e.Underlying
}

// ScanError represents a malformed line in a listing file. Scan
// errors are always fatal and cite file and line.
type ScanError struct {
	Type ErrorType
	File string
	Line int
	Text string
}

// NewScanError creates a new scan error
func NewScanError(file string, line int, text string) *ScanError {
	return &ScanError{
		Type: ErrorTypeScan,
		File: file,
		Line: line,
		Text: text,
	}
}

// Error implements the error interface
func (e *ScanError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.File, e.Line, e.Text)
}

// LinkWarning represents a non-fatal condition noticed while building
// the graph or linking: a type disagreement between two definitions of
// the same symbol, or an import that no object defines.
type LinkWarning struct {
	Type   ErrorType
	Symbol string
	Object string
	Detail string
}

// NewLinkWarning creates a new link warning
func NewLinkWarning(symbol, object, detail string) *LinkWarning {
	return &LinkWarning{
		Type:   ErrorTypeLink,
		Symbol: symbol,
		Object: object,
		Detail: detail,
	}
}

// Error implements the error interface
func (e *LinkWarning) Error() string {
	if e.Object != "" {
		return fmt.Sprintf("symbol %s (in %s): %s", e.Symbol, e.Object, e.Detail)
	}
	return fmt.Sprintf("symbol %s: %s", e.Symbol, e.Detail)
}

// UnlinkRejectedError reports that removing an object would evict a
// member of the Application set; the un-link was refused and nothing
// was mutated.
type UnlinkRejectedError struct {
	Type    ErrorType
	Object  string
	Blocker string
}

// NewUnlinkRejectedError creates a new rejection error
func NewUnlinkRejectedError(object, blocker string) *UnlinkRejectedError {
	return &UnlinkRejectedError{
		Type:    ErrorTypeUnlink,
		Object:  object,
		Blocker: blocker,
	}
}

// Error implements the error interface
func (e *UnlinkRejectedError) Error() string {
	return fmt.Sprintf("cannot unlink %s: %s is in the Application set", e.Object, e.Blocker)
}

// NotFoundError reports a lookup miss in the interactive or removal
// paths, optionally carrying a closest-name suggestion.
type NotFoundError struct {
	Type       ErrorType
	Query      string
	Suggestion string
}

// NewNotFoundError creates a new not-found error
func NewNotFoundError(query string) *NotFoundError {
	return &NotFoundError{
		Type:  ErrorTypeNotFound,
		Query: query,
	}
}

// WithSuggestion adds a did-you-mean candidate to the error
func (e *NotFoundError) WithSuggestion(name string) *NotFoundError {
	e.Suggestion = name
	return e
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	if e.Suggestion != "" {
		return fmt.Sprintf("%q not found (did you mean %q?)", e.Query, e.Suggestion)
	}
	return fmt.Sprintf("%q not found", e.Query)
}

// AmbiguousMatchError reports that a display name matched more than
// one object; the caller must disambiguate with the lib[member] form.
type AmbiguousMatchError struct {
	Type    ErrorType
	Query   string
	Matches []string
}

// NewAmbiguousMatchError creates a new ambiguity error
func NewAmbiguousMatchError(query string, matches []string) *AmbiguousMatchError {
	return &AmbiguousMatchError{
		Type:    ErrorTypeAmbiguous,
		Query:   query,
		Matches: matches,
	}
}

// Error implements the error interface
func (e *AmbiguousMatchError) Error() string {
	return fmt.Sprintf("%q is ambiguous: matches %s", e.Query, strings.Join(e.Matches, ", "))
}

// ConfigError represents a configuration error
type ConfigError struct {
	Field      string
	Value      string
	Underlying error
}

// NewConfigError creates a new config error
func NewConfigError(field, value string, err error) *ConfigError {
	return &ConfigError{
		Field:      field,
		Value:      value,
		Underlying: err,
	}
}

// Error implements the error interface
func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error for field %s (value %s): %v", e.Field, e.Value, e.Underlying)
}

// Unwrap returns the underlying error
func (e *ConfigError) Unwrap() error {
	return e.Underlying
}

// MultiError represents multiple errors
type MultiError struct {
	Errors []error
}

// NewMultiError creates a new multi-error
func NewMultiError(errs []error) *MultiError {
	// Filter out nil errors
	filtered := make([]error, 0, len(errs))
	for _, err := range errs {
		if err != nil {
			filtered = append(filtered, err)
		}
	}
	return &MultiError{Errors: filtered}
}

// Error implements the error interface
func (e *MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("%d errors: %v", len(e.Errors), e.Errors)
}

// Unwrap returns all errors
func (e *MultiError) Unwrap() []error {
	return e.Errors
}
