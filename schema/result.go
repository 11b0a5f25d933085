package schema

import (
	"github.com/kaptinlin/go-i18n"
	"github.com/kaptinlin/ucl"
)

// ErrorCode is the fixed, enumerated error taxonomy spec.md §4.9 requires
// the validator's output to use: every EvaluationError carries exactly one
// of these, regardless of which keyword raised it.
type ErrorCode string

const (
	TypeMismatch      ErrorCode = "TypeMismatch"
	InvalidSchema     ErrorCode = "InvalidSchema"
	MissingProperty   ErrorCode = "MissingProperty"
	Constraint        ErrorCode = "Constraint"
	MissingDependency ErrorCode = "MissingDependency"
	Unknown           ErrorCode = "Unknown"
)

// EvaluationError is one keyword's failure. Keyword/I18nKey/Message/Params
// are kept from the teacher's shape (result.go) for message templating and
// localization; Code narrows the teacher's free-form per-keyword string down
// to spec.md's six-member taxonomy, and Value carries the offending
// instance value spec.md's "(code, message, offending value)" output
// requires.
type EvaluationError struct {
	Keyword string
	Code    ErrorCode
	I18nKey string
	Message string
	Params  map[string]any
	Value   *ucl.Value
}

// NewEvaluationError creates an evaluation error. params is an optional
// trailing arg so keyword files whose message has no placeholders can omit
// it.
func NewEvaluationError(keyword string, code ErrorCode, i18nKey, message string, value *ucl.Value, params ...map[string]any) *EvaluationError {
	e := &EvaluationError{Keyword: keyword, Code: code, I18nKey: i18nKey, Message: message, Value: value}
	if len(params) > 0 {
		e.Params = params[0]
	}
	return e
}

func (e *EvaluationError) Error() string {
	return replace(e.Message, e.Params)
}

// Localize returns a localized message for this error's I18nKey, falling
// back to the English template when localizer is nil (kept verbatim from
// the teacher's result.go — kaptinlin/go-i18n is wired here per SPEC_FULL.md
// §6.2's domain-stack table).
func (e *EvaluationError) Localize(localizer *i18n.Localizer) string {
	if localizer == nil {
		return e.Error()
	}
	return localizer.Get(e.I18nKey, i18n.Vars(e.Params))
}

// ToErrorInfo converts an EvaluationError into the flat shape spec.md §4.9's
// "validate(schema, value) -> (bool, ErrorInfo)" entry point returns.
func (e *EvaluationError) ToErrorInfo() *ErrorInfo {
	return &ErrorInfo{Code: e.Code, Message: e.Error(), Value: e.Value}
}

// ErrorInfo is the public, single-error validation result spec.md §4.9
// names literally: "a filled error structure (code, message, offending
// value)". Validate returns this; Evaluate (below) returns the full
// teacher-style result tree for hosts that want per-keyword detail.
type ErrorInfo struct {
	Code    ErrorCode
	Message string
	Value   *ucl.Value
}

// EvaluationResult is the teacher's richer per-keyword result tree
// (result.go), narrowed to draft-4: no Annotations (Title/Description/
// Default stay on the compiled Schema), no evaluationPath
// bookkeeping for the 2019-09+ unevaluated* keywords this package doesn't
// implement.
type EvaluationResult struct {
	schema            *Schema
	Valid             bool
	SchemaLocation    string
	InstanceLocation  string
	Errors            map[string]*EvaluationError
	Details           []*EvaluationResult
}

// NewEvaluationResult creates a valid (until proven otherwise) result for
// schema.
func NewEvaluationResult(schema *Schema) *EvaluationResult {
	return &EvaluationResult{schema: schema, Valid: true}
}

func (r *EvaluationResult) SetSchemaLocation(loc string) *EvaluationResult {
	r.SchemaLocation = loc
	return r
}

func (r *EvaluationResult) SetInstanceLocation(loc string) *EvaluationResult {
	r.InstanceLocation = loc
	return r
}

func (r *EvaluationResult) SetInvalid() *EvaluationResult {
	r.Valid = false
	return r
}

func (r *EvaluationResult) IsValid() bool { return r.Valid }

func (r *EvaluationResult) AddError(err *EvaluationError) *EvaluationResult {
	if r.Errors == nil {
		r.Errors = make(map[string]*EvaluationError)
	}
	r.Valid = false
	r.Errors[err.Keyword] = err
	return r
}

func (r *EvaluationResult) AddDetail(detail *EvaluationResult) *EvaluationResult {
	r.Details = append(r.Details, detail)
	return r
}

// FirstError returns the first error found by a depth-first walk of this
// result and its details, or nil if the result is valid. A node's own
// errors are checked before its details, and details are visited in the
// order keywords are evaluated in (validate.go). Errors is a map keyed by
// keyword, so when several keywords of one node failed, which of them is
// returned is not defined.
func (r *EvaluationResult) FirstError() *EvaluationError {
	for _, err := range r.Errors {
		return err
	}
	for _, d := range r.Details {
		if err := d.FirstError(); err != nil {
			return err
		}
	}
	return nil
}

// ToErrorInfo converts the tree's first error into spec.md §4.9's flat
// (bool, ErrorInfo) shape.
func (r *EvaluationResult) ToErrorInfo() (bool, *ErrorInfo) {
	if r.Valid {
		return true, nil
	}
	if err := r.FirstError(); err != nil {
		return false, err.ToErrorInfo()
	}
	return false, &ErrorInfo{Code: Unknown, Message: "validation failed"}
}

// AllErrors flattens every EvaluationError in this result and its details,
// for hosts that want every failure rather than just the first. Details
// follow evaluation order; the errors of a single node come in map order,
// which is not defined.
func (r *EvaluationResult) AllErrors() []*EvaluationError {
	var out []*EvaluationError
	for _, err := range r.Errors {
		out = append(out, err)
	}
	for _, d := range r.Details {
		out = append(out, d.AllErrors()...)
	}
	return out
}
