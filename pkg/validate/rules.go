package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gltfkit/gltfkit-go/pkg/accessor"
	"github.com/gltfkit/gltfkit-go/pkg/gltf"
	"github.com/gltfkit/gltfkit-go/pkg/sourcemap"
)

// ErrNoSource indicates data rules running without a buffer source.
var ErrNoSource = errors.New("no buffer source")

// Severity represents the severity level of a validation issue.
type Severity int

const (
	// SeverityError indicates a document that readers will reject or
	// misread.
	SeverityError Severity = iota
	// SeverityWarning indicates a potential issue that should be addressed.
	SeverityWarning
	// SeverityInfo indicates an informational note or suggestion.
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	default:
		return fmt.Sprintf("unknown(%d)", s)
	}
}

// ParseSeverity parses "error", "warning" or "info".
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(s) {
	case "error":
		return SeverityError, nil
	case "warning", "warn":
		return SeverityWarning, nil
	case "info":
		return SeverityInfo, nil
	default:
		return 0, fmt.Errorf("invalid severity: %s (must be error, warning, or info)", s)
	}
}

// Input is what rules check.
type Input struct {
	Document *gltf.Document

	// Source resolves buffers for rules that decode accessor data. When
	// nil those rules report nothing.
	Source accessor.BufferSource

	reader  *accessor.Reader
	decoded map[int]decoded
}

type decoded struct {
	elems []accessor.Element
	err   error
}

// Decode returns the elements of accessor i, decoding each accessor once
// per Input. It fails when the input has no Source.
func (in *Input) Decode(i int) ([]accessor.Element, error) {
	if in.Source == nil {
		return nil, ErrNoSource
	}
	if d, ok := in.decoded[i]; ok {
		return d.elems, d.err
	}
	if in.reader == nil {
		in.reader = accessor.NewReader(in.Document, in.Source, nil)
		in.decoded = make(map[int]decoded)
	}
	elems, err := in.reader.Read(i)
	in.decoded[i] = decoded{elems: elems, err: err}
	return elems, err
}

// Rule represents a validation rule that can be applied to a document.
type Rule interface {
	// ID returns the unique identifier for this rule (e.g., "REF-001").
	ID() string
	// Name returns a human-readable name for the rule.
	Name() string
	// Category returns the rule category (e.g., "reference", "structure").
	Category() string
	// DefaultSeverity returns the default severity level.
	DefaultSeverity() Severity
	// Check applies the rule and returns any violations.
	Check(in *Input) []Violation
}

// Violation represents a single rule violation found during validation.
type Violation struct {
	// RuleID is the ID of the rule that was violated.
	RuleID string
	// Severity is the severity level of this violation.
	Severity Severity
	// Message describes what went wrong.
	Message string
	// Pointer is the JSON pointer of the offending value.
	Pointer string
	// Position is where Pointer starts in the source text. Valid only when
	// Located is set.
	Position sourcemap.Position
	Located  bool
	// Suggestion provides a suggested fix (if applicable).
	Suggestion string
}

// String returns a formatted string representation of the violation.
func (v Violation) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[%s] %s: %s", v.RuleID, v.Severity, v.Message)

	if v.Pointer != "" {
		fmt.Fprintf(&sb, " at %s", v.Pointer)
	}
	if v.Located {
		fmt.Fprintf(&sb, " (%s)", v.Position)
	}
	if v.Suggestion != "" {
		fmt.Fprintf(&sb, " -> %s", v.Suggestion)
	}
	return sb.String()
}

// HasErrors returns true if any violation has severity Error.
func HasErrors(violations []Violation) bool {
	for _, v := range violations {
		if v.Severity == SeverityError {
			return true
		}
	}
	return false
}

// FilterBySeverity returns violations at or above the given severity level.
func FilterBySeverity(violations []Violation, minSeverity Severity) []Violation {
	var filtered []Violation
	for _, v := range violations {
		if v.Severity <= minSeverity {
			filtered = append(filtered, v)
		}
	}
	return filtered
}

// Count returns how many violations have each severity.
func Count(violations []Violation) map[Severity]int {
	counts := make(map[Severity]int)
	for _, v := range violations {
		counts[v.Severity]++
	}
	return counts
}

// BaseRule provides a default implementation of common Rule methods.
type BaseRule struct {
	id              string
	name            string
	category        string
	defaultSeverity Severity
}

// ID returns the rule ID.
func (r *BaseRule) ID() string { return r.id }

// Name returns the rule name.
func (r *BaseRule) Name() string { return r.name }

// Category returns the rule category.
func (r *BaseRule) Category() string { return r.category }

// DefaultSeverity returns the default severity.
func (r *BaseRule) DefaultSeverity() Severity { return r.defaultSeverity }

// At returns a violation of this rule at ptr with its default severity.
func (r *BaseRule) At(ptr, format string, args ...any) Violation {
	return Violation{
		RuleID:   r.id,
		Severity: r.defaultSeverity,
		Message:  fmt.Sprintf(format, args...),
		Pointer:  ptr,
	}
}

// NewBaseRule creates a new BaseRule with the given properties.
func NewBaseRule(id, name, category string, severity Severity) *BaseRule {
	return &BaseRule{
		id:              id,
		name:            name,
		category:        category,
		defaultSeverity: severity,
	}
}
