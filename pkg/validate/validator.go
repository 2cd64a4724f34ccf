package validate

import (
	"log/slog"

	"github.com/gltfkit/gltfkit-go/pkg/pointer"
	"github.com/gltfkit/gltfkit-go/pkg/sourcemap"
)

// Validator runs the enabled rules of a registry.
type Validator struct {
	registry *RuleRegistry

	// Logger is the optional logger for debug output.
	// If nil, logging is disabled.
	Logger *slog.Logger
}

// NewValidator creates a validator over registry.
func NewValidator(registry *RuleRegistry) *Validator {
	return &Validator{registry: registry}
}

// Validate applies every enabled rule in registration order. Violations
// carry the registry's effective severity and, when the document has a
// source index, the position of their pointer.
func (v *Validator) Validate(in *Input) []Violation {
	var m *sourcemap.Map
	if in.Document.Source != nil {
		m = in.Document.Source.Map
	}

	var out []Violation
	for _, rule := range v.registry.EnabledRules() {
		found := rule.Check(in)
		sev := v.registry.GetSeverity(rule.ID())
		for i := range found {
			found[i].Severity = sev
			if m != nil {
				locate(m, &found[i])
			}
		}
		if len(found) > 0 {
			v.debugLog("rule reported violations", "rule", rule.ID(), "count", len(found))
		}
		out = append(out, found...)
	}
	return out
}

// locate fills in the position of the violation's pointer, falling back to
// the nearest indexed ancestor for values the text does not contain.
func locate(m *sourcemap.Map, v *Violation) {
	ptr := v.Pointer
	for {
		if e, ok := m.RangeFor(ptr); ok {
			v.Position = e.KeyStart
			v.Located = true
			return
		}
		if ptr == pointer.Root {
			return
		}
		ptr = pointer.Parent(ptr)
	}
}

// debugLog logs a debug message if logging is enabled.
func (v *Validator) debugLog(msg string, args ...any) {
	if v.Logger != nil {
		v.Logger.Debug(msg, args...)
	}
}
