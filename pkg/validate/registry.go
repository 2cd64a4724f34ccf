package validate

import (
	"fmt"
	"sort"
	"sync"
)

// RuleRegistry holds the validation rules and their per-run settings.
type RuleRegistry struct {
	mu       sync.RWMutex
	rules    map[string]Rule
	enabled  map[string]bool
	severity map[string]Severity
	order    []string
}

// NewRuleRegistry creates an empty registry.
func NewRuleRegistry() *RuleRegistry {
	return &RuleRegistry{
		rules:    make(map[string]Rule),
		enabled:  make(map[string]bool),
		severity: make(map[string]Severity),
	}
}

// Register adds a rule, enabled with its default severity. Registering an
// ID again replaces the rule but keeps its position.
func (r *RuleRegistry) Register(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := rule.ID()
	if _, exists := r.rules[id]; !exists {
		r.order = append(r.order, id)
	}
	r.rules[id] = rule
	r.enabled[id] = true
	r.severity[id] = rule.DefaultSeverity()
}

// Enable turns a rule back on.
func (r *RuleRegistry) Enable(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled[id] = true
}

// Disable stops a rule from running.
func (r *RuleRegistry) Disable(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.enabled[id] = false
}

// SetSeverity overrides the severity reported for a rule.
func (r *RuleRegistry) SetSeverity(id string, severity Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.severity[id] = severity
}

// IsEnabled reports whether the rule runs.
func (r *RuleRegistry) IsEnabled(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.enabled[id]
}

// GetSeverity returns the effective severity for a rule.
func (r *RuleRegistry) GetSeverity(id string) Severity {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if sev, ok := r.severity[id]; ok {
		return sev
	}
	return SeverityError
}

// Lookup returns the rule registered under id.
func (r *RuleRegistry) Lookup(id string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.rules[id]
	return rule, ok
}

// EnabledRules returns the enabled rules in registration order.
func (r *RuleRegistry) EnabledRules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []Rule
	for _, id := range r.order {
		if r.enabled[id] {
			out = append(out, r.rules[id])
		}
	}
	return out
}

// AllRules returns every registered rule in registration order.
func (r *RuleRegistry) AllRules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Rule, len(r.order))
	for i, id := range r.order {
		out[i] = r.rules[id]
	}
	return out
}

// Count returns the number of registered rules.
func (r *RuleRegistry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rules)
}

// Configure disables the listed rules and applies severity overrides.
// Unknown IDs are an error.
func (r *RuleRegistry) Configure(disable []string, severity map[string]string) error {
	for _, id := range disable {
		if _, ok := r.Lookup(id); !ok {
			return fmt.Errorf("unknown rule %s", id)
		}
		r.Disable(id)
	}
	ids := make([]string, 0, len(severity))
	for id := range severity {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if _, ok := r.Lookup(id); !ok {
			return fmt.Errorf("unknown rule %s", id)
		}
		sev, err := ParseSeverity(severity[id])
		if err != nil {
			return fmt.Errorf("rule %s: %w", id, err)
		}
		r.SetSeverity(id, sev)
	}
	return nil
}
