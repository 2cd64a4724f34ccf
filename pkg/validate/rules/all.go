// Package rules contains the document validation rules.
package rules

import (
	"fmt"

	"github.com/gltfkit/gltfkit-go/pkg/pointer"
	"github.com/gltfkit/gltfkit-go/pkg/validate"
)

// RegisterAllRules registers all validation rules with the given registry.
func RegisterAllRules(registry *validate.RuleRegistry) {
	RegisterAssetRules(registry)
	RegisterReferenceRules(registry)
	RegisterStructureRules(registry)
	RegisterDataRules(registry)
	RegisterExtensionRules(registry)
}

// NewDefaultRegistry creates a new registry with all rules registered.
func NewDefaultRegistry() *validate.RuleRegistry {
	registry := validate.NewRuleRegistry()
	RegisterAllRules(registry)
	return registry
}

// at builds a pointer from property names and array indices.
func at(parts ...any) string {
	ptr := pointer.Root
	for _, p := range parts {
		switch v := p.(type) {
		case int:
			ptr = pointer.AppendIndex(ptr, v)
		case string:
			ptr = pointer.Append(ptr, v)
		default:
			panic(fmt.Sprintf("rules: pointer part %T", p))
		}
	}
	return ptr
}

func inRange(i, n int) bool {
	return i >= 0 && i < n
}
