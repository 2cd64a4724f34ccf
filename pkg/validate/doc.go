// Package validate checks glTF documents against a registry of rules.
//
// Each rule has a stable ID (e.g. "REF-002"), a category and a default
// severity. A RuleRegistry holds the rules and per-run overrides: rules can
// be disabled and their severity changed without touching the rule itself.
//
// # Rule Categories
//
//   - asset: the asset block and version
//   - reference: indices that point into another array
//   - structure: byte ranges, node hierarchy and primitive shape
//   - data: decoded accessor contents, needing resolved buffers
//   - extension: extension declarations
//
// Violations name the JSON pointer of the offending value. The Validator
// adds its one-based line and column from the document's source index.
//
// # Usage
//
//	registry := rules.NewDefaultRegistry()
//	registry.Disable("EXT-002")
//	v := validate.NewValidator(registry)
//	violations := v.Validate(&validate.Input{Document: doc, Source: session})
//	if validate.HasErrors(violations) {
//		...
//	}
package validate
