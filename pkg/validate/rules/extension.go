package rules

import (
	"slices"
	"sort"

	"github.com/gltfkit/gltfkit-go/pkg/compressed"
	"github.com/gltfkit/gltfkit-go/pkg/validate"
)

// Supported lists the extensions this module can read.
var Supported = []string{compressed.ExtensionName}

// RegisterExtensionRules registers the extension declaration rules.
func RegisterExtensionRules(registry *validate.RuleRegistry) {
	registry.Register(NewEXT001())
	registry.Register(NewEXT002())
	registry.Register(NewEXT003())
}

// EXT001 checks that required extensions are also declared as used.
type EXT001 struct {
	*validate.BaseRule
}

func NewEXT001() *EXT001 {
	return &EXT001{
		BaseRule: validate.NewBaseRule("EXT-001", "Required extensions used", "extension", validate.SeverityError),
	}
}

func (r *EXT001) Check(in *validate.Input) []validate.Violation {
	doc := in.Document
	var out []validate.Violation
	for i, name := range doc.ExtensionsRequired {
		if !slices.Contains(doc.ExtensionsUsed, name) {
			v := r.At(at("extensionsRequired", i), "%s is required but not in extensionsUsed", name)
			v.Suggestion = "add " + name + " to extensionsUsed"
			out = append(out, v)
		}
	}
	return out
}

// EXT002 checks that primitive extensions are declared as used.
type EXT002 struct {
	*validate.BaseRule
}

func NewEXT002() *EXT002 {
	return &EXT002{
		BaseRule: validate.NewBaseRule("EXT-002", "Primitive extensions declared", "extension", validate.SeverityWarning),
	}
}

func (r *EXT002) Check(in *validate.Input) []validate.Violation {
	doc := in.Document
	var out []validate.Violation
	for i, m := range doc.Meshes {
		for j, p := range m.Primitives {
			names := make([]string, 0, len(p.Extensions))
			for name := range p.Extensions {
				names = append(names, name)
			}
			sort.Strings(names)
			for _, name := range names {
				if !slices.Contains(doc.ExtensionsUsed, name) {
					out = append(out, r.At(at("meshes", i, "primitives", j, "extensions", name), "%s is not in extensionsUsed", name))
				}
			}
		}
	}
	return out
}

// EXT003 warns about required extensions this module cannot read.
type EXT003 struct {
	*validate.BaseRule
}

func NewEXT003() *EXT003 {
	return &EXT003{
		BaseRule: validate.NewBaseRule("EXT-003", "Required extensions supported", "extension", validate.SeverityWarning),
	}
}

func (r *EXT003) Check(in *validate.Input) []validate.Violation {
	var out []validate.Violation
	for i, name := range in.Document.ExtensionsRequired {
		if !slices.Contains(Supported, name) {
			out = append(out, r.At(at("extensionsRequired", i), "%s is required and not supported", name))
		}
	}
	return out
}
