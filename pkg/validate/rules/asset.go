package rules

import (
	"github.com/gltfkit/gltfkit-go/pkg/validate"
)

// RegisterAssetRules registers the asset block rules.
func RegisterAssetRules(registry *validate.RuleRegistry) {
	registry.Register(NewASSET001())
	registry.Register(NewASSET002())
}

// ASSET001 checks that the asset version can be read.
type ASSET001 struct {
	*validate.BaseRule
}

func NewASSET001() *ASSET001 {
	return &ASSET001{
		BaseRule: validate.NewBaseRule("ASSET-001", "Supported asset version", "asset", validate.SeverityError),
	}
}

func (r *ASSET001) Check(in *validate.Input) []validate.Violation {
	if err := in.Document.CheckVersion(); err != nil {
		v := r.At(at("asset", "version"), "%v", err)
		v.Suggestion = "re-export the asset as glTF 2.0"
		return []validate.Violation{v}
	}
	return nil
}

// ASSET002 notes documents that do not name their generator.
type ASSET002 struct {
	*validate.BaseRule
}

func NewASSET002() *ASSET002 {
	return &ASSET002{
		BaseRule: validate.NewBaseRule("ASSET-002", "Generator named", "asset", validate.SeverityInfo),
	}
}

func (r *ASSET002) Check(in *validate.Input) []validate.Violation {
	if in.Document.Asset.Generator == "" {
		return []validate.Violation{r.At(at("asset"), "asset does not name its generator")}
	}
	return nil
}
