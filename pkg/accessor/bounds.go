package accessor

import (
	"fmt"
	"math"

	"github.com/gltfkit/gltfkit-go/pkg/gltf"
)

// Bounds returns the per-component minimum and maximum of elems. Both are
// nil for an empty input.
func Bounds(elems []Element) (min, max []float64) {
	if len(elems) == 0 {
		return nil, nil
	}
	min = append([]float64(nil), elems[0]...)
	max = append([]float64(nil), elems[0]...)
	for _, e := range elems[1:] {
		for c, v := range e {
			if c >= len(min) {
				break
			}
			min[c] = math.Min(min[c], v)
			max[c] = math.Max(max[c], v)
		}
	}
	return min, max
}

// CheckBounds compares the actual bounds of elems with the min and max
// declared on acc. Missing declarations are not checked. Values are
// compared with float32 tolerance since documents commonly round them.
func CheckBounds(acc gltf.Accessor, elems []Element) error {
	if len(elems) == 0 || (acc.Min == nil && acc.Max == nil) {
		return nil
	}
	min, max := Bounds(elems)
	for c := range min {
		if c < len(acc.Min) && min[c] < acc.Min[c]-tolerance(acc.Min[c]) {
			return fmt.Errorf("%w: component %d minimum %g below declared %g", ErrBounds, c, min[c], acc.Min[c])
		}
		if c < len(acc.Max) && max[c] > acc.Max[c]+tolerance(acc.Max[c]) {
			return fmt.Errorf("%w: component %d maximum %g above declared %g", ErrBounds, c, max[c], acc.Max[c])
		}
	}
	return nil
}

func tolerance(v float64) float64 {
	return 1e-6 * math.Max(1, math.Abs(v))
}
