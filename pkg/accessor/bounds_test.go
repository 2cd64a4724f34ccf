package accessor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gltfkit/gltfkit-go/pkg/gltf"
)

func TestBounds(t *testing.T) {
	min, max := Bounds([]Element{{1, 5}, {-2, 3}, {0, 7}})
	assert.Equal(t, []float64{-2, 3}, min)
	assert.Equal(t, []float64{1, 7}, max)

	min, max = Bounds(nil)
	assert.Nil(t, min)
	assert.Nil(t, max)
}

func TestCheckBounds(t *testing.T) {
	elems := []Element{{0, 0.1}, {1, 0.30000001}}

	ok := gltf.Accessor{Min: []float64{0, 0.1}, Max: []float64{1, 0.3}}
	assert.NoError(t, CheckBounds(ok, elems))

	undeclared := gltf.Accessor{}
	assert.NoError(t, CheckBounds(undeclared, elems))

	tooHigh := gltf.Accessor{Max: []float64{0.5, 1}}
	err := CheckBounds(tooHigh, elems)
	assert.True(t, errors.Is(err, ErrBounds))
	assert.ErrorContains(t, err, "component 0 maximum")

	tooLow := gltf.Accessor{Min: []float64{0, 0.2}}
	assert.ErrorContains(t, CheckBounds(tooLow, elems), "component 1 minimum")
}
