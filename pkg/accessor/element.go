package accessor

// Element is one decoded accessor entry: numComponents values in storage
// order.
type Element []float64

// Rows splits a matrix element into n rows of n values. Matrices are read
// as packed n×n blocks in row-major order. Rows returns nil when the
// element does not hold exactly n×n values.
func (e Element) Rows(n int) [][]float64 {
	if n <= 0 || len(e) != n*n {
		return nil
	}
	rows := make([][]float64, n)
	for r := range n {
		rows[r] = e[r*n : (r+1)*n : (r+1)*n]
	}
	return rows
}

// Flatten concatenates elements into one slice.
func Flatten(elems []Element) []float64 {
	if len(elems) == 0 {
		return nil
	}
	out := make([]float64, 0, len(elems)*len(elems[0]))
	for _, e := range elems {
		out = append(out, e...)
	}
	return out
}

// Group splits flat values into elements of n components. Trailing values
// that do not fill a whole element are dropped.
func Group(flat []float64, n int) []Element {
	if n <= 0 {
		return nil
	}
	count := len(flat) / n
	out := make([]Element, count)
	for i := range count {
		out[i] = Element(flat[i*n : (i+1)*n : (i+1)*n])
	}
	return out
}
