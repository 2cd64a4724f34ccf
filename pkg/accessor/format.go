package accessor

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gltfkit/gltfkit-go/pkg/gltf"
)

// Formatter formats decoded elements for display.
type Formatter struct {
	// Precision is the number of decimals printed per value.
	Precision int

	// MaxElements limits how many elements FormatElements prints.
	// Zero prints all of them.
	MaxElements int

	// ShowIndex prefixes each element with its index.
	ShowIndex bool

	// IndentWidth is the number of spaces per indent level
	IndentWidth int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		Precision:   3,
		MaxElements: 64,
		ShowIndex:   true,
		IndentWidth: 2,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	return strings.Repeat(" ", depth*width) + content
}

// FormatValue formats one component value.
func (f *Formatter) FormatValue(v float64) string {
	s := strconv.FormatFloat(v, 'f', f.Precision, 64)
	if strings.TrimLeft(s, "-0.") == "" && strings.HasPrefix(s, "-") {
		return s[1:]
	}
	return s
}

// FormatElement formats one element according to its structural type:
// scalars as a bare value, vectors as a tuple and matrices as nested rows.
func (f *Formatter) FormatElement(e Element, t gltf.AccessorType) string {
	switch t.Kind() {
	case gltf.KindScalar:
		if len(e) == 1 {
			return f.FormatValue(e[0])
		}
	case gltf.KindMatrix:
		if rows := e.Rows(t.Dimension()); rows != nil {
			parts := make([]string, len(rows))
			for i, row := range rows {
				parts[i] = "[" + f.join(row) + "]"
			}
			return "[" + strings.Join(parts, ", ") + "]"
		}
	}
	return "(" + f.join(e) + ")"
}

// FormatElements formats elems one per line, eliding past MaxElements.
func (f *Formatter) FormatElements(elems []Element, t gltf.AccessorType) string {
	var b strings.Builder
	shown := len(elems)
	if f.MaxElements > 0 && shown > f.MaxElements {
		shown = f.MaxElements
	}
	for i := range shown {
		line := f.FormatElement(elems[i], t)
		if f.ShowIndex {
			line = fmt.Sprintf("[%d] %s", i, line)
		}
		b.WriteString(f.Indent(1, line))
		b.WriteByte('\n')
	}
	if rest := len(elems) - shown; rest > 0 {
		b.WriteString(f.Indent(1, fmt.Sprintf("... %d more", rest)))
		b.WriteByte('\n')
	}
	return b.String()
}

// FormatSummary formats a one-line description of an accessor.
func (f *Formatter) FormatSummary(index int, acc gltf.Accessor) string {
	s := fmt.Sprintf("accessor %d: %d x %s/%s", index, acc.Count, acc.Type, acc.ComponentType)
	if acc.Normalized {
		s += " normalized"
	}
	if acc.Sparse != nil {
		s += fmt.Sprintf(" sparse(%d)", acc.Sparse.Count)
	}
	if acc.BufferView == nil {
		s += " no-view"
	}
	return s
}

func (f *Formatter) join(vals []float64) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = f.FormatValue(v)
	}
	return strings.Join(parts, ", ")
}
