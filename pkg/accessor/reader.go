package accessor

import (
	"fmt"

	"github.com/gltfkit/gltfkit-go/pkg/gltf"
	"github.com/gltfkit/gltfkit-go/pkg/log"
)

// BufferSource supplies the complete bytes of a document buffer.
// resolve.Session implements it.
type BufferSource interface {
	Buffer(index int) ([]byte, error)
}

// Reader decodes accessors of one document.
type Reader struct {
	doc   *gltf.Document
	src   BufferSource
	trace *log.Session
}

// NewReader returns a Reader over doc's accessors that loads buffers from
// src. trace may be nil.
func NewReader(doc *gltf.Document, src BufferSource, trace *log.Session) *Reader {
	return &Reader{doc: doc, src: src, trace: trace}
}

// Read decodes accessor i, applying sparse substitution. An accessor
// without a buffer view starts out as zeros.
func (r *Reader) Read(i int) ([]Element, error) {
	elems, err := r.read(i)
	if err != nil {
		err = fmt.Errorf("accessor %d: %w", i, err)
		r.trace.Error(log.DirectionIn, log.LayerAccessor, err, "read")
		return nil, err
	}
	return elems, nil
}

func (r *Reader) read(i int) ([]Element, error) {
	acc, err := r.doc.Accessor(i)
	if err != nil {
		return nil, err
	}

	var elems []Element
	if acc.BufferView == nil {
		elems, err = Zeros(acc)
	} else {
		var view gltf.BufferView
		var raw []byte
		view, raw, err = r.view(*acc.BufferView)
		if err != nil {
			return nil, err
		}
		elems, err = Decode(acc, view, raw)
	}
	if err != nil {
		return nil, err
	}

	if acc.Sparse != nil {
		iv, iraw, err := r.view(acc.Sparse.Indices.BufferView)
		if err != nil {
			return nil, fmt.Errorf("sparse indices: %w", err)
		}
		vv, vraw, err := r.view(acc.Sparse.Values.BufferView)
		if err != nil {
			return nil, fmt.Errorf("sparse values: %w", err)
		}
		if err := ApplySparse(elems, acc, iv, iraw, vv, vraw); err != nil {
			return nil, err
		}
	}

	n, _ := acc.Type.NumComponents()
	r.trace.Decode(log.LayerAccessor, log.DecodeEvent{
		Accessor:      i,
		Count:         len(elems),
		Components:    n,
		ComponentType: uint32(acc.ComponentType),
		Sparse:        acc.Sparse != nil,
	})
	return elems, nil
}

func (r *Reader) view(i int) (gltf.BufferView, []byte, error) {
	view, err := r.doc.BufferView(i)
	if err != nil {
		return gltf.BufferView{}, nil, err
	}
	raw, err := r.src.Buffer(view.Buffer)
	if err != nil {
		return gltf.BufferView{}, nil, err
	}
	return view, raw, nil
}
