package log

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"
)

// Trace files are a plain sequence of CBOR-encoded events. Timestamps are
// written as RFC 3339 strings so nanoseconds survive the round trip.
var (
	traceEnc cbor.EncMode
	traceDec cbor.DecMode
)

func init() {
	var err error
	traceEnc, err = cbor.EncOptions{
		Sort:          cbor.SortCanonical,
		IndefLength:   cbor.IndefLengthForbidden,
		NilContainers: cbor.NilContainerAsNull,
		Time:          cbor.TimeRFC3339Nano,
	}.EncMode()
	if err != nil {
		panic(fmt.Sprintf("log: trace encoder mode: %v", err))
	}

	traceDec, err = cbor.DecOptions{
		DupMapKey:   cbor.DupMapKeyQuiet,
		IndefLength: cbor.IndefLengthAllowed,
	}.DecMode()
	if err != nil {
		panic(fmt.Sprintf("log: trace decoder mode: %v", err))
	}
}

// MarshalEvent encodes a single event.
func MarshalEvent(event Event) ([]byte, error) {
	return traceEnc.Marshal(event)
}

// UnmarshalEvent decodes a single event.
func UnmarshalEvent(data []byte) (Event, error) {
	var event Event
	if err := traceDec.Unmarshal(data, &event); err != nil {
		return Event{}, fmt.Errorf("decoding trace event: %w", err)
	}
	return event, nil
}

func newTraceEncoder(w io.Writer) *cbor.Encoder {
	return traceEnc.NewEncoder(w)
}

func newTraceDecoder(r io.Reader) *cbor.Decoder {
	return traceDec.NewDecoder(r)
}
