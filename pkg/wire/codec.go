package wire

import (
	"errors"
	"fmt"
	"math"

	"google.golang.org/protobuf/encoding/protowire"
)

// Codec errors.
var (
	// ErrInvalidMessage indicates a malformed or unexpected message.
	ErrInvalidMessage = errors.New("invalid message")

	// ErrStatusFailure matches every *StatusError.
	ErrStatusFailure = errors.New("request failed")
)

// StatusError is returned when a well-formed response carries a
// non-success status.
type StatusError struct {
	// Request names the request the device rejected.
	Request string

	// Status is the status reported by the device.
	Status Status
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s failed: status %s", e.Request, e.Status)
}

// Is reports whether target is ErrStatusFailure.
func (e *StatusError) Is(target error) bool {
	return target == ErrStatusFailure
}

// checkStatus returns a *StatusError for non-success statuses.
func checkStatus(request string, status Status) error {
	if status != StatusSuccess {
		return &StatusError{Request: request, Status: status}
	}
	return nil
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidMessage, fmt.Sprintf(format, args...))
}

// field is one decoded top-level field of a message.
type field struct {
	num    protowire.Number
	typ    protowire.Type
	varint uint64
	bytes  []byte
}

// parseFields splits a message into its varint and length-delimited fields.
// Fields of other wire types are skipped.
func parseFields(b []byte) ([]field, error) {
	var fields []field
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return nil, fmt.Errorf("%w: %v", ErrInvalidMessage, protowire.ParseError(n))
		}
		b = b[n:]

		f := field{num: num, typ: typ}
		switch typ {
		case protowire.VarintType:
			v, m := protowire.ConsumeVarint(b)
			if m < 0 {
				return nil, fmt.Errorf("%w: field %d: %v", ErrInvalidMessage, num, protowire.ParseError(m))
			}
			f.varint = v
			b = b[m:]
		case protowire.BytesType:
			v, m := protowire.ConsumeBytes(b)
			if m < 0 {
				return nil, fmt.Errorf("%w: field %d: %v", ErrInvalidMessage, num, protowire.ParseError(m))
			}
			f.bytes = v
			b = b[m:]
		default:
			m := protowire.ConsumeFieldValue(num, typ, b)
			if m < 0 {
				return nil, fmt.Errorf("%w: field %d: %v", ErrInvalidMessage, num, protowire.ParseError(m))
			}
			b = b[m:]
			continue
		}
		fields = append(fields, f)
	}
	return fields, nil
}

// encoder appends fields in protobuf wire format.
type encoder struct {
	b []byte
}

func (e *encoder) varint(num protowire.Number, v uint64) {
	if v == 0 {
		return
	}
	e.b = protowire.AppendTag(e.b, num, protowire.VarintType)
	e.b = protowire.AppendVarint(e.b, v)
}

func (e *encoder) int32(num protowire.Number, v int32) {
	// Negative int32 values are sign-extended to 64 bits on the wire.
	e.varint(num, uint64(int64(v)))
}

func (e *encoder) bool(num protowire.Number, v bool) {
	e.varint(num, protowire.EncodeBool(v))
}

func (e *encoder) bytes(num protowire.Number, v []byte) {
	if len(v) == 0 {
		return
	}
	e.b = protowire.AppendTag(e.b, num, protowire.BytesType)
	e.b = protowire.AppendBytes(e.b, v)
}

func (e *encoder) string(num protowire.Number, v string) {
	e.bytes(num, []byte(v))
}

// message always emits the field, even for an empty sub-message.
func (e *encoder) message(num protowire.Number, v []byte) {
	e.b = protowire.AppendTag(e.b, num, protowire.BytesType)
	e.b = protowire.AppendBytes(e.b, v)
}

// wantBytes rejects a field that is not length-delimited.
func wantBytes(f field) error {
	if f.typ != protowire.BytesType {
		return invalidf("field %d: expected bytes, got wire type %d", f.num, f.typ)
	}
	return nil
}

// wantVarint rejects a field that is not a varint.
func wantVarint(f field) error {
	if f.typ != protowire.VarintType {
		return invalidf("field %d: expected varint, got wire type %d", f.num, f.typ)
	}
	return nil
}

// wantEnum reads a varint enum field. Values that do not fit the
// one-byte enum types are rejected rather than truncated.
func wantEnum(f field) (uint8, error) {
	if err := wantVarint(f); err != nil {
		return 0, err
	}
	if f.varint > math.MaxUint8 {
		return 0, invalidf("field %d: enum value %d out of range", f.num, f.varint)
	}
	return uint8(f.varint), nil
}
