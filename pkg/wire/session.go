package wire

import "google.golang.org/protobuf/encoding/protowire"

// SessionData field numbers.
const (
	fieldSessionSecVer protowire.Number = 2
	fieldSessionSec0   protowire.Number = 10
	fieldSessionSec1   protowire.Number = 11
	fieldSessionSec2   protowire.Number = 12

	fieldSec0Msg  protowire.Number = 1
	fieldSec0Cmd  protowire.Number = 20
	fieldSec0Resp protowire.Number = 21

	fieldSec0RespStatus protowire.Number = 1
)

// SessionData is the message exchanged on prov-session.
// Exactly one of Sec0, Sec1 or Sec2 is set.
type SessionData struct {
	SecVer SecScheme
	Sec0   *Sec0Payload

	// Sec1 and Sec2 hold the scheme payloads undecoded. Schemes that use
	// them decode their own messages.
	Sec1 []byte
	Sec2 []byte
}

// Sec0Payload is the Sec0 handshake message.
type Sec0Payload struct {
	Msg Sec0MsgType

	// Command is set on the client's session command.
	Command bool

	// Response is set on the device's session response.
	Response *Sec0Response
}

// Sec0Response is the device's answer to a Sec0 session command.
type Sec0Response struct {
	Status Status
}

// NewSec0SessionCommand returns the Sec0 session setup request.
func NewSec0SessionCommand() *SessionData {
	return &SessionData{
		SecVer: SecScheme0,
		Sec0: &Sec0Payload{
			Msg:     Sec0SessionCommand,
			Command: true,
		},
	}
}

// EncodeSessionData encodes a session message.
func EncodeSessionData(s *SessionData) []byte {
	var e encoder
	e.varint(fieldSessionSecVer, uint64(s.SecVer))
	switch {
	case s.Sec0 != nil:
		e.message(fieldSessionSec0, encodeSec0(s.Sec0))
	case s.Sec1 != nil:
		e.message(fieldSessionSec1, s.Sec1)
	case s.Sec2 != nil:
		e.message(fieldSessionSec2, s.Sec2)
	}
	return e.b
}

func encodeSec0(p *Sec0Payload) []byte {
	var e encoder
	e.varint(fieldSec0Msg, uint64(p.Msg))
	if p.Command {
		e.message(fieldSec0Cmd, nil)
	}
	if p.Response != nil {
		var r encoder
		r.varint(fieldSec0RespStatus, uint64(p.Response.Status))
		e.message(fieldSec0Resp, r.b)
	}
	return e.b
}

// DecodeSessionData decodes a session message.
func DecodeSessionData(data []byte) (*SessionData, error) {
	fields, err := parseFields(data)
	if err != nil {
		return nil, err
	}

	s := &SessionData{}
	for _, f := range fields {
		switch f.num {
		case fieldSessionSecVer:
			v, err := wantEnum(f)
			if err != nil {
				return nil, err
			}
			s.SecVer = SecScheme(v)
		case fieldSessionSec0:
			if err := wantBytes(f); err != nil {
				return nil, err
			}
			p, err := decodeSec0(f.bytes)
			if err != nil {
				return nil, err
			}
			s.Sec0 = p
		case fieldSessionSec1:
			if err := wantBytes(f); err != nil {
				return nil, err
			}
			s.Sec1 = append([]byte{}, f.bytes...)
		case fieldSessionSec2:
			if err := wantBytes(f); err != nil {
				return nil, err
			}
			s.Sec2 = append([]byte{}, f.bytes...)
		}
	}
	return s, nil
}

func decodeSec0(data []byte) (*Sec0Payload, error) {
	fields, err := parseFields(data)
	if err != nil {
		return nil, err
	}

	p := &Sec0Payload{}
	for _, f := range fields {
		switch f.num {
		case fieldSec0Msg:
			v, err := wantEnum(f)
			if err != nil {
				return nil, err
			}
			p.Msg = Sec0MsgType(v)
		case fieldSec0Cmd:
			if err := wantBytes(f); err != nil {
				return nil, err
			}
			p.Command = true
		case fieldSec0Resp:
			if err := wantBytes(f); err != nil {
				return nil, err
			}
			inner, err := parseFields(f.bytes)
			if err != nil {
				return nil, err
			}
			resp := &Sec0Response{}
			for _, g := range inner {
				if g.num == fieldSec0RespStatus && g.typ == protowire.VarintType {
					resp.Status = Status(g.varint)
				}
			}
			p.Response = resp
		}
	}
	return p, nil
}
