package packet

import (
	"fmt"
	"strconv"
)

type Type string

const (
	OPEN    Type = "open"
	CLOSE   Type = "close"
	PING    Type = "ping"
	PONG    Type = "pong"
	MESSAGE Type = "message"
	UPGRADE Type = "upgrade"
	NOOP    Type = "noop"
	ERROR   Type = "error"
)

type Options struct {
	Compress bool `json:"compress" msgpack:"compress"`
}

// Packet is one unit of application data. Data is nil, a string (text) or a
// []byte (binary). Encoders render any other value through its text form.
type Packet struct {
	Type    Type     `json:"type" msgpack:"type"`
	Data    any      `json:"data,omitempty" msgpack:"data,omitempty"`
	Options *Options `json:"options,omitempty" msgpack:"options,omitempty"`
}

// Binary reports whether the packet carries raw bytes.
func (p *Packet) Binary() bool {
	_, ok := p.Data.([]byte)
	return ok
}

// Bytes returns the raw byte data, if any.
func (p *Packet) Bytes() ([]byte, bool) {
	b, ok := p.Data.([]byte)
	return b, ok
}

// Text returns the text form of Data. Absent data renders as "".
func (p *Packet) Text() string {
	switch v := p.Data.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case fmt.Stringer:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case int:
		return strconv.Itoa(v)
	case int8:
		return strconv.FormatInt(int64(v), 10)
	case int16:
		return strconv.FormatInt(int64(v), 10)
	case int32:
		return strconv.FormatInt(int64(v), 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint:
		return strconv.FormatUint(uint64(v), 10)
	case uint8:
		return strconv.FormatUint(uint64(v), 10)
	case uint16:
		return strconv.FormatUint(uint64(v), 10)
	case uint32:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float32:
		return strconv.FormatFloat(float64(v), 'g', -1, 32)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	return fmt.Sprint(p.Data)
}
