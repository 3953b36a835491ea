package parser

import (
	"iter"

	"github.com/zishang520/engine.io-codec/packet"
	"github.com/zishang520/engine.io-codec/types"
)

// DecodePayloadCallback receives each decoded packet of a payload together
// with its zero-based index and the number of frames in the payload.
// Returning false stops delivery; the remaining frames are never decoded.
type DecodePayloadCallback func(packet *packet.Packet, index int, total int) bool

type Parser interface {
	Protocol() int
	EncodePacket(*packet.Packet, bool) (types.BufferInterface, error)
	DecodePacket(types.BufferInterface, ...bool) *packet.Packet
	EncodePayload([]*packet.Packet, ...bool) (types.BufferInterface, error)
	EncodePayloadAsBinary([]*packet.Packet) (types.BufferInterface, error)
	DecodePayload(types.BufferInterface, DecodePayloadCallback)
	Packets(types.BufferInterface) iter.Seq2[int, *packet.Packet]
}

// Packet types.
var (
	PACKET_TYPES map[packet.Type]byte = map[packet.Type]byte{
		packet.OPEN:    '0',
		packet.CLOSE:   '1',
		packet.PING:    '2',
		packet.PONG:    '3',
		packet.MESSAGE: '4',
		packet.UPGRADE: '5',
		packet.NOOP:    '6',
	}

	PACKET_TYPES_REVERSE map[byte]packet.Type = map[byte]packet.Type{
		'0': packet.OPEN,
		'1': packet.CLOSE,
		'2': packet.PING,
		'3': packet.PONG,
		'4': packet.MESSAGE,
		'5': packet.UPGRADE,
		'6': packet.NOOP,
	}

	// Premade error packet. Decoders hand out copies of it.
	ERROR_PACKET = packet.Packet{Type: packet.ERROR, Data: ERROR_DATA}
)

const (
	ERROR_DATA = "parser error"

	// Binary payload framing.
	STRING_MARKER = byte(0x00)
	BINARY_MARKER = byte(0x01)
	LENGTH_END    = byte(0xFF)
)

// IsError reports whether p is the parser error packet.
func IsError(p *packet.Packet) bool {
	if p == nil || p.Type != packet.ERROR {
		return false
	}
	data, ok := p.Data.(string)
	return ok && data == ERROR_DATA
}

func errorPacket() *packet.Packet {
	p := ERROR_PACKET
	return &p
}
