package parser

import (
	"encoding/base64"
	"fmt"
	"iter"
	"math"
	"strconv"

	"github.com/zishang520/engine.io-codec/errors"
	"github.com/zishang520/engine.io-codec/log"
	"github.com/zishang520/engine.io-codec/packet"
	"github.com/zishang520/engine.io-codec/types"
	"github.com/zishang520/engine.io-codec/utils"
)

var parser_log = log.NewLog("engine:parser")

type parserv3 struct{}

var (
	defaultParserv3 Parser = &parserv3{}
)

func Parserv3() Parser {
	return defaultParserv3
}

// Current protocol version.
func (*parserv3) Protocol() int {
	return 3
}

// Encodes a packet.
//
//	<packet type id> [ <data> ]
//
// Example:
//
//	5hello world
//	3
//	4
//
// Binary is encoded in an identical principle. Without binary support the
// data is sent as base64, marked with a b before the packet type id.
func (p *parserv3) EncodePacket(data *packet.Packet, supportsBinary bool) (types.BufferInterface, error) {
	if data == nil {
		return nil, errors.Wrap(errors.ErrInvalidPacket, "packet must not be nil").Err()
	}

	msgType, ok := PACKET_TYPES[data.Type]
	if !ok {
		return nil, errors.Wrap(errors.ErrInvalidPacket, fmt.Sprintf("unknown packet type %q", data.Type)).Err()
	}

	if v, ok := data.Data.([]byte); ok {
		if !supportsBinary {
			// Encodes a packet with binary data in a base64 string
			encode := types.NewStringBuffer(make([]byte, 0, 2+base64.StdEncoding.EncodedLen(len(v))))
			encode.Write([]byte{'b', msgType})
			encode.WriteString(base64.StdEncoding.EncodeToString(v))
			return encode, nil
		}
		encode := types.NewBytesBuffer(make([]byte, 0, 1+len(v)))
		encode.WriteByte(msgType - '0')
		encode.Write(v)
		return encode, nil
	}

	encode := types.NewStringBuffer(nil)
	encode.WriteByte(msgType)
	// data fragment is optional
	if data.Data != nil {
		encode.WriteString(data.Text())
	}
	return encode, nil
}

// Decodes a packet. A malformed unit decodes to the error packet, never to a
// Go error. With utf8decode set, text data must be well-formed Unicode.
func (p *parserv3) DecodePacket(data types.BufferInterface, utf8decode ...bool) *packet.Packet {
	utf8decode = append(utf8decode, false)
	if data == nil {
		parser_log.Debug("nil unit")
		return errorPacket()
	}

	switch data.(type) {
	case *types.StringBuffer:
		return p.decodeString(data.String(), utf8decode[0])
	}
	return p.decodeBytes(data.Bytes())
}

func (p *parserv3) decodeString(data string, utf8decode bool) *packet.Packet {
	if len(data) == 0 {
		parser_log.Debug("empty packet")
		return errorPacket()
	}

	if data[0] == 'b' {
		// Decodes a packet encoded in a base64 string.
		if len(data) < 2 {
			parser_log.Debug("base64 packet without type")
			return errorPacket()
		}
		packetType, ok := PACKET_TYPES_REVERSE[data[1]]
		if !ok {
			parser_log.Debug("unknown data type [%c]", data[1])
			return errorPacket()
		}
		decode, err := base64.StdEncoding.DecodeString(data[2:])
		if err != nil {
			parser_log.Debug("invalid base64 data: %v", err)
			return errorPacket()
		}
		return &packet.Packet{Type: packetType, Data: decode}
	}

	packetType, ok := PACKET_TYPES_REVERSE[data[0]]
	if !ok {
		parser_log.Debug("unknown data type [%c]", data[0])
		return errorPacket()
	}
	if utf8decode && !utils.ValidText(data[1:]) {
		parser_log.Debug("invalid utf8 data")
		return errorPacket()
	}
	if len(data) == 1 {
		return &packet.Packet{Type: packetType}
	}
	return &packet.Packet{Type: packetType, Data: data[1:]}
}

func (p *parserv3) decodeBytes(data []byte) *packet.Packet {
	if len(data) == 0 {
		parser_log.Debug("empty packet")
		return errorPacket()
	}
	packetType, ok := PACKET_TYPES_REVERSE[data[0]+'0']
	if !ok {
		parser_log.Debug("unknown data type [%d]", data[0])
		return errorPacket()
	}
	return &packet.Packet{Type: packetType, Data: append([]byte{}, data[1:]...)}
}

func (p *parserv3) hasBinary(packets []*packet.Packet) bool {
	for _, packet := range packets {
		if packet != nil && packet.Binary() {
			return true
		}
	}
	return false
}

// An empty payload is sent as a lone open packet, never as a zero-length unit.
func emptyPayload() []*packet.Packet {
	return []*packet.Packet{{Type: packet.OPEN}}
}

// Encodes multiple messages (payload).
//
//	<length>:data
//
// Example:
//
//	11:hello world2:hi
//
// Lengths count UTF-16 code units. Binary contents are encoded as base64
// strings unless supportsBinary is set, in which case a payload carrying any
// binary packet is framed with EncodePayloadAsBinary.
func (p *parserv3) EncodePayload(packets []*packet.Packet, supportsBinary ...bool) (types.BufferInterface, error) {
	supportsBinary = append(supportsBinary, false)

	if supportsBinary[0] && p.hasBinary(packets) {
		return p.EncodePayloadAsBinary(packets)
	}

	if len(packets) == 0 {
		packets = emptyPayload()
	}

	enPayload := types.NewStringBuffer(nil)
	for _, packet := range packets {
		buf, err := p.EncodePacket(packet, false)
		if err != nil {
			return nil, err
		}
		enPayload.WriteString(strconv.Itoa(utils.Utf16Count(buf.Bytes())))
		enPayload.WriteByte(':')
		buf.WriteTo(enPayload)
	}

	return enPayload, nil
}

// Encodes multiple messages (payload) as binary.
//
// <0 = string, 1 = binary><number from 0-9><number from 0-9>[...]<number
// 255><data>
//
// Example:
// 1 3 255 1 2 3, if the binary contents are interpreted as 8 bit integers
//
// String contents are written as their UTF-8 bytes and their length counts
// bytes.
func (p *parserv3) EncodePayloadAsBinary(packets []*packet.Packet) (types.BufferInterface, error) {
	if len(packets) == 0 {
		packets = emptyPayload()
	}

	enPayload := types.NewBytesBuffer(nil)
	for _, packet := range packets {
		buf, err := p.EncodePacket(packet, true)
		if err != nil {
			return nil, err
		}
		if types.IsText(buf) {
			enPayload.WriteByte(STRING_MARKER)
		} else {
			enPayload.WriteByte(BINARY_MARKER)
		}
		for _, digit := range []byte(strconv.Itoa(buf.Len())) {
			enPayload.WriteByte(digit - '0')
		}
		enPayload.WriteByte(LENGTH_END)
		buf.WriteTo(enPayload)
	}

	return enPayload, nil
}

// Decodes a payload, routing text units to the length:data framing and
// anything else to the binary framing.
//
// The payload is split into frames before anything is delivered, so total is
// known up front. A framing failure discards the whole payload and delivers a
// single error packet (index 0, total 1). A frame whose content is malformed
// is delivered as an error packet in place and decoding carries on.
func (p *parserv3) DecodePayload(data types.BufferInterface, callback DecodePayloadCallback) {
	if callback == nil {
		return
	}

	var frames []types.BufferInterface
	var ok bool
	switch data.(type) {
	case nil:
	case *types.StringBuffer:
		frames, ok = p.splitString(data.String())
	default:
		frames, ok = p.splitBytes(data.Bytes())
	}

	if !ok {
		callback(errorPacket(), 0, 1)
		return
	}

	total := len(frames)
	for i, frame := range frames {
		if !callback(p.DecodePacket(frame, true), i, total) {
			return
		}
	}
}

// Packets returns the payload as a sequence of (index, packet) pairs.
// Stopping the iteration stops decoding.
func (p *parserv3) Packets(data types.BufferInterface) iter.Seq2[int, *packet.Packet] {
	return func(yield func(int, *packet.Packet) bool) {
		p.DecodePayload(data, func(packet *packet.Packet, index int, _ int) bool {
			return yield(index, packet)
		})
	}
}

func (p *parserv3) splitString(data string) (frames []types.BufferInterface, ok bool) {
	if len(data) == 0 {
		parser_log.Debug("empty payload")
		return nil, false
	}

	for len(data) > 0 {
		i := 0
		for i < len(data) && '0' <= data[i] && data[i] <= '9' {
			i++
		}
		if i == 0 || i == len(data) || data[i] != ':' {
			parser_log.Debug("invalid frame length")
			return nil, false
		}
		packetLen, err := strconv.Atoi(data[:i])
		if err != nil {
			parser_log.Debug("invalid frame length: %v", err)
			return nil, false
		}
		data = data[i+1:]

		l, ok := utils.Utf16Prefix(data, packetLen)
		if !ok {
			parser_log.Debug("frame length %d exceeds payload", packetLen)
			return nil, false
		}
		if l > 0 {
			frames = append(frames, types.NewStringBufferString(data[:l]))
		}
		data = data[l:]
	}

	return frames, true
}

func (p *parserv3) splitBytes(data []byte) (frames []types.BufferInterface, ok bool) {
	if len(data) == 0 {
		parser_log.Debug("empty payload")
		return nil, false
	}

	for len(data) > 0 {
		startByte := data[0]
		if startByte != STRING_MARKER && startByte != BINARY_MARKER {
			parser_log.Debug("invalid frame marker %d", startByte)
			return nil, false
		}
		data = data[1:]

		i, packetLen := 0, 0
		for ; i < len(data) && data[i] != LENGTH_END; i++ {
			if data[i] > 9 || packetLen > (math.MaxInt-9)/10 {
				parser_log.Debug("invalid frame length")
				return nil, false
			}
			packetLen = packetLen*10 + int(data[i])
		}
		if i == 0 || i == len(data) {
			parser_log.Debug("invalid frame length")
			return nil, false
		}
		data = data[i+1:]

		if len(data) < packetLen {
			parser_log.Debug("frame length %d exceeds payload", packetLen)
			return nil, false
		}
		if content := data[:packetLen:packetLen]; len(content) > 0 {
			if startByte == STRING_MARKER {
				frames = append(frames, types.NewStringBuffer(content))
			} else {
				frames = append(frames, types.NewBytesBuffer(content))
			}
		}
		data = data[packetLen:]
	}

	return frames, true
}
