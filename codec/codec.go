// Package codec binds a Parser to CodecOptions, so a transport can turn
// packets into a ready-to-send body and a received body back into packets.
package codec

import (
	"fmt"
	"strings"

	"github.com/zishang520/engine.io-codec/compression"
	"github.com/zishang520/engine.io-codec/config"
	"github.com/zishang520/engine.io-codec/errors"
	"github.com/zishang520/engine.io-codec/log"
	"github.com/zishang520/engine.io-codec/packet"
	"github.com/zishang520/engine.io-codec/parser"
	"github.com/zishang520/engine.io-codec/types"
)

var codec_log = log.NewLog("engine:codec")

const (
	TEXT_CONTENT_TYPE   = "text/plain; charset=UTF-8"
	BINARY_CONTENT_TYPE = "application/octet-stream"
)

// Encoded is an encoded payload ready to be handed to a transport.
type Encoded struct {
	Data            types.BufferInterface
	ContentType     string
	ContentEncoding string
}

type Codec struct {
	parser parser.Parser
	opts   config.CodecOptionsInterface
}

// New returns a Codec. A nil parser selects the protocol 3 parser and nil
// options select the defaults.
func New(p parser.Parser, opts config.CodecOptionsInterface) *Codec {
	if p == nil {
		p = parser.Parserv3()
	}
	if opts == nil {
		opts = config.DefaultCodecOptions()
	}
	if encoding := opts.Compression(); encoding != "" && !compression.Supported(encoding) {
		codec_log.Warning("unsupported compression %q, payloads will be sent uncompressed", encoding)
	}
	return &Codec{parser: p, opts: opts}
}

func (c *Codec) Parser() parser.Parser {
	return c.parser
}

func (c *Codec) Options() config.CodecOptionsInterface {
	return c.opts
}

func (c *Codec) EncodePacket(p *packet.Packet) (types.BufferInterface, error) {
	return c.parser.EncodePacket(p, c.opts.SupportsBinary())
}

func (c *Codec) DecodePacket(data types.BufferInterface) *packet.Packet {
	return c.parser.DecodePacket(data, c.opts.Utf8Validation())
}

// EncodePayload encodes packets and, when a packet asks for it and the
// payload reaches the compression threshold, compresses the result.
func (c *Codec) EncodePayload(packets []*packet.Packet) (*Encoded, error) {
	data, err := c.parser.EncodePayload(packets, c.opts.SupportsBinary())
	if err != nil {
		return nil, err
	}

	encoded := &Encoded{Data: data, ContentType: BINARY_CONTENT_TYPE}
	if types.IsText(data) {
		encoded.ContentType = TEXT_CONTENT_TYPE
	}

	encoding := c.opts.Compression()
	if encoding == "" || !compression.Supported(encoding) || !compression.ShouldCompress(data, c.opts.HttpCompression(), packets) {
		return encoded, nil
	}

	buf, err := compression.Compress(data, encoding)
	if err != nil {
		return nil, err
	}
	codec_log.Debug("payload compressed from %d to %d bytes", data.Len(), buf.Len())
	encoded.Data = buf
	encoded.ContentEncoding = encoding
	return encoded, nil
}

// DecodePayload decodes a received body. Malformed payloads are reported
// through callback as error packets; the returned error only covers bodies
// that are too large or cannot be decompressed.
func (c *Codec) DecodePayload(body []byte, contentType string, contentEncoding string, callback parser.DecodePayloadCallback) error {
	limit := c.opts.MaxHttpBufferSize()

	if contentEncoding != "" {
		raw, err := compression.Decompress(body, contentEncoding, limit)
		if err != nil {
			return err
		}
		body = raw
	}

	if limit > 0 && int64(len(body)) > limit {
		return errors.New(fmt.Sprintf("payload too large: %d bytes exceeds %d", len(body), limit)).Err()
	}

	var data types.BufferInterface
	if strings.HasPrefix(contentType, BINARY_CONTENT_TYPE) {
		data = types.NewBytesBuffer(body)
	} else {
		data = types.NewStringBuffer(body)
	}
	c.parser.DecodePayload(data, callback)
	return nil
}

// Decode is DecodePayload for an Encoded value produced by EncodePayload.
func (c *Codec) Decode(encoded *Encoded, callback parser.DecodePayloadCallback) error {
	if encoded == nil || encoded.Data == nil {
		return errors.Wrap(errors.ErrInvalidPacket, "nothing to decode").Err()
	}
	return c.DecodePayload(encoded.Data.Bytes(), encoded.ContentType, encoded.ContentEncoding, callback)
}
