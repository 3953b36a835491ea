// Package compression wraps encoded payloads in a content encoding, the way
// the polling transport compresses response bodies.
package compression

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/zishang520/engine.io-codec/errors"
	"github.com/zishang520/engine.io-codec/log"
	"github.com/zishang520/engine.io-codec/packet"
	"github.com/zishang520/engine.io-codec/types"
)

var compression_log = log.NewLog("engine:compression")

const (
	GZIP    = "gzip"
	DEFLATE = "deflate"
	BROTLI  = "br"
	ZSTD    = "zstd"
)

// Encodings lists the supported content encodings in order of preference.
var Encodings = []string{GZIP, DEFLATE, BROTLI, ZSTD}

func Supported(encoding string) bool {
	for _, e := range Encodings {
		if e == encoding {
			return true
		}
	}
	return false
}

// Negotiate picks the preferred supported encoding listed in an
// Accept-Encoding header value, or "" when none is acceptable.
func Negotiate(acceptEncoding string) string {
	accepted := map[string]bool{}
	for _, token := range strings.Split(acceptEncoding, ",") {
		name, params, _ := strings.Cut(strings.TrimSpace(token), ";")
		name = strings.ToLower(strings.TrimSpace(name))
		if q, ok := strings.CutPrefix(strings.TrimSpace(params), "q="); ok {
			if v, err := strconv.ParseFloat(q, 64); err == nil && v == 0 {
				continue
			}
		}
		accepted[name] = true
	}
	for _, e := range Encodings {
		if accepted[e] || accepted["*"] {
			return e
		}
	}
	return ""
}

// ShouldCompress reports whether an encoded unit is worth compressing: a
// packet must have asked for it and the unit must reach the threshold.
func ShouldCompress(data types.BufferInterface, opts *types.HttpCompression, packets []*packet.Packet) bool {
	if data == nil || opts == nil {
		return false
	}
	requested := false
	for _, packet := range packets {
		if packet != nil && packet.Options != nil && packet.Options.Compress {
			requested = true
			break
		}
	}
	if !requested {
		return false
	}
	return data.Len() >= opts.Threshold
}

// Compress returns data wrapped in encoding. The result is always a binary
// unit; data itself is left unread.
func Compress(data types.BufferInterface, encoding string) (types.BufferInterface, error) {
	compression_log.Debug("compressing %d bytes with %s", data.Len(), encoding)
	buf := types.NewBytesBuffer(nil)

	var w io.WriteCloser
	switch encoding {
	case GZIP:
		gz, err := gzip.NewWriterLevel(buf, 1)
		if err != nil {
			return nil, err
		}
		w = gz
	case DEFLATE:
		fl, err := flate.NewWriter(buf, 1)
		if err != nil {
			return nil, err
		}
		w = fl
	case BROTLI:
		w = brotli.NewWriterLevel(buf, 1)
	case ZSTD:
		zw, err := zstd.NewWriter(buf, zstd.WithEncoderLevel(zstd.SpeedFastest))
		if err != nil {
			return nil, err
		}
		w = zw
	default:
		return nil, errors.Wrap(errors.ErrUnsupportedEncoding, fmt.Sprintf("compress %q", encoding)).Err()
	}

	if _, err := w.Write(data.Bytes()); err != nil {
		w.Close()
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return buf, nil
}

// Decompress reverses Compress. At most limit decoded bytes are accepted
// (limit <= 0 means no limit).
func Decompress(data []byte, encoding string, limit int64) ([]byte, error) {
	compression_log.Debug("decompressing %d bytes with %s", len(data), encoding)
	src := bytes.NewReader(data)

	var r io.Reader
	switch encoding {
	case GZIP:
		gz, err := gzip.NewReader(src)
		if err != nil {
			return nil, errors.Wrap(err, "decompress gzip").Err()
		}
		defer gz.Close()
		r = gz
	case DEFLATE:
		fl := flate.NewReader(src)
		defer fl.Close()
		r = fl
	case BROTLI:
		r = brotli.NewReader(src)
	case ZSTD:
		zr, err := zstd.NewReader(src)
		if err != nil {
			return nil, errors.Wrap(err, "decompress zstd").Err()
		}
		defer zr.Close()
		r = zr
	default:
		return nil, errors.Wrap(errors.ErrUnsupportedEncoding, fmt.Sprintf("decompress %q", encoding)).Err()
	}

	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	buf, err := types.NewBytesBufferReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "decompress "+encoding).Err()
	}
	if limit > 0 && int64(buf.Len()) > limit {
		return nil, errors.New(fmt.Sprintf("decompress %s: payload exceeds %d bytes", encoding, limit)).Err()
	}
	return buf.Bytes(), nil
}
