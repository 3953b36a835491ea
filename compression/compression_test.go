package compression

import (
	"bytes"
	"strings"
	"testing"

	"github.com/zishang520/engine.io-codec/errors"
	"github.com/zishang520/engine.io-codec/packet"
	"github.com/zishang520/engine.io-codec/types"
)

func TestCompress(t *testing.T) {
	data := strings.Repeat("4hello world", 200)

	for _, encoding := range Encodings {
		t.Run(encoding, func(t *testing.T) {
			buf, err := Compress(types.NewStringBufferString(data), encoding)
			if err != nil {
				t.Fatal("Error with Compress:", err)
			}
			if _, ok := buf.(*types.BytesBuffer); !ok {
				t.Fatalf(`Compress type = %T, want match for *types.BytesBuffer`, buf)
			}
			if buf.Len() >= len(data) {
				t.Fatalf(`Compress length = %d, want less than %d`, buf.Len(), len(data))
			}
			out, err := Decompress(buf.Bytes(), encoding, 0)
			if err != nil {
				t.Fatal("Error with Decompress:", err)
			}
			if !bytes.Equal(out, []byte(data)) {
				t.Fatal(`Decompress value not as expected`)
			}
		})
	}

	t.Run("unsupported", func(t *testing.T) {
		if _, err := Compress(types.NewStringBufferString(data), "lz4"); !errors.Is(err, errors.ErrUnsupportedEncoding) {
			t.Fatalf(`Compress("lz4") error = %v, want match for %v`, err, errors.ErrUnsupportedEncoding)
		}
		if _, err := Decompress([]byte(data), "lz4", 0); !errors.Is(err, errors.ErrUnsupportedEncoding) {
			t.Fatalf(`Decompress("lz4") error = %v, want match for %v`, err, errors.ErrUnsupportedEncoding)
		}
	})

	t.Run("limit", func(t *testing.T) {
		buf, _ := Compress(types.NewStringBufferString(data), GZIP)
		if _, err := Decompress(buf.Bytes(), GZIP, 100); err == nil {
			t.Fatal(`Decompress over the limit should fail`)
		}
	})

	t.Run("corrupt", func(t *testing.T) {
		if _, err := Decompress([]byte("not gzip"), GZIP, 0); err == nil {
			t.Fatal(`Decompress of corrupt input should fail`)
		}
	})
}

func TestNegotiate(t *testing.T) {
	for header, want := range map[string]string{
		"gzip, deflate, br": GZIP,
		"br;q=1.0, zstd":    BROTLI,
		"gzip;q=0, deflate": DEFLATE,
		"identity":          "",
		"":                  "",
		"*":                 GZIP,
	} {
		if got := Negotiate(header); got != want {
			t.Fatalf(`Negotiate(%q) = %q, want match for %q`, header, got, want)
		}
	}
}

func TestShouldCompress(t *testing.T) {
	opts := &types.HttpCompression{Threshold: 4}
	compress := []*packet.Packet{{Type: packet.MESSAGE, Data: "hello", Options: &packet.Options{Compress: true}}}
	plain := []*packet.Packet{{Type: packet.MESSAGE, Data: "hello"}}

	if !ShouldCompress(types.NewStringBufferString("1:4hello"), opts, compress) {
		t.Fatal(`ShouldCompress = false, want match for true`)
	}
	if ShouldCompress(types.NewStringBufferString("1:4hello"), opts, plain) {
		t.Fatal(`ShouldCompress without Options.Compress = true, want match for false`)
	}
	if ShouldCompress(types.NewStringBufferString("1:4"), opts, compress) {
		t.Fatal(`ShouldCompress below threshold = true, want match for false`)
	}
	if ShouldCompress(types.NewStringBufferString("1:4hello"), nil, compress) {
		t.Fatal(`ShouldCompress without options = true, want match for false`)
	}
}
