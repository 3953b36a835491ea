package config

import (
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/zishang520/engine.io-codec/errors"
	"github.com/zishang520/engine.io-codec/types"
)

// codec.toml key mapping to CodecOptions.
type fileConfig struct {
	SupportsBinary    bool                  `toml:"supports_binary"`
	Utf8Validation    bool                  `toml:"utf8_validation"`
	MaxHttpBufferSize int64                 `toml:"max_http_buffer_size"`
	HttpCompression   types.HttpCompression `toml:"http_compression"`
	Compression       string                `toml:"compression"`
}

// LoadFile reads CodecOptions from a TOML file. Keys missing from the file
// stay unset so Assign can fill them later.
func LoadFile(path string) (*CodecOptions, error) {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return nil, errors.Wrap(err, "load codec config").Err()
	}
	return fromFile(meta, &raw)
}

// Load reads CodecOptions from TOML text.
func Load(data string) (*CodecOptions, error) {
	var raw fileConfig
	meta, err := toml.Decode(data, &raw)
	if err != nil {
		return nil, errors.Wrap(err, "load codec config").Err()
	}
	return fromFile(meta, &raw)
}

func fromFile(meta toml.MetaData, raw *fileConfig) (*CodecOptions, error) {
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New("load codec config: unknown key " + undecoded[0].String()).Err()
	}

	c := DefaultCodecOptions()
	if meta.IsDefined("supports_binary") {
		c.SetSupportsBinary(raw.SupportsBinary)
	}
	if meta.IsDefined("utf8_validation") {
		c.SetUtf8Validation(raw.Utf8Validation)
	}
	if meta.IsDefined("max_http_buffer_size") {
		c.SetMaxHttpBufferSize(raw.MaxHttpBufferSize)
	}
	if meta.IsDefined("http_compression") {
		httpCompression := raw.HttpCompression
		c.SetHttpCompression(&httpCompression)
	}
	if meta.IsDefined("compression") {
		c.SetCompression(strings.ToLower(strings.TrimSpace(raw.Compression)))
	}
	return c, nil
}
