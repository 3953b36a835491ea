package config

import (
	"github.com/zishang520/engine.io-codec/types"
)

type (
	CodecOptionsInterface interface {
		SetSupportsBinary(bool)
		GetRawSupportsBinary() *bool
		SupportsBinary() bool

		SetUtf8Validation(bool)
		GetRawUtf8Validation() *bool
		Utf8Validation() bool

		SetMaxHttpBufferSize(int64)
		GetRawMaxHttpBufferSize() *int64
		MaxHttpBufferSize() int64

		SetHttpCompression(*types.HttpCompression)
		GetRawHttpCompression() *types.HttpCompression
		HttpCompression() *types.HttpCompression

		SetCompression(string)
		GetRawCompression() *string
		Compression() string
	}

	CodecOptions struct {
		// whether the peer can receive raw binary units
		supportsBinary *bool

		// whether single packet decoding rejects malformed text
		utf8Validation *bool

		// how many bytes a received unit can be before it is rejected (to avoid DoS).
		maxHttpBufferSize *int64

		// parameters of the payload compression. Set to nil to use the defaults.
		httpCompression *types.HttpCompression

		// content encoding applied to encoded payloads: "", "gzip", "deflate", "br" or "zstd"
		compression *string
	}
)

func DefaultCodecOptions() *CodecOptions {
	c := &CodecOptions{}
	return c
}

func (c *CodecOptions) Assign(data CodecOptionsInterface) CodecOptionsInterface {
	if data == nil {
		return c
	}

	if c.GetRawSupportsBinary() == nil {
		c.SetSupportsBinary(data.SupportsBinary())
	}
	if c.GetRawUtf8Validation() == nil {
		c.SetUtf8Validation(data.Utf8Validation())
	}
	if c.GetRawMaxHttpBufferSize() == nil {
		c.SetMaxHttpBufferSize(data.MaxHttpBufferSize())
	}
	if c.GetRawHttpCompression() == nil {
		c.SetHttpCompression(data.HttpCompression())
	}
	if c.GetRawCompression() == nil {
		c.SetCompression(data.Compression())
	}

	return c
}

// whether the peer can receive raw binary units
// @default false
func (c *CodecOptions) SetSupportsBinary(supportsBinary bool) {
	c.supportsBinary = &supportsBinary
}
func (c *CodecOptions) GetRawSupportsBinary() *bool {
	return c.supportsBinary
}
func (c *CodecOptions) SupportsBinary() bool {
	if c.supportsBinary == nil {
		return false
	}
	return *c.supportsBinary
}

// whether single packet decoding rejects malformed text
// @default false
func (c *CodecOptions) SetUtf8Validation(utf8Validation bool) {
	c.utf8Validation = &utf8Validation
}
func (c *CodecOptions) GetRawUtf8Validation() *bool {
	return c.utf8Validation
}
func (c *CodecOptions) Utf8Validation() bool {
	if c.utf8Validation == nil {
		return false
	}
	return *c.utf8Validation
}

// how many bytes a received unit can be before it is rejected, 0 disables the check
// @default 1e5
func (c *CodecOptions) SetMaxHttpBufferSize(maxHttpBufferSize int64) {
	c.maxHttpBufferSize = &maxHttpBufferSize
}
func (c *CodecOptions) GetRawMaxHttpBufferSize() *int64 {
	return c.maxHttpBufferSize
}
func (c *CodecOptions) MaxHttpBufferSize() int64 {
	if c.maxHttpBufferSize == nil {
		return 1e5
	}
	return *c.maxHttpBufferSize
}

// parameters of the payload compression
// @default {Threshold: 1024}
func (c *CodecOptions) SetHttpCompression(httpCompression *types.HttpCompression) {
	c.httpCompression = httpCompression
}
func (c *CodecOptions) GetRawHttpCompression() *types.HttpCompression {
	return c.httpCompression
}
func (c *CodecOptions) HttpCompression() *types.HttpCompression {
	if c.httpCompression == nil {
		return &types.HttpCompression{
			Threshold: 1024,
		}
	}
	return c.httpCompression
}

// content encoding applied to encoded payloads
// @default ""
func (c *CodecOptions) SetCompression(compression string) {
	c.compression = &compression
}
func (c *CodecOptions) GetRawCompression() *string {
	return c.compression
}
func (c *CodecOptions) Compression() string {
	if c.compression == nil {
		return ""
	}
	return *c.compression
}
