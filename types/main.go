package types

type (
	HttpCompression struct {
		Threshold int `json:"threshold,omitempty" toml:"threshold,omitempty" msgpack:"threshold,omitempty"`
	}
)
