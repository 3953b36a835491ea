package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/zishang520/engine.io-codec/packet"
)

const (
	formatJSON    = "json"
	formatMsgpack = "msgpack"
)

// document is the file form of a packet. Text data goes in Data, binary
// data in Bin (base64 in JSON, bin in msgpack).
type document struct {
	Type     packet.Type `json:"type" msgpack:"type"`
	Data     *string     `json:"data,omitempty" msgpack:"data,omitempty"`
	Bin      []byte      `json:"bin,omitempty" msgpack:"bin,omitempty"`
	Compress bool        `json:"compress,omitempty" msgpack:"compress,omitempty"`
}

// record is one decoded packet with its position in the payload.
type record struct {
	Index int         `json:"index" msgpack:"index"`
	Total int         `json:"total" msgpack:"total"`
	Type  packet.Type `json:"type" msgpack:"type"`
	Data  *string     `json:"data,omitempty" msgpack:"data,omitempty"`
	Bin   []byte      `json:"bin,omitempty" msgpack:"bin,omitempty"`
}

func (d *document) toPacket() *packet.Packet {
	p := &packet.Packet{Type: d.Type}
	switch {
	case d.Bin != nil:
		p.Data = d.Bin
	case d.Data != nil:
		p.Data = *d.Data
	}
	if d.Compress {
		p.Options = &packet.Options{Compress: true}
	}
	return p
}

func newRecord(p *packet.Packet, index int, total int) *record {
	r := &record{Index: index, Total: total, Type: p.Type}
	switch v := p.Data.(type) {
	case []byte:
		r.Bin = v
	case string:
		r.Data = &v
	}
	return r
}

func readPackets(r io.Reader, format string) ([]*packet.Packet, error) {
	var documents []document
	switch format {
	case formatJSON:
		if err := json.NewDecoder(r).Decode(&documents); err != nil {
			return nil, fmt.Errorf("read json packets: %w", err)
		}
	case formatMsgpack:
		if err := msgpack.NewDecoder(r).Decode(&documents); err != nil {
			return nil, fmt.Errorf("read msgpack packets: %w", err)
		}
	default:
		return nil, fmt.Errorf("unknown format %q (expected %s or %s)", format, formatJSON, formatMsgpack)
	}

	packets := make([]*packet.Packet, 0, len(documents))
	for i := range documents {
		packets = append(packets, documents[i].toPacket())
	}
	return packets, nil
}

type recordWriter interface {
	Write(*record) error
}

type jsonRecordWriter struct{ enc *json.Encoder }

func (w *jsonRecordWriter) Write(r *record) error { return w.enc.Encode(r) }

type msgpackRecordWriter struct{ enc *msgpack.Encoder }

func (w *msgpackRecordWriter) Write(r *record) error { return w.enc.Encode(r) }

func newRecordWriter(w io.Writer, format string) (recordWriter, error) {
	switch format {
	case formatJSON:
		return &jsonRecordWriter{enc: json.NewEncoder(w)}, nil
	case formatMsgpack:
		return &msgpackRecordWriter{enc: msgpack.NewEncoder(w)}, nil
	}
	return nil, fmt.Errorf("unknown format %q (expected %s or %s)", format, formatJSON, formatMsgpack)
}
