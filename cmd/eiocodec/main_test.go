package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vmihailenco/msgpack/v5"
)

const packetsJSON = `[
	{"type": "message", "data": "hello"},
	{"type": "message", "bin": "AQID"},
	{"type": "close"}
]`

func decodeRecords(t *testing.T, out string) (records []record) {
	t.Helper()
	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		var r record
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			t.Fatal("invalid record:", err)
		}
		records = append(records, r)
	}
	return records
}

func checkRecords(t *testing.T, records []record) {
	t.Helper()
	if l := len(records); l != 3 {
		t.Fatalf(`decoded %d records, want match for %d`, l, 3)
	}
	if records[0].Data == nil || *records[0].Data != "hello" {
		t.Fatalf(`record 0 = %+v, want match for message "hello"`, records[0])
	}
	if !bytes.Equal(records[1].Bin, []byte{1, 2, 3}) {
		t.Fatalf(`record 1 binary = %v, want match for %v`, records[1].Bin, []byte{1, 2, 3})
	}
	if records[2].Type != "close" || records[2].Index != 2 || records[2].Total != 3 {
		t.Fatalf(`record 2 = %+v, want the last close`, records[2])
	}
}

func TestRun(t *testing.T) {
	t.Run("encode/text", func(t *testing.T) {
		stdout := new(bytes.Buffer)
		if err := run([]string{"encode"}, strings.NewReader(packetsJSON), stdout); err != nil {
			t.Fatal("encode failed:", err)
		}
		if s := stdout.String(); s != "6:4hello6:b4AQID1:1" {
			t.Fatalf(`encode output = %q, want match for %q`, s, "6:4hello6:b4AQID1:1")
		}
	})

	t.Run("roundtrip/text", func(t *testing.T) {
		payload := new(bytes.Buffer)
		if err := run([]string{"encode"}, strings.NewReader(packetsJSON), payload); err != nil {
			t.Fatal("encode failed:", err)
		}
		stdout := new(bytes.Buffer)
		if err := run([]string{"decode"}, payload, stdout); err != nil {
			t.Fatal("decode failed:", err)
		}
		checkRecords(t, decodeRecords(t, stdout.String()))
	})

	t.Run("roundtrip/binary", func(t *testing.T) {
		payload := new(bytes.Buffer)
		if err := run([]string{"encode", "--binary"}, strings.NewReader(packetsJSON), payload); err != nil {
			t.Fatal("encode failed:", err)
		}
		if payload.Bytes()[0] != 0x00 {
			t.Fatalf(`binary payload starts with %d, want match for %d`, payload.Bytes()[0], 0)
		}
		stdout := new(bytes.Buffer)
		if err := run([]string{"decode", "-b"}, payload, stdout); err != nil {
			t.Fatal("decode failed:", err)
		}
		checkRecords(t, decodeRecords(t, stdout.String()))
	})

	t.Run("roundtrip/compressed", func(t *testing.T) {
		dir := t.TempDir()
		configPath := filepath.Join(dir, "codec.toml")
		if err := os.WriteFile(configPath, []byte("[http_compression]\nthreshold = 0\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		payloadPath := filepath.Join(dir, "payload.gz")
		if err := run([]string{"encode", "--force-binary", "-c", "gzip", "--config", configPath, "-o", payloadPath}, strings.NewReader(packetsJSON), nil); err != nil {
			t.Fatal("encode failed:", err)
		}
		stdout := new(bytes.Buffer)
		if err := run([]string{"decode", "-b", "-c", "gzip", "-i", payloadPath}, nil, stdout); err != nil {
			t.Fatal("decode failed:", err)
		}
		checkRecords(t, decodeRecords(t, stdout.String()))
	})

	t.Run("msgpack", func(t *testing.T) {
		input, err := msgpack.Marshal([]document{
			{Type: "message", Bin: []byte{9, 8}},
			{Type: "ping"},
		})
		if err != nil {
			t.Fatal(err)
		}
		payload := new(bytes.Buffer)
		if err := run([]string{"encode", "-f", "msgpack"}, bytes.NewReader(input), payload); err != nil {
			t.Fatal("encode failed:", err)
		}
		stdout := new(bytes.Buffer)
		if err := run([]string{"decode", "-f", "msgpack"}, payload, stdout); err != nil {
			t.Fatal("decode failed:", err)
		}
		dec := msgpack.NewDecoder(stdout)
		var first, last record
		if err := dec.Decode(&first); err != nil {
			t.Fatal(err)
		}
		if err := dec.Decode(&last); err != nil {
			t.Fatal(err)
		}
		if !bytes.Equal(first.Bin, []byte{9, 8}) || last.Type != "ping" || last.Total != 2 {
			t.Fatalf(`records = %+v %+v, want a binary message and a ping`, first, last)
		}
	})

	t.Run("decode/malformed", func(t *testing.T) {
		stdout := new(bytes.Buffer)
		if err := run([]string{"decode"}, strings.NewReader("1:a2:b"), stdout); err != nil {
			t.Fatal("decode failed:", err)
		}
		records := decodeRecords(t, stdout.String())
		if len(records) != 1 || records[0].Type != "error" || records[0].Total != 1 {
			t.Fatalf(`records = %+v, want a single error record`, records)
		}
	})

	t.Run("errors", func(t *testing.T) {
		for _, args := range [][]string{
			{},
			{"transcode"},
			{"encode", "-f", "yaml"},
			{"encode", "-c", "lz4"},
			{"encode", "extra"},
		} {
			if err := run(args, strings.NewReader(packetsJSON), new(bytes.Buffer)); err == nil {
				t.Fatalf(`run(%q) should fail`, args)
			}
		}
	})

	t.Run("help", func(t *testing.T) {
		if err := run([]string{"encode", "--help"}, nil, nil); err != nil {
			t.Fatal("help failed:", err)
		}
	})
}
