// eiocodec encodes packet lists into engine.io protocol 3 payloads and dumps
// payloads back as one record per packet.
//
//	eiocodec encode [flags] < packets.json > payload
//	eiocodec decode [flags] < payload > packets.jsonl
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"
	"github.com/zishang520/engine.io-codec/codec"
	"github.com/zishang520/engine.io-codec/compression"
	"github.com/zishang520/engine.io-codec/config"
	"github.com/zishang520/engine.io-codec/log"
	"github.com/zishang520/engine.io-codec/packet"
	"github.com/zishang520/engine.io-codec/parser"
	"github.com/zishang520/engine.io-codec/types"
)

var cli_log = log.NewLog("eiocodec")

func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout); err != nil {
		cli_log.Error("error: %v", err)
		os.Exit(1)
	}
}

type options struct {
	configPath  string
	format      string
	compress    string
	binary      bool
	forceBinary bool
	maxSize     int64
	in          string
	out         string
	verbose     bool
}

func run(args []string, stdin io.Reader, stdout io.Writer) error {
	if len(args) == 0 {
		printHelp(nil)
		return fmt.Errorf("missing command")
	}

	command := args[0]
	if command == "-h" || command == "--help" || command == "help" {
		printHelp(nil)
		return nil
	}
	if command != "encode" && command != "decode" {
		return fmt.Errorf("unknown command %q (expected encode or decode)", command)
	}

	var opts options
	flagSet := pflag.NewFlagSet("eiocodec "+command, pflag.ContinueOnError)
	flagSet.StringVar(&opts.configPath, "config", "", "TOML file with codec options")
	flagSet.StringVarP(&opts.format, "format", "f", formatJSON, "packet document format: json or msgpack")
	flagSet.StringVarP(&opts.compress, "compress", "c", "", "content encoding: gzip, deflate, br or zstd")
	flagSet.BoolVarP(&opts.binary, "binary", "b", false, "encode: peer supports binary; decode: input uses the binary framing")
	flagSet.BoolVar(&opts.forceBinary, "force-binary", false, "encode with the binary framing regardless of content")
	flagSet.Int64Var(&opts.maxSize, "max-size", 0, "largest accepted payload in bytes (0 keeps the configured limit)")
	flagSet.StringVarP(&opts.in, "in", "i", "", "input file (default stdin)")
	flagSet.StringVarP(&opts.out, "out", "o", "", "output file (default stdout)")
	flagSet.BoolVarP(&opts.verbose, "verbose", "v", false, "log debug output")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args[1:]); err != nil {
		if err == pflag.ErrHelp {
			printHelp(flagSet)
			return nil
		}
		return err
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(flagSet)
		return nil
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return fmt.Errorf("unexpected argument: %s", rest[0])
	}
	cli_log.DEBUG = opts.verbose

	codecOptions, err := loadOptions(&opts, flagSet)
	if err != nil {
		return err
	}
	c := codec.New(parser.Parserv3(), codecOptions)

	if opts.in != "" {
		f, err := os.Open(opts.in)
		if err != nil {
			return err
		}
		defer f.Close()
		stdin = f
	}
	if opts.out != "" {
		f, err := os.Create(opts.out)
		if err != nil {
			return err
		}
		defer f.Close()
		stdout = f
	}

	if command == "encode" {
		return encode(c, &opts, stdin, stdout)
	}
	return decode(c, &opts, stdin, stdout)
}

// loadOptions reads the config file, then lets explicitly set flags win.
func loadOptions(opts *options, flagSet *pflag.FlagSet) (*config.CodecOptions, error) {
	codecOptions := config.DefaultCodecOptions()
	if opts.configPath != "" {
		loaded, err := config.LoadFile(opts.configPath)
		if err != nil {
			return nil, err
		}
		codecOptions = loaded
	}
	if flagSet.Changed("binary") {
		codecOptions.SetSupportsBinary(opts.binary)
	}
	if flagSet.Changed("compress") {
		if opts.compress != "" && !compression.Supported(opts.compress) {
			return nil, fmt.Errorf("unsupported content encoding %q", opts.compress)
		}
		codecOptions.SetCompression(opts.compress)
	}
	if flagSet.Changed("max-size") && opts.maxSize > 0 {
		codecOptions.SetMaxHttpBufferSize(opts.maxSize)
	}
	return codecOptions, nil
}

func encode(c *codec.Codec, opts *options, r io.Reader, w io.Writer) error {
	packets, err := readPackets(r, opts.format)
	if err != nil {
		return err
	}
	if c.Options().Compression() != "" {
		for _, p := range packets {
			p.Options = &packet.Options{Compress: true}
		}
	}

	var encoded *codec.Encoded
	if opts.forceBinary {
		data, err := c.Parser().EncodePayloadAsBinary(packets)
		if err != nil {
			return err
		}
		encoded = &codec.Encoded{Data: data, ContentType: codec.BINARY_CONTENT_TYPE}
		if encoding := c.Options().Compression(); encoding != "" && compression.ShouldCompress(data, c.Options().HttpCompression(), packets) {
			if encoded.Data, err = compression.Compress(data, encoding); err != nil {
				return err
			}
			encoded.ContentEncoding = encoding
		}
	} else if encoded, err = c.EncodePayload(packets); err != nil {
		return err
	}

	cli_log.Debug("encoded %d packets: %d bytes, %s, encoding %q", len(packets), encoded.Data.Len(), encoded.ContentType, encoded.ContentEncoding)
	_, err = encoded.Data.WriteTo(w)
	return err
}

func decode(c *codec.Codec, opts *options, r io.Reader, w io.Writer) error {
	body, err := types.NewBytesBufferReader(r)
	if err != nil {
		return err
	}
	out, err := newRecordWriter(w, opts.format)
	if err != nil {
		return err
	}

	contentType := codec.TEXT_CONTENT_TYPE
	if opts.binary {
		contentType = codec.BINARY_CONTENT_TYPE
	}

	var writeErr error
	malformed := 0
	if err := c.DecodePayload(body.Bytes(), contentType, c.Options().Compression(), func(p *packet.Packet, index int, total int) bool {
		if parser.IsError(p) {
			malformed++
		}
		writeErr = out.Write(newRecord(p, index, total))
		return writeErr == nil
	}); err != nil {
		return err
	}
	if malformed > 0 {
		cli_log.Warning("%d malformed frame(s) in payload", malformed)
	}
	return writeErr
}

func printHelp(flagSet *pflag.FlagSet) {
	fmt.Fprintf(os.Stderr, `eiocodec encodes and decodes engine.io protocol 3 payloads.

Usage:
  eiocodec encode [flags]    read a packet list, write a payload
  eiocodec decode [flags]    read a payload, write one record per packet

Packet documents (JSON shown, msgpack uses the same keys):
  [{"type": "message", "data": "hello"}, {"type": "message", "bin": "AQID"}, {"type": "ping"}]

Examples:
  eiocodec encode -i packets.json -o payload.txt
  eiocodec encode --binary -c gzip < packets.json > payload.bin.gz
  eiocodec decode --binary -c gzip < payload.bin.gz
`)
	if flagSet != nil {
		fmt.Fprintf(os.Stderr, "\nFlags:\n")
		flagSet.SetOutput(os.Stderr)
		flagSet.PrintDefaults()
	}
}
