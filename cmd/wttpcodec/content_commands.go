package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/MrEthical07/wttp/contentcoding"
	"github.com/MrEthical07/wttp/property"
)

func contentCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "transcode",
			Usage:     "Apply or remove a content encoding",
			ArgsUsage: "<in> <out>",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "encoding", Aliases: []string{"e"}, Required: true, Usage: "encoding name (gzip, zlib, zstd, brotli, lz4, snappy, identity)"},
				&cli.BoolFlag{Name: "decode", Aliases: []string{"d"}, Usage: "decode instead of encode"},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if err := requireArgs(cmd, 2, "<in> <out>"); err != nil {
					return err
				}
				name := cmd.String("encoding")
				code, ok := property.Lookup(property.CategoryEncoding, name)
				if !ok || !contentcoding.Supported(code) {
					return fmt.Errorf("%w: %s", contentcoding.ErrUnsupportedEncoding, name)
				}

				in, err := os.ReadFile(cmd.Args().Get(0))
				if err != nil {
					return err
				}
				var result []byte
				if cmd.Bool("decode") {
					result, err = contentcoding.Decode(code, in)
				} else {
					result, err = contentcoding.Encode(code, in)
				}
				if err != nil {
					return err
				}
				if err := os.WriteFile(cmd.Args().Get(1), result, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(out(cmd), "%s %d -> %d bytes\n", name, len(in), len(result))
				return nil
			},
		},
	}
}
