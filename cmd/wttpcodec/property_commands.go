package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/MrEthical07/wttp/property"
)

func out(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

func requireArgs(cmd *cli.Command, n int, usage string) error {
	if cmd.NArg() < n {
		return cli.Exit("usage: "+cmd.FullName()+" "+usage, 2)
	}
	return nil
}

func propertyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "encode",
			Usage:     "Encode a property value to its 2-byte code",
			ArgsUsage: "<mime|charset|encoding|language> <value>",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if err := requireArgs(cmd, 2, "<category> <value>"); err != nil {
					return err
				}
				cat, err := property.ParseCategory(cmd.Args().Get(0))
				if err != nil {
					return err
				}
				fmt.Fprintln(out(cmd), property.Encode(cat, cmd.Args().Get(1)))
				return nil
			},
		},
		{
			Name:      "decode",
			Usage:     "Decode a 2-byte code to its property value",
			ArgsUsage: "<mime|charset|encoding|language> <code>",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if err := requireArgs(cmd, 2, "<category> <code>"); err != nil {
					return err
				}
				cat, err := property.ParseCategory(cmd.Args().Get(0))
				if err != nil {
					return err
				}
				code, err := property.ParseCode(cmd.Args().Get(1))
				if err != nil {
					return err
				}
				fmt.Fprintf(out(cmd), "%q\n", property.Decode(cat, code))
				return nil
			},
		},
		{
			Name:  "values",
			Usage: "List the supported values of a category",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if err := requireArgs(cmd, 1, "<category>"); err != nil {
					return err
				}
				cat, err := property.ParseCategory(cmd.Args().Get(0))
				if err != nil {
					return err
				}
				w := out(cmd)
				for _, v := range property.Values(cat) {
					fmt.Fprintf(w, "%s\t%s\n", property.Encode(cat, v), v)
				}
				return nil
			},
		},
		{
			Name:  "metadata",
			Usage: "Build or parse a 9-byte metadata blob",
			Commands: []*cli.Command{
				{
					Name:  "encode",
					Usage: "Encode metadata fields",
					Flags: []cli.Flag{
						&cli.StringFlag{Name: "mime", Value: property.DefaultMimeType},
						&cli.StringFlag{Name: "charset"},
						&cli.StringFlag{Name: "encoding", Value: property.DefaultEncoding},
						&cli.StringFlag{Name: "language"},
					},
					Action: func(ctx context.Context, cmd *cli.Command) error {
						m := property.NewMetadata(cmd.String("mime"), cmd.String("charset"), cmd.String("encoding"), cmd.String("language"))
						fmt.Fprintln(out(cmd), hex.EncodeToString(property.EncodeMetadata(m)))
						return nil
					},
				},
				{
					Name:      "decode",
					Usage:     "Decode a hex metadata blob",
					ArgsUsage: "<hex>",
					Action: func(ctx context.Context, cmd *cli.Command) error {
						if err := requireArgs(cmd, 1, "<hex>"); err != nil {
							return err
						}
						raw, err := hex.DecodeString(cmd.Args().Get(0))
						if err != nil {
							return fmt.Errorf("%w: %v", property.ErrInvalidMetadata, err)
						}
						m, err := property.DecodeMetadata(raw)
						if err != nil {
							return err
						}
						printMetadata(out(cmd), m)
						return nil
					},
				},
			},
		},
		{
			Name:      "sniff",
			Usage:     "Detect the metadata of a file",
			ArgsUsage: "<file>",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if err := requireArgs(cmd, 1, "<file>"); err != nil {
					return err
				}
				name := cmd.Args().Get(0)
				data, err := os.ReadFile(name)
				if err != nil {
					return err
				}
				m := property.DetectFile(name, data)
				w := out(cmd)
				printMetadata(w, m)
				fmt.Fprintf(w, "blob\t%s\n", hex.EncodeToString(property.EncodeMetadata(m)))
				return nil
			},
		},
	}
}

func printMetadata(w io.Writer, m property.Metadata) {
	s := m.Strings()
	fmt.Fprintf(w, "mime\t%s\t%s\n", m.Mime, s.MimeType)
	fmt.Fprintf(w, "charset\t%s\t%s\n", m.Charset, s.Charset)
	fmt.Fprintf(w, "encoding\t%s\t%s\n", m.Encoding, s.Encoding)
	fmt.Fprintf(w, "language\t%s\t%s\n", m.Language, s.Language)
}
