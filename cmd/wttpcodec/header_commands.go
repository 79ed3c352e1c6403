package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"maps"
	"net/http"
	"slices"

	"github.com/urfave/cli/v3"

	"github.com/MrEthical07/wttp/header"
	"github.com/MrEthical07/wttp/permission"
)

func headerCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "header",
			Usage: "Build a header and print its CBOR encoding and HTTP projection",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "preset", Usage: "start from a header preset (" + fmt.Sprint(header.HeaderPresetNames()) + ")"},
				&cli.StringSliceFlag{Name: "methods", Usage: "enabled methods"},
				&cli.StringFlag{Name: "origins", Usage: "origins preset (" + fmt.Sprint(header.OriginsPresetNames()) + ")"},
				&cli.StringFlag{Name: "cache", Usage: "cache preset"},
				&cli.StringFlag{Name: "cors", Usage: "CORS preset"},
				&cli.BoolFlag{Name: "immutable"},
				&cli.UintFlag{Name: "redirect", Usage: "redirect status code"},
				&cli.StringFlag{Name: "location", Usage: "redirect location"},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				h, err := buildHeader(cmd)
				if err != nil {
					return err
				}
				blob, err := header.Marshal(h)
				if err != nil {
					return err
				}

				w := out(cmd)
				fmt.Fprintln(w, h)
				fmt.Fprintf(w, "cbor\t%s\n", hex.EncodeToString(blob))

				projected := http.Header{}
				h.Apply(projected)
				for _, k := range slices.Sorted(maps.Keys(projected)) {
					fmt.Fprintf(w, "%s: %s\n", k, projected.Get(k))
				}
				return nil
			},
		},
		{
			Name:      "header-decode",
			Usage:     "Decode a CBOR header blob",
			ArgsUsage: "<hex>",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if err := requireArgs(cmd, 1, "<hex>"); err != nil {
					return err
				}
				raw, err := hex.DecodeString(cmd.Args().Get(0))
				if err != nil {
					return fmt.Errorf("%w: %v", header.ErrInvalidHeaderBlob, err)
				}
				h, err := header.Unmarshal(raw)
				if err != nil {
					return err
				}
				w := out(cmd)
				fmt.Fprintln(w, h)
				for _, m := range permission.Methods() {
					fmt.Fprintf(w, "%s\t%s\n", m, h.RoleFor(m).Hex())
				}
				return nil
			},
		},
		{
			Name:      "csp",
			Usage:     "Print the Content-Security-Policy of a CORS preset",
			ArgsUsage: "<preset>",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if err := requireArgs(cmd, 1, "<preset>"); err != nil {
					return err
				}
				p, err := header.ParseCORSPreset(cmd.Args().Get(0))
				if err != nil {
					return err
				}
				fmt.Fprintln(out(cmd), header.LoadCSPPreset(p))
				return nil
			},
		},
	}
}

func buildHeader(cmd *cli.Command) (header.Info, error) {
	h := header.CreateCustomHeader()
	if name := cmd.String("preset"); name != "" {
		var err error
		if h, err = header.HeaderPreset(name); err != nil {
			return header.Info{}, err
		}
	}

	if cmd.IsSet("methods") {
		methods, err := permission.ParseMethods(cmd.StringSlice("methods")...)
		if err != nil {
			return header.Info{}, err
		}
		h.CORS.Methods = permission.MethodsToBitmask(methods...)
	}
	if name := cmd.String("origins"); name != "" {
		o, err := header.OriginsPreset(name)
		if err != nil {
			return header.Info{}, err
		}
		h.CORS.Origins = o
	}
	if name := cmd.String("cache"); name != "" {
		p, err := header.ParseCachePreset(name)
		if err != nil {
			return header.Info{}, err
		}
		h.Cache.Preset = p
	}
	if name := cmd.String("cors"); name != "" {
		p, err := header.ParseCORSPreset(name)
		if err != nil {
			return header.Info{}, err
		}
		h.CORS.Preset = p
	}
	if cmd.IsSet("immutable") {
		h.Cache.Immutable = cmd.Bool("immutable")
	}
	if code := cmd.Uint("redirect"); code != 0 {
		h.Redirect = header.Redirect{Code: uint16(code), Location: cmd.String("location")}
	}
	return h, nil
}
