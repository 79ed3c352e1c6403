package main

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/MrEthical07/wttp"
)

func chainCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "rpc",
			Usage: "Print the RPC endpoint of a chain",
			Flags: []cli.Flag{
				&cli.StringFlag{Name: "chain", Usage: "chain id or alias (default: configured default chain)"},
				&cli.BoolFlag{Name: "all", Usage: "print every endpoint"},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg, err := loadConfig(cmd)
				if err != nil {
					return err
				}
				id, chain, err := resolveChain(cfg, cmd.String("chain"))
				if err != nil {
					return err
				}

				w := out(cmd)
				if cmd.Bool("all") {
					for _, u := range chain.RPCs {
						fmt.Fprintln(w, u)
					}
					return nil
				}
				u, err := cfg.RPCURL(id)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, u)
				return nil
			},
		},
		{
			Name:  "chains",
			Usage: "List configured chains",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg, err := loadConfig(cmd)
				if err != nil {
					return err
				}
				w := out(cmd)
				for _, id := range slices.Sorted(maps.Keys(cfg.Chains.Networks)) {
					c := cfg.Chains.Networks[id]
					marker := ""
					if id == cfg.Chains.Default {
						marker = "*"
					}
					gateway := c.Gateway
					if gateway == "" {
						gateway = "-"
					}
					fmt.Fprintf(w, "%d%s\t%s\t%s\t%s\t%s\n", id, marker, c.Alias, c.Name, c.Symbol, gateway)
				}
				return nil
			},
		},
		{
			Name:  "config",
			Usage: "Print the effective configuration as YAML",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg, err := loadConfig(cmd)
				if err != nil {
					return err
				}
				data, err := wttp.MarshalConfig(cfg)
				if err != nil {
					return err
				}
				_, err = out(cmd).Write(data)
				return err
			},
		},
	}
}

func resolveChain(cfg wttp.Config, ref string) (uint64, wttp.ChainConfig, error) {
	if ref == "" {
		c, err := cfg.Chain(cfg.Chains.Default)
		return cfg.Chains.Default, c, err
	}
	if id, err := strconv.ParseUint(ref, 10, 64); err == nil {
		c, err := cfg.Chain(id)
		return id, c, err
	}
	return cfg.ChainByAlias(ref)
}
