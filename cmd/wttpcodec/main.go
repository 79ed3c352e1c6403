// Command wttpcodec inspects and produces WTTP wire values: property codes,
// metadata blobs, method bitmasks, headers, roles and chain endpoints.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	logging "github.com/ipfs/go-log"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v3"

	"github.com/MrEthical07/wttp"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:    "wttpcodec",
		Usage:   "Encode and decode WTTP wire values",
		Version: "0.1.0",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Sources: cli.EnvVars("WTTP_CONFIG"),
				Usage:   "YAML config file",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Value: "warn",
				Usage: "log level (debug, info, warn, error)",
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			loadDotEnv()
			if err := logging.SetLogLevel("*", cmd.String("log-level")); err != nil {
				return ctx, fmt.Errorf("log level: %w", err)
			}
			return ctx, nil
		},
		Commands: slices.Concat(
			propertyCommands(),
			permissionCommands(),
			headerCommands(),
			chainCommands(),
			contentCommands(),
		),
	}
}

// loadConfig reads --config when given, otherwise the defaults plus
// environment overrides.
func loadConfig(cmd *cli.Command) (wttp.Config, error) {
	return wttp.LoadConfig(cmd.Root().String("config"))
}

// loadDotEnv loads the nearest .env walking up from the working directory.
func loadDotEnv() {
	dir, err := os.Getwd()
	if err != nil {
		return
	}
	for {
		envPath := filepath.Join(dir, ".env")
		if _, err := os.Stat(envPath); err == nil {
			_ = godotenv.Load(envPath)
			return
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return
		}
		dir = parent
	}
}
