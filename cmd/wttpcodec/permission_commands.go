package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/MrEthical07/wttp/permission"
)

func permissionCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "bitmask",
			Usage:     "Fold method names into a method mask",
			ArgsUsage: "<method...>",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if err := requireArgs(cmd, 1, "<method...>"); err != nil {
					return err
				}
				methods, err := permission.ParseMethods(cmd.Args().Slice()...)
				if err != nil {
					return err
				}
				mask := permission.MethodsToBitmask(methods...)
				fmt.Fprintf(out(cmd), "%d\t0x%s\t%s\n", mask.Raw(), hex.EncodeToString(permission.EncodeMask(mask)), mask)
				return nil
			},
		},
		{
			Name:      "methods",
			Usage:     "Expand a method mask into method names",
			ArgsUsage: "<mask>",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if err := requireArgs(cmd, 1, "<mask>"); err != nil {
					return err
				}
				raw, err := strconv.ParseUint(cmd.Args().Get(0), 0, 16)
				if err != nil {
					return fmt.Errorf("%w: %v", permission.ErrInvalidMaskSize, err)
				}
				mask, err := permission.DecodeMask(permission.EncodeMask(permission.Mask(raw)))
				if err != nil {
					return err
				}
				w := out(cmd)
				for _, m := range permission.BitmaskToMethods(mask) {
					fmt.Fprintln(w, m)
				}
				return nil
			},
		},
		{
			Name:  "roles",
			Usage: "List registered roles and their 32-byte identifiers",
			Flags: []cli.Flag{
				&cli.StringSliceFlag{Name: "role", Usage: "extra role label to register"},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg, err := loadConfig(cmd)
				if err != nil {
					return err
				}
				reg := permission.NewRegistry()
				for _, label := range append(cfg.Site.Roles, cmd.StringSlice("role")...) {
					if _, err := reg.Register(label); err != nil {
						return err
					}
				}
				reg.Freeze()

				w := out(cmd)
				for _, name := range reg.Names() {
					role, _ := reg.Role(name)
					fmt.Fprintf(w, "%s\t%s\n", name, role.Hex())
				}
				return nil
			},
		},
		{
			Name:      "role",
			Usage:     "Derive the role identifier of a label",
			ArgsUsage: "<label>",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				if err := requireArgs(cmd, 1, "<label>"); err != nil {
					return err
				}
				fmt.Fprintln(out(cmd), permission.RoleFromLabel(cmd.Args().Get(0)).Hex())
				return nil
			},
		},
	}
}
