package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v3"

	"reelview/config"
)

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect or create the settings file",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Write a settings file with default values",
				Flags: []cli.Flag{
					configFlag(),
					&cli.BoolFlag{
						Name:  "force",
						Usage: "Overwrite an existing settings file",
					},
				},
				Action: runConfigInit,
			},
			{
				Name:   "show",
				Usage:  "Print the effective settings with secrets redacted",
				Flags:  []cli.Flag{configFlag()},
				Action: runConfigShow,
			},
		},
	}
}

func runConfigInit(ctx context.Context, cmd *cli.Command) error {
	mgr := config.NewManager(cmd.String("config"))
	exists, err := mgr.Exists()
	if err != nil {
		return err
	}
	if exists && !cmd.Bool("force") {
		return fmt.Errorf("%s already exists, pass --force to overwrite", mgr.Path())
	}
	if err := mgr.Save(config.DefaultSettings()); err != nil {
		return err
	}
	fmt.Fprintf(cmd.Root().Writer, "wrote %s\n", mgr.Path())
	return nil
}

func runConfigShow(ctx context.Context, cmd *cli.Command) error {
	settings, err := config.NewManager(cmd.String("config")).Load()
	if err != nil {
		return err
	}
	enc := json.NewEncoder(cmd.Root().Writer)
	enc.SetIndent("", "  ")
	return enc.Encode(settings.Redacted())
}
