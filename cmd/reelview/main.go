package main

import (
	"context"
	"log"
	"os"

	"github.com/urfave/cli/v3"
)

const (
	version           = "0.1.0"
	defaultConfigPath = "reelview.json"
)

func main() {
	if err := newApp().Run(context.Background(), os.Args); err != nil {
		log.Fatalf("reelview: %v", err)
	}
}

func newApp() *cli.Command {
	return &cli.Command{
		Name:           "reelview",
		Usage:          "Browse trending and searched movies and TV shows",
		Version:        version,
		DefaultCommand: "serve",
		Commands: []*cli.Command{
			serveCommand(),
			configCommand(),
		},
	}
}

func configFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "config",
		Aliases: []string{"c"},
		Usage:   "Path to the settings file",
		Value:   defaultConfigPath,
		Sources: cli.EnvVars("REELVIEW_CONFIG"),
	}
}
