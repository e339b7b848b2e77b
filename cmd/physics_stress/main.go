// Stress test comparing the broad phases and driving the physics loop
package main

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"

	"physics3d/internal/config"
)

const (
	flagCount      = "count"
	flagSeed       = "seed"
	flagSteps      = "steps"
	flagIterations = "iterations"
	flagConfig     = "config"
	flagWorld      = "world"
	flagItems      = "items"
	flagDebug      = "debug"
)

var app = &cli.App{
	Name:            "physics_stress",
	Usage:           "compare broad-phase indices on a random scene and step the physics world",
	HideHelpCommand: true,
	Flags: []cli.Flag{
		&cli.IntFlag{
			Name:    flagCount,
			Aliases: []string{"n"},
			Value:   2000,
			Usage:   "number of bodies",
		},
		&cli.Int64Flag{
			Name:  flagSeed,
			Value: 42,
			Usage: "random seed for the scene",
		},
		&cli.IntFlag{
			Name:  flagSteps,
			Value: 120,
			Usage: "physics steps to run after the comparison",
		},
		&cli.IntFlag{
			Name:  flagIterations,
			Value: 10,
			Usage: "timed inserts per broad phase",
		},
		&cli.StringFlag{
			Name:    flagConfig,
			Aliases: []string{"c"},
			Usage:   "load configuration from `FILE`",
		},
		&cli.StringFlag{
			Name:  flagWorld,
			Value: "aabb",
			Usage: "world bound shape: aabb, sphere or oobb",
		},
		&cli.StringFlag{
			Name:  flagItems,
			Value: "sphere",
			Usage: "body shape: aabb, sphere or oobb",
		},
		&cli.BoolFlag{
			Name:  flagDebug,
			Usage: "enable debug logging",
		},
	},
	Action: stressAction,
}

func main() {
	if err := app.Run(os.Args); err != nil {
		log.Fatal("physics_stress", "err", err)
	}
}

func stressAction(c *cli.Context) error {
	cfg := config.Default()
	if path := c.String(flagConfig); path != "" {
		var err error
		if cfg, err = config.Load(path); err != nil {
			return err
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return err
	}
	if c.Bool(flagDebug) {
		cfg.LogLevel = "debug"
	}

	logger := log.NewWithOptions(c.App.ErrWriter, log.Options{
		ReportTimestamp: true,
		Prefix:          "physics_stress",
		Level:           cfg.Level(),
	})

	opts := stressOptions{
		count:      c.Int(flagCount),
		seed:       c.Int64(flagSeed),
		steps:      c.Int(flagSteps),
		iterations: max(c.Int(flagIterations), 1),
		items:      c.String(flagItems),
		out:        c.App.Writer,
	}
	if opts.count < 0 || opts.steps < 0 {
		return errors.New("count and steps must not be negative")
	}
	return runScene(logger, cfg, c.String(flagWorld), opts)
}
