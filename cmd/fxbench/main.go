package main

import (
	"context"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/urfave/cli/v3"
)

const (
	configKey     = "config"
	profileKey    = "profile"
	iterationsKey = "iterations"
)

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  configKey,
			Usage: "YAML or TOML file overriding the built-in benchmark sizes",
		},
		&cli.StringFlag{
			Name:  profileKey,
			Usage: "Write a CPU profile to this file",
		},
	}
}

func main() {
	cmd := &cli.Command{
		Name:  "fxbench",
		Usage: "Benchmark property and binding propagation",
		Commands: []*cli.Command{
			{
				Name:  "propagate",
				Usage: "Time writes through chains of bindings",
				Flags: append(commonFlags(), &cli.UintFlag{
					Name:  iterationsKey,
					Usage: "Writes per graph, 0 keeps the configured value",
				}),
				Action: propagate,
			},
			{
				Name:   "fanout",
				Usage:  "Time writes through layered graphs with many dependencies per node",
				Flags:  commonFlags(),
				Action: fanout,
			},
		},
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func setup(cmd *cli.Command) (*benchConfig, func(), error) {
	cfg, err := loadConfig(cmd.String(configKey))
	if err != nil {
		return nil, nil, err
	}
	path := cmd.String(profileKey)
	if path == "" {
		return cfg, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	if err := pprof.StartCPUProfile(f); err != nil {
		f.Close()
		return nil, nil, err
	}
	return cfg, func() {
		pprof.StopCPUProfile()
		f.Close()
	}, nil
}

func propagate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Propagate benchmark started")
	defer func() {
		log.Printf("Propagate benchmark finished in %v", time.Since(start))
	}()

	cfg, stop, err := setup(cmd)
	if err != nil {
		return err
	}
	defer stop()

	if n := cmd.Uint(iterationsKey); n > 0 {
		cfg.Propagate.Iterations = int(n)
	}
	return runPropagate(os.Stdout, cfg.Propagate)
}

func fanout(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Fanout benchmark started")
	defer func() {
		log.Printf("Fanout benchmark finished in %v", time.Since(start))
	}()

	cfg, stop, err := setup(cmd)
	if err != nil {
		return err
	}
	defer stop()

	return runFanout(os.Stdout, cfg.Fanout, cfg.Repeats)
}
