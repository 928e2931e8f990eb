package main

import (
	"context"
	"fmt"
	"go/format"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/delaneyj/fxprops/cmd/codegen/templates"
	"github.com/urfave/cli/v3"
)

const rootKey = "root"

func main() {
	cmd := &cli.Command{
		Name:  "generate",
		Usage: "Generate the named binding and property kinds",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  rootKey,
				Usage: "Module root to write into",
				Value: ".",
			},
		},
		Action: generate,
	}
	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal(err)
	}
}

func generate(ctx context.Context, cmd *cli.Command) error {
	start := time.Now()
	log.Printf("Codegen for kinds started")
	defer func() {
		log.Printf("Codegen for kinds finished in %v", time.Since(start))
	}()

	root := cmd.String(rootKey)
	files := map[string]string{
		"binding/kinds_gen.go":  templates.BindingKinds(templates.Kinds),
		"property/kinds_gen.go": templates.PropertyKinds(templates.Kinds),
	}
	for name, contents := range files {
		if err := write(filepath.Join(root, name), contents); err != nil {
			return err
		}
	}
	return nil
}

func write(path, contents string) error {
	src, err := format.Source([]byte(contents))
	if err != nil {
		return fmt.Errorf("format %s: %w", path, err)
	}
	log.Printf("Writing %s", path)
	return os.WriteFile(path, src, 0644)
}
