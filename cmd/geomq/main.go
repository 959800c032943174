// Command geomq builds the shapes described in a scene file and answers
// containment, intersection and bounds queries about them.
//
// Usage:
//
//	geomq [-v] -config scene.toml
//
// Scene files may be TOML or YAML, chosen by extension.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/jogamp/geom/glyph"
)

func main() {
	var (
		config  = flag.String("config", "", "scene file (.toml, .yaml or .yml)")
		verbose = flag.Bool("v", false, "log debug diagnostics to stderr")
	)
	flag.Parse()

	level := slog.LevelWarn
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	glyph.SetLogger(logger)

	name := *config
	if name == "" && flag.NArg() == 1 {
		name = flag.Arg(0)
	}
	if name == "" {
		flag.Usage()
		os.Exit(2)
	}

	scene, err := loadScene(name)
	if err != nil {
		fmt.Fprintln(os.Stderr, "geomq:", err)
		os.Exit(1)
	}
	logger.Debug("loaded scene", slog.String("file", name),
		slog.Int("shapes", len(scene.Shapes)), slog.Int("queries", len(scene.Queries)))
	if err := run(os.Stdout, scene, logger); err != nil {
		fmt.Fprintln(os.Stderr, "geomq:", err)
		os.Exit(1)
	}
}
