package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/kataras/golog"
	"github.com/spf13/cobra"

	"github.com/ha1tch/springgraph/pkg/config"
	"github.com/ha1tch/springgraph/pkg/graph"
	"github.com/ha1tch/springgraph/pkg/graphfile"
	"github.com/ha1tch/springgraph/pkg/logging"
)

var version = "0.3.0"

// app is the state shared by all subcommands.
type app struct {
	cfgPath  string
	logLevel string

	cfg *config.Config
	log *golog.Logger

	out    io.Writer
	errOut io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	a := &app{out: out, errOut: errOut}

	root := &cobra.Command{
		Use:     "springgraph",
		Short:   "Force-directed layout and rendering for directed graphs",
		Version: version,
		Example: `  springgraph info pages.json
  springgraph layout pages.json -o pages.toml
  springgraph render pages.json -o pages.png --from pages.toml
  springgraph render pages.json -o pages.dot && neato -n -Tpng pages.dot > pages.png
  springgraph view pages.json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)

	root.PersistentFlags().StringVarP(&a.cfgPath, "config", "c", "", "TOML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "debug, info, warn, error or disable (overrides config)")

	root.AddCommand(
		infoCmd(a),
		layoutCmd(a),
		renderCmd(a),
		viewCmd(a),
		configCmd(a),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.cfgPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Log.Level = a.logLevel
	}

	l, err := logging.New(a.errOut, cfg.Log.Level)
	if err != nil {
		return err
	}
	a.cfg, a.log = cfg, l
	return nil
}

// loadGraph reads a JSON description.
func (a *app) loadGraph(path string) (*graphfile.Document, error) {
	if ext := strings.ToLower(filepath.Ext(path)); ext != ".json" {
		return nil, fmt.Errorf("unknown file format: %s", ext)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := graphfile.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if doc.Name == "" {
		doc.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	a.log.Infof("loaded %s: %d nodes, %d edges", path, doc.Graph.Len(), doc.Graph.EdgeCount())
	return doc, nil
}

// applyPositionsFile seeds g from a positions TOML file.
func (a *app) applyPositionsFile(g *graph.Graph, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	p, err := graphfile.DecodePositions(f)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	moved := graphfile.ApplyPositions(g, p)
	a.log.Infof("applied %d positions from %s", moved, path)
	return nil
}

func configCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration as TOML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return config.Write(a.out, a.cfg)
		},
	}
}
