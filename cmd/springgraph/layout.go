package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ha1tch/springgraph/pkg/graph"
	"github.com/ha1tch/springgraph/pkg/graphfile"
	"github.com/ha1tch/springgraph/pkg/layout"
)

// layoutFlags are the layout overrides shared by layout, render and view.
type layoutFlags struct {
	seed       uint64
	iterations int
	workers    int
	jitter     string
	partition  bool
	restart    bool
	from       string
}

func (f *layoutFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.Uint64Var(&f.seed, "seed", 1, "jitter seed")
	fl.IntVarP(&f.iterations, "iterations", "n", 500, "number of iterations")
	fl.IntVar(&f.workers, "workers", 1, "parallel repulsion workers")
	fl.StringVar(&f.jitter, "jitter", layout.JitterPCG, "jitter source (pcg or simplex)")
	fl.BoolVar(&f.partition, "partition", false, "grid-partitioned repulsion")
	fl.BoolVar(&f.restart, "restart", false, "start from the origin instead of current positions")
	fl.StringVar(&f.from, "from", "", "positions TOML to start from")
}

// apply overlays the flags the user set on the configured layout parameters.
func (f *layoutFlags) apply(cmd *cobra.Command, cfg layout.Config) (layout.Config, error) {
	fl := cmd.Flags()
	if fl.Changed("seed") {
		cfg.Seed = f.seed
	}
	if fl.Changed("iterations") {
		cfg.Iterations = f.iterations
	}
	if fl.Changed("workers") {
		cfg.Workers = f.workers
	}
	if fl.Changed("jitter") {
		cfg.Jitter = f.jitter
	}
	if fl.Changed("partition") {
		cfg.Partition = f.partition
	}
	if fl.Changed("restart") {
		cfg.Restart = f.restart
	}
	return cfg, cfg.Validate()
}

// runLayout seeds g from --from when given and lays it out.
func (a *app) runLayout(ctx context.Context, g *graph.Graph, cfg layout.Config, from string) error {
	if from != "" {
		if err := a.applyPositionsFile(g, from); err != nil {
			return err
		}
	}

	start := time.Now()
	s := layout.NewSpring(cfg)
	s.Logger = a.log
	if err := s.LayoutContext(ctx, g); err != nil {
		return fmt.Errorf("layout interrupted: %w", err)
	}
	a.log.Infof("laid out %d nodes in %s", g.Len(), time.Since(start).Round(time.Millisecond))
	return nil
}

func layoutCmd(a *app) *cobra.Command {
	var (
		lf     layoutFlags
		output string
	)

	cmd := &cobra.Command{
		Use:   "layout <graph.json>",
		Short: "Lay out a graph and write node positions",
		Long: `Lay out a graph and write the node positions.

The output format follows the -o extension: .toml writes a positions file
that --from accepts, .json writes the graph description with coordinates.
Without -o the positions are printed as TOML.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := lf.apply(cmd, a.cfg.LayoutConfig())
			if err != nil {
				return err
			}
			doc, err := a.loadGraph(args[0])
			if err != nil {
				return err
			}
			if err := a.runLayout(cmd.Context(), doc.Graph, cfg, lf.from); err != nil {
				return err
			}

			var buf bytes.Buffer
			switch ext := strings.ToLower(filepath.Ext(output)); ext {
			case "", ".toml":
				if err := graphfile.EncodePositions(&buf, doc.Graph); err != nil {
					return err
				}
			case ".json":
				data, err := graphfile.ToJSON(doc.Graph, doc.Name, true)
				if err != nil {
					return err
				}
				buf.Write(data)
			default:
				return fmt.Errorf("unknown output format: %s", ext)
			}

			if output == "" {
				_, err := a.out.Write(buf.Bytes())
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0644); err != nil {
				return err
			}
			good.Fprintf(a.out, "Wrote %s\n", output)
			return nil
		},
	}

	lf.register(cmd)
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (.toml or .json)")
	return cmd
}
