package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ha1tch/springgraph/pkg/graphfile"
	"github.com/ha1tch/springgraph/pkg/render"
)

func renderCmd(a *app) *cobra.Command {
	var (
		lf       layoutFlags
		output   string
		width    int
		height   int
		title    string
		noLayout bool
	)

	cmd := &cobra.Command{
		Use:   "render <graph.json> -o <out.png|out.svg|out.json|out.dot>",
		Short: "Lay out a graph and render it",
		Long: `Lay out a graph and render it. The output format follows the -o extension:

  .png   raster image
  .svg   vector image
  .json  display list of drawing operations
  .dot   Graphviz source with pinned positions (use neato -n)`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return fmt.Errorf("missing output file (-o)")
			}
			ext := strings.ToLower(filepath.Ext(output))
			switch ext {
			case ".png", ".svg", ".json", ".dot":
			default:
				return fmt.Errorf("unknown output format: %s", ext)
			}

			rc := a.cfg.Render
			if cmd.Flags().Changed("width") {
				rc.Width = width
			}
			if cmd.Flags().Changed("height") {
				rc.Height = height
			}
			if rc.Width <= 0 || rc.Height <= 0 {
				return fmt.Errorf("invalid canvas size %dx%d", rc.Width, rc.Height)
			}

			cfg, err := lf.apply(cmd, a.cfg.LayoutConfig())
			if err != nil {
				return err
			}
			doc, err := a.loadGraph(args[0])
			if err != nil {
				return err
			}
			g := doc.Graph

			if noLayout {
				if lf.from != "" {
					if err := a.applyPositionsFile(g, lf.from); err != nil {
						return err
					}
				}
			} else if err := a.runLayout(cmd.Context(), g, cfg, lf.from); err != nil {
				return err
			}

			if title == "" {
				title = doc.Name
			}

			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()

			r := render.NewRenderer(a.cfg.RenderOptions())
			r.Logger = a.log

			switch ext {
			case ".png":
				s, err := render.NewPNGSurface(rc.Width, rc.Height, rc.Supersample)
				if err != nil {
					return err
				}
				defer s.Close()
				r.Render(g, s)
				err = s.EncodePNG(f)
				if err != nil {
					return err
				}
			case ".svg":
				s := render.NewSVGSurface(f, rc.Width, rc.Height)
				r.Render(g, s)
				if err := s.Close(); err != nil {
					return err
				}
			case ".json":
				dl := render.NewDisplayList(float64(rc.Width), float64(rc.Height))
				r.Render(g, dl)
				if err := dl.WriteJSON(f); err != nil {
					return err
				}
			case ".dot":
				if _, err := f.WriteString(graphfile.GenerateDOT(g, title)); err != nil {
					return err
				}
			}

			if err := f.Close(); err != nil {
				return err
			}
			good.Fprintf(a.out, "Wrote %s\n", output)
			return nil
		},
	}

	lf.register(cmd)
	fl := cmd.Flags()
	fl.StringVarP(&output, "output", "o", "", "output file")
	fl.IntVar(&width, "width", 800, "canvas width in pixels")
	fl.IntVar(&height, "height", 600, "canvas height in pixels")
	fl.StringVar(&title, "title", "", "graph title for DOT output")
	fl.BoolVar(&noLayout, "no-layout", false, "render the stored positions without laying out")
	return cmd
}
