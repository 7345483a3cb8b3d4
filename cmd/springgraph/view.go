package main

import (
	"context"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/ha1tch/springgraph/pkg/graph"
	"github.com/ha1tch/springgraph/pkg/layout"
	"github.com/ha1tch/springgraph/pkg/render"
)

var (
	styleStatus = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorWhite)
	styleError  = tcell.StyleDefault.Background(tcell.ColorNavy).Foreground(tcell.ColorRed).Bold(true)
)

// newScreen is replaced in tests.
var newScreen = tcell.NewScreen

// viewer shows a laid out graph in the terminal.
type viewer struct {
	screen   tcell.Screen
	app      *app
	name     string
	graph    *graph.Graph
	cfg      layout.Config
	renderer *render.Renderer
	message  string
	failed   bool
}

func newViewer(a *app, screen tcell.Screen, name string, g *graph.Graph, cfg layout.Config) *viewer {
	r := render.NewRenderer(a.cfg.RenderOptions())
	// one and a half cells
	r.Radius = render.CellHeight * 1.5
	r.ArrowLength = render.CellHeight
	return &viewer{
		screen:   screen,
		app:      a,
		name:     name,
		graph:    g,
		cfg:      cfg,
		renderer: r,
	}
}

func (v *viewer) draw() {
	v.screen.Clear()
	s := render.NewTermSurface(v.screen)
	s.ReserveRows = 1
	v.renderer.Render(v.graph, s)
	v.drawStatus()
}

func (v *viewer) drawStatus() {
	w, h := v.screen.Size()
	if h == 0 {
		return
	}
	y := h - 1
	for x := 0; x < w; x++ {
		v.screen.SetContent(x, y, ' ', nil, styleStatus)
	}

	status := fmt.Sprintf(" %s  %d nodes  %d edges  seed %d  [r] relayout  [q] quit",
		v.name, v.graph.Len(), v.graph.EdgeCount(), v.cfg.Seed)
	drawString(v.screen, 0, y, status, styleStatus)

	if v.message != "" {
		style := styleStatus
		if v.failed {
			style = styleError
		}
		drawString(v.screen, w-len(v.message)-1, y, v.message, style)
	}
}

func drawString(screen tcell.Screen, x, y int, s string, style tcell.Style) {
	for i, r := range []rune(s) {
		screen.SetContent(x+i, y, r, nil, style)
	}
}

// relayout starts over from the origin with the next seed.
func (v *viewer) relayout(ctx context.Context) {
	v.cfg.Seed++
	v.cfg.Restart = true
	if err := v.app.runLayout(ctx, v.graph, v.cfg, ""); err != nil {
		v.message, v.failed = err.Error(), true
		return
	}
	v.message, v.failed = "", false
}

// handleKey reports whether the viewer should exit.
func (v *viewer) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q', 'Q':
			return true
		case 'r', 'R':
			v.relayout(ctx)
		}
	}
	return false
}

func (v *viewer) run(ctx context.Context) {
	for {
		v.draw()
		v.screen.Show()

		switch ev := v.screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			v.screen.Sync()
		case *tcell.EventKey:
			if v.handleKey(ctx, ev) {
				return
			}
		}
	}
}

func viewCmd(a *app) *cobra.Command {
	var lf layoutFlags

	cmd := &cobra.Command{
		Use:   "view <graph.json>",
		Short: "Lay out a graph and show it in the terminal",
		Args:  cobra.ExactArgs(1),
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

			screen, err := newScreen()
			if err != nil {
				return fmt.Errorf("creating screen: %w", err)
			}
			if err := screen.Init(); err != nil {
				return fmt.Errorf("initializing screen: %w", err)
			}
			defer screen.Fini()

			// log lines would tear the screen
			a.log.SetLevel("disable")

			newViewer(a, screen, doc.Name, doc.Graph, cfg).run(cmd.Context())
			return nil
		},
	}

	lf.register(cmd)
	return cmd
}
