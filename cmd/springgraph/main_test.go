package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ha1tch/springgraph/pkg/config"
	"github.com/ha1tch/springgraph/pkg/graphfile"
	"github.com/ha1tch/springgraph/pkg/logging"
)

const pagesJSON = `{
  "name": "pages",
  "description": "site map",
  "nodes": ["home", {"id": "about", "label": "About us"}, "blog"],
  "edges": [
    {"source": "home", "target": "about"},
    {"source": "home", "target": "blog", "weight": 3},
    {"source": "blog", "target": "blog"}
  ]
}`

func writeGraph(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pages.json")
	require.NoError(t, os.WriteFile(path, []byte(pagesJSON), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	root := newRootCmd(&out, &errOut)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return out.String(), err
}

func TestInfo(t *testing.T) {
	out, err := execute(t, "info", writeGraph(t))
	require.NoError(t, err)

	assert.Contains(t, out, "pages")
	assert.Contains(t, out, "site map")
	assert.Regexp(t, `Nodes\s+3`, out)
	assert.Regexp(t, `Edges\s+3`, out)
	assert.Regexp(t, `Weighted\s+1`, out)
	assert.Regexp(t, `Self loops\s+1`, out)
}

func TestLayoutStdout(t *testing.T) {
	out, err := execute(t, "layout", writeGraph(t), "--log-level", "disable")
	require.NoError(t, err)

	p, err := graphfile.DecodePositions(strings.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, graphfile.PositionsVersion, p.Version)
	assert.Len(t, p.Nodes, 3)
	assert.NotEqual(t, p.Nodes["home"], p.Nodes["about"])
}

func TestLayoutWritesJSON(t *testing.T) {
	dir := t.TempDir()
	output := filepath.Join(dir, "laid.json")

	out, err := execute(t, "layout", writeGraph(t), "-o", output, "--iterations", "50", "--workers", "2")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+output)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	g, err := graphfile.ParseJSON(data)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Len())
	assert.Greater(t, g.Bounds.Width()+g.Bounds.Height(), 0.0)
}

func TestLayoutFromPositions(t *testing.T) {
	dir := t.TempDir()
	graphPath := writeGraph(t)
	first := filepath.Join(dir, "first.toml")
	second := filepath.Join(dir, "second.toml")

	_, err := execute(t, "layout", graphPath, "-o", first, "--seed", "7")
	require.NoError(t, err)

	// no iterations keeps the seeded positions
	_, err = execute(t, "layout", graphPath, "-o", second, "--from", first, "--iterations", "0")
	require.NoError(t, err)

	read := func(path string) graphfile.Positions {
		f, err := os.Open(path)
		require.NoError(t, err)
		defer f.Close()
		p, err := graphfile.DecodePositions(f)
		require.NoError(t, err)
		return p
	}
	assert.Equal(t, read(first).Nodes, read(second).Nodes)
}

func TestLayoutErrors(t *testing.T) {
	graphPath := writeGraph(t)

	_, err := execute(t, "layout", graphPath, "-o", filepath.Join(t.TempDir(), "out.yaml"))
	assert.ErrorContains(t, err, "unknown output format")

	_, err = execute(t, "layout", graphPath, "--iterations", "-1")
	assert.Error(t, err)

	_, err = execute(t, "layout", filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	_, err = execute(t, "layout", graphPath, "--from", filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestRender(t *testing.T) {
	tests := []struct {
		ext    string
		prefix string
		want   string
	}{
		{".png", "\x89PNG", ""},
		{".svg", "<?xml", "<svg"},
		{".json", "{", `"ops"`},
		{".dot", "digraph", `"blog" -> "blog"`},
	}

	graphPath := writeGraph(t)
	for _, tc := range tests {
		t.Run(tc.ext, func(t *testing.T) {
			output := filepath.Join(t.TempDir(), "pages"+tc.ext)
			_, err := execute(t, "render", graphPath, "-o", output, "--width", "320", "--height", "240", "--iterations", "100")
			require.NoError(t, err)

			data, err := os.ReadFile(output)
			require.NoError(t, err)
			assert.True(t, strings.HasPrefix(string(data), tc.prefix), "unexpected start %q", string(data[:min(len(data), 16)]))
			assert.Contains(t, string(data), tc.want)
		})
	}
}

func TestRenderNoLayout(t *testing.T) {
	dir := t.TempDir()
	graphPath := writeGraph(t)
	positions := filepath.Join(dir, "pages.toml")
	output := filepath.Join(dir, "pages.dot")

	_, err := execute(t, "layout", graphPath, "-o", positions)
	require.NoError(t, err)
	_, err = execute(t, "render", graphPath, "-o", output, "--no-layout", "--from", positions, "--title", "Site")
	require.NoError(t, err)

	data, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Contains(t, string(data), `label="Site"`)
	assert.Contains(t, string(data), `label="About us"`)
}

func TestRenderErrors(t *testing.T) {
	graphPath := writeGraph(t)
	dir := t.TempDir()

	_, err := execute(t, "render", graphPath)
	assert.ErrorContains(t, err, "missing output")

	_, err = execute(t, "render", graphPath, "-o", filepath.Join(dir, "out.bmp"))
	assert.ErrorContains(t, err, "unknown output format")

	_, err = execute(t, "render", graphPath, "-o", filepath.Join(dir, "out.png"), "--width", "0")
	assert.ErrorContains(t, err, "invalid canvas size")
}

func TestConfigCommand(t *testing.T) {
	out, err := execute(t, "config")
	require.NoError(t, err)
	assert.Contains(t, out, "iterations = 500")
	assert.Contains(t, out, `level = "info"`)

	path := filepath.Join(t.TempDir(), "springgraph.toml")
	require.NoError(t, os.WriteFile(path, []byte("[layout]\niterations = 42\n"), 0o644))
	out, err = execute(t, "config", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "iterations = 42")
}

func TestBadConfigAndLogLevel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "springgraph.toml")
	require.NoError(t, os.WriteFile(path, []byte("[layout]\nspring_constant = -1\n"), 0o644))
	_, err := execute(t, "info", writeGraph(t), "--config", path)
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = execute(t, "info", writeGraph(t), "--log-level", "loud")
	assert.ErrorIs(t, err, logging.ErrUnknownLevel)
}

func newTestApp(t *testing.T) *app {
	t.Helper()
	a := &app{out: &bytes.Buffer{}, errOut: &bytes.Buffer{}}
	require.NoError(t, a.setup())
	return a
}

func TestViewer(t *testing.T) {
	a := newTestApp(t)
	doc, err := a.loadGraph(writeGraph(t))
	require.NoError(t, err)
	cfg := a.cfg.LayoutConfig()
	require.NoError(t, a.runLayout(context.Background(), doc.Graph, cfg, ""))

	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	defer screen.Fini()
	screen.SetSize(100, 30)

	v := newViewer(a, screen, doc.Name, doc.Graph, cfg)
	screen.InjectKey(tcell.KeyRune, 'r', tcell.ModNone)
	screen.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	v.run(context.Background())

	assert.Equal(t, uint64(2), v.cfg.Seed)
	assert.Empty(t, v.message)

	cells, width, height := screen.GetContents()
	var status strings.Builder
	for _, c := range cells[(height-1)*width:] {
		if len(c.Runes) > 0 {
			status.WriteRune(c.Runes[0])
		}
	}
	assert.Contains(t, status.String(), "pages")
	assert.Contains(t, status.String(), "seed 2")

	drawn := 0
	for _, c := range cells[:(height-1)*width] {
		if len(c.Runes) > 0 && c.Runes[0] != ' ' {
			drawn++
		}
	}
	assert.Positive(t, drawn, "expected the graph on the canvas")
}

func TestViewerEscape(t *testing.T) {
	a := newTestApp(t)
	doc, err := a.loadGraph(writeGraph(t))
	require.NoError(t, err)

	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	defer screen.Fini()

	v := newViewer(a, screen, doc.Name, doc.Graph, a.cfg.LayoutConfig())
	assert.True(t, v.handleKey(context.Background(), tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone)))
	assert.False(t, v.handleKey(context.Background(), tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)))
}

// quitScreen is a simulation screen that asks to quit as soon as it starts.
type quitScreen struct {
	tcell.SimulationScreen
}

func (s quitScreen) Init() error {
	if err := s.SimulationScreen.Init(); err != nil {
		return err
	}
	s.SetSize(80, 25)
	s.InjectKey(tcell.KeyRune, 'q', tcell.ModNone)
	return nil
}

func TestViewCommand(t *testing.T) {
	saved := newScreen
	t.Cleanup(func() { newScreen = saved })
	newScreen = func() (tcell.Screen, error) {
		return quitScreen{tcell.NewSimulationScreen("")}, nil
	}

	_, err := execute(t, "view", writeGraph(t), "--iterations", "20")
	assert.NoError(t, err)
}
