package graphfile

import (
	"bytes"
	"strings"
	"testing"
)

// Run with: go test -fuzz=FuzzParseJSON -fuzztime=30s ./pkg/graphfile/

// FuzzParseJSON feeds arbitrary input to the description parser.
// Anything it accepts must survive writing back out.
func FuzzParseJSON(f *testing.F) {
	f.Add([]byte(`{"nodes":["a","b"],"edges":[{"source":"a","target":"b"}]}`))
	f.Add([]byte(`{"nodes":[{"id":"a","label":"A","x":1,"y":-2}],"edges":[]}`))
	f.Add([]byte(`{"edges":[{"source":"a","target":"a","weight":0.5}]}`))
	f.Add([]byte(`{"name":"x","nodes":["a","a"]}`))

	f.Add([]byte(`{}`))
	f.Add([]byte(`[]`))
	f.Add([]byte(`null`))
	f.Add([]byte(``))
	f.Add([]byte(`{"nodes":[1, true, null]}`))
	f.Add([]byte(`{"nodes":[{"id":""}]}`))

	f.Fuzz(func(t *testing.T, data []byte) {
		g, err := ParseJSON(data)
		if err != nil {
			return
		}

		out, err := ToJSON(g, "fuzz", false)
		if err != nil {
			t.Fatalf("ToJSON failed on parsed graph: %v", err)
		}
		again, err := ParseJSON(out)
		if err != nil {
			t.Fatalf("Written graph does not parse: %v\n%s", err, out)
		}
		if again.Len() != g.Len() || again.EdgeCount() != g.EdgeCount() {
			t.Fatalf("Round trip changed the graph: %d/%d nodes, %d/%d edges",
				g.Len(), again.Len(), g.EdgeCount(), again.EdgeCount())
		}

		_ = GenerateDOT(g, "fuzz")
	})
}

// FuzzDecodePositions feeds arbitrary TOML to the positions reader.
func FuzzDecodePositions(f *testing.F) {
	f.Add("version = 1\n[nodes.a]\nx = 1.5\ny = -2.0\n")
	f.Add("version = 2\n")
	f.Add("[nodes]\n")
	f.Add("")
	f.Add("nodes = 3")

	f.Fuzz(func(t *testing.T, data string) {
		p, err := DecodePositions(strings.NewReader(data))
		if err != nil {
			return
		}
		if p.Nodes == nil {
			t.Fatal("Decoded positions must have a node map")
		}

		g, _ := ParseJSON([]byte(`{"nodes":["a","b"]}`))
		ApplyPositions(g, p)

		var buf bytes.Buffer
		if err := EncodePositions(&buf, g); err != nil {
			t.Fatalf("EncodePositions failed: %v", err)
		}
	})
}
