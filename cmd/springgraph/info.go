package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func infoCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "info <graph.json>",
		Short: "Show graph information",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.loadGraph(args[0])
			if err != nil {
				return err
			}
			g := doc.Graph

			selfLoops, weighted := 0, 0
			for _, e := range g.Edges {
				if e.Source == e.Target {
					selfLoops++
				}
				if e.Weight != 0 {
					weighted++
				}
			}
			isolated := 0
			degree := make([]int, g.Len())
			for _, e := range g.Edges {
				degree[e.Source.Index]++
				degree[e.Target.Index]++
			}
			for _, d := range degree {
				if d == 0 {
					isolated++
				}
			}

			rule(a.out, doc.Name)
			rows := [][2]string{
				{"Nodes", fmt.Sprint(g.Len())},
				{"Edges", fmt.Sprint(g.EdgeCount())},
				{"Weighted", fmt.Sprint(weighted)},
				{"Self loops", fmt.Sprint(selfLoops)},
				{"Isolated", fmt.Sprint(isolated)},
			}
			if doc.Description != "" {
				rows = append([][2]string{{"Description", doc.Description}}, rows...)
			}
			if b := g.Bounds; !b.Empty() && (b.Width() > 0 || b.Height() > 0) {
				rows = append(rows, [2]string{"Bounds",
					fmt.Sprintf("x [%.3f, %.3f]  y [%.3f, %.3f]", b.MinX, b.MaxX, b.MinY, b.MaxY)})
			}
			table(a.out, rows)
			return nil
		},
	}
}
