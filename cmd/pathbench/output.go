package main

import (
	"fmt"
	"io"

	"github.com/sugawarayuuta/sonnet"
)

func writeJSON(w io.Writer, r *report) error {
	data, err := sonnet.Marshal(r)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	data = append(data, '\n')
	_, err = w.Write(data)
	return err
}

func writeText(w io.Writer, r *report) {
	c := r.Config
	fmt.Fprintf(w, "=== PATHBENCH %dx%d braid=%.2f runs=%d ===\n", c.Dim, c.Dim, c.Braid, c.Runs)
	for _, res := range r.Runs {
		verdict := "ok"
		if res.Mismatch != "" {
			verdict = "MISMATCH " + res.Mismatch
		}
		route := "no route"
		if res.Reachable {
			route = fmt.Sprintf("cost %4d steps %3d", res.Cost, res.Steps)
		}
		fmt.Fprintf(w, "seed %-8d %2d,%-2d -> %2d,%-2d  %-20s  expanded %5d  direct %8.1fus  coworker %8.1fus  sync %8.1fus  %s\n",
			res.Seed, res.Start.X, res.Start.Y, res.Finish.X, res.Finish.Y, route,
			res.Expanded, res.DirectUs, res.CoworkerUs, res.SyncUs, verdict)
	}
	fmt.Fprintf(w, "\nreachable %d/%d  mismatches %d\n", r.Reachable, len(r.Runs), r.Mismatches)
	fmt.Fprintf(w, "mean direct %.1fus  coworker %.1fus  sync %.1fus\n", r.MeanDirectUs, r.MeanCoworkerUs, r.MeanSyncUs)
	for _, s := range r.Metrics {
		fmt.Fprintf(w, "  %-7s %-16s %v\n", s.Kind, s.Name, s.Value)
	}
}
