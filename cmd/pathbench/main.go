package main

import (
	"flag"
	"log"
	"os"

	"github.com/lixenwraith/mission/status"
)

var (
	runsFlag     = flag.Int("runs", 100, "Number of mazes")
	dimFlag      = flag.Int("dim", 41, "Maze side in cells")
	seedBaseFlag = flag.Uint64("seed-base", 1, "Seed of the first maze, 0 = time based")
	seedStepFlag = flag.Uint64("seed-step", 1, "Seed increment between mazes")
	braidFlag    = flag.Float64("braid", 0.1, "Dead-end braiding chance [0.0 - 1.0]")
	jsonFlag     = flag.Bool("json", false, "Print the report as JSON")
	dbFlag       = flag.String("db", "", "Append runs to this SQLite database")
)

func main() {
	flag.Parse()
	log.SetFlags(0)
	log.SetPrefix("pathbench: ")

	reg := status.NewRegistry()
	r, err := runBench(benchConfig{
		Runs:     *runsFlag,
		Dim:      *dimFlag,
		SeedBase: *seedBaseFlag,
		SeedStep: *seedStepFlag,
		Braid:    *braidFlag,
	}, reg)
	if err != nil {
		log.Fatal(err)
	}

	if *jsonFlag {
		if err := writeJSON(os.Stdout, r); err != nil {
			log.Fatal(err)
		}
	} else {
		writeText(os.Stdout, r)
	}

	if *dbFlag != "" {
		db, err := openHistory(*dbFlag)
		if err != nil {
			log.Fatal(err)
		}
		n, err := saveRuns(db, r)
		db.Close()
		if err != nil {
			log.Fatal(err)
		}
		log.Printf("saved %d runs to %s (batch %s)", n, *dbFlag, r.Batch)
	}

	if r.Mismatches > 0 {
		os.Exit(2)
	}
}
