package main

import (
	"fmt"
	"math/rand/v2"
	"runtime"
	"strings"
	"time"

	"github.com/lixenwraith/mission/core"
	"github.com/lixenwraith/mission/maze"
	"github.com/lixenwraith/mission/navigation"
	"github.com/lixenwraith/mission/status"
)

// coworkerTimeout bounds the wait for one asynchronous answer
const coworkerTimeout = 5 * time.Second

type benchConfig struct {
	Runs     int     `json:"runs"`
	Dim      int     `json:"dim"`
	SeedBase uint64  `json:"seed_base"`
	SeedStep uint64  `json:"seed_step"`
	Braid    float64 `json:"braid"`
}

// runResult is one maze and one query answered by A*, the Coworker and the SyncCoworker,
// checked against the flow field distance
type runResult struct {
	Seed       uint64     `json:"seed"`
	Start      core.Point `json:"start"`
	Finish     core.Point `json:"finish"`
	Reachable  bool       `json:"reachable"`
	Cost       int        `json:"cost"`
	Steps      int        `json:"steps"`
	Expanded   int        `json:"expanded"`
	DirectUs   float64    `json:"direct_us"`
	CoworkerUs float64    `json:"coworker_us"`
	SyncUs     float64    `json:"sync_us"`
	Mismatch   string     `json:"mismatch,omitempty"`
}

type report struct {
	Batch          string          `json:"batch"`
	Config         benchConfig     `json:"config"`
	Runs           []runResult     `json:"runs"`
	Reachable      int             `json:"reachable"`
	Mismatches     int             `json:"mismatches"`
	MeanDirectUs   float64         `json:"mean_direct_us"`
	MeanCoworkerUs float64         `json:"mean_coworker_us"`
	MeanSyncUs     float64         `json:"mean_sync_us"`
	Metrics        []status.Sample `json:"metrics"`
}

// runBench generates cfg.Runs mazes and answers one random query per maze three ways
func runBench(cfg benchConfig, reg *status.Registry) (*report, error) {
	if cfg.Runs <= 0 {
		return nil, fmt.Errorf("runs must be positive, got %d", cfg.Runs)
	}
	if cfg.Dim < 3 {
		return nil, fmt.Errorf("dim must be at least 3, got %d", cfg.Dim)
	}

	astar := navigation.NewAStar(cfg.Dim, cfg.Dim)
	oracle := navigation.NewFlowField(cfg.Dim, cfg.Dim)
	inline := navigation.NewSyncCoworker(cfg.Dim, cfg.Dim, reg)

	coworker := navigation.NewCoworker(cfg.Dim, cfg.Dim)
	if err := coworker.Init(reg); err != nil {
		return nil, err
	}
	if err := coworker.Start(); err != nil {
		return nil, err
	}
	defer coworker.Stop()

	r := &report{
		Batch:  time.Now().UTC().Format(time.RFC3339Nano),
		Config: cfg,
		Runs:   make([]runResult, 0, cfg.Runs),
	}

	for i := 0; i < cfg.Runs; i++ {
		layout := maze.Generate(maze.Config{
			Width:  cfg.Dim,
			Height: cfg.Dim,
			Braid:  cfg.Braid,
			Seed:   cfg.SeedBase + uint64(i)*cfg.SeedStep,
		})
		free := layout.FreeCells()
		if len(free) == 0 {
			return nil, fmt.Errorf("seed %d: maze has no free cells", layout.Seed)
		}
		rng := rand.New(rand.NewPCG(layout.Seed, uint64(i)))
		start := free[rng.IntN(len(free))]
		finish := free[rng.IntN(len(free))]

		res, err := answer(&layout, start, finish, astar, oracle, coworker, inline)
		if err != nil {
			return nil, fmt.Errorf("seed %d: %w", layout.Seed, err)
		}
		res.Seed = layout.Seed
		r.add(res)
	}

	r.finish(reg)
	return r, nil
}

// answer runs every engine on one query
func answer(layout *maze.Layout, start, finish core.Point, astar *navigation.AStar, oracle *navigation.FlowField,
	coworker *navigation.Coworker, inline *navigation.SyncCoworker) (runResult, error) {

	res := runResult{Start: start, Finish: finish}
	var problems []string

	oracle.Compute(finish, layout)
	want := oracle.Distance(start)
	res.Reachable = want >= 0

	t0 := time.Now()
	offsets, found := astar.SearchOffsets(layout, start, finish)
	res.DirectUs = micros(time.Since(t0))
	res.Expanded = astar.Expanded()
	res.Cost = offsets.Cost()
	res.Steps = len(offsets)
	if msg := verify(layout, start, finish, offsets, found, want); msg != "" {
		problems = append(problems, "astar: "+msg)
	}

	if cells, ok := astar.Search(layout, start, finish); ok != found || len(cells) != len(offsets) {
		problems = append(problems, fmt.Sprintf("search: %d cells, offsets %d", len(cells), len(offsets)))
	} else if ok && len(cells) > 0 && cells[len(cells)-1] != finish {
		problems = append(problems, fmt.Sprintf("search: ends at %v", cells[len(cells)-1]))
	}

	t0 = time.Now()
	if !coworker.Request(layout, start, finish) {
		return res, fmt.Errorf("coworker refused request")
	}
	for !coworker.Ready() {
		if time.Since(t0) > coworkerTimeout {
			return res, fmt.Errorf("coworker timed out after %v", coworkerTimeout)
		}
		runtime.Gosched()
	}
	res.CoworkerUs = micros(time.Since(t0))
	got := coworker.Read()
	if msg := verify(layout, start, finish, got, len(got) > 0 || start == finish, want); msg != "" {
		problems = append(problems, "coworker: "+msg)
	}

	t0 = time.Now()
	inline.Request(layout, start, finish)
	res.SyncUs = micros(time.Since(t0))
	got = inline.Read()
	if msg := verify(layout, start, finish, got, len(got) > 0 || start == finish, want); msg != "" {
		problems = append(problems, "sync: "+msg)
	}

	res.Mismatch = strings.Join(problems, "; ")
	return res, nil
}

// verify checks an offset path against the oracle distance want (-1 when unreachable)
// The path must consist of unit steps through free cells ending at finish
func verify(m navigation.Obstacles, start, finish core.Point, offsets navigation.Path, found bool, want int) string {
	if found != (want >= 0) {
		return fmt.Sprintf("found=%v, oracle reachable=%v", found, want >= 0)
	}
	if !found {
		return ""
	}
	if cost := offsets.Cost(); cost != want {
		return fmt.Sprintf("cost %d, oracle %d", cost, want)
	}
	pos := start
	for step := range offsets.Steps() {
		if step.X < -1 || step.X > 1 || step.Y < -1 || step.Y > 1 || step == (core.Point{}) {
			return fmt.Sprintf("bad step %v at %v", step, pos)
		}
		pos = pos.Add(step)
		if m.IsObstacle(pos.X, pos.Y) {
			return fmt.Sprintf("walks through obstacle %v", pos)
		}
	}
	if pos != finish {
		return fmt.Sprintf("ends at %v", pos)
	}
	return ""
}

func (r *report) add(res runResult) {
	r.Runs = append(r.Runs, res)
	if res.Reachable {
		r.Reachable++
	}
	if res.Mismatch != "" {
		r.Mismatches++
	}
	r.MeanDirectUs += res.DirectUs
	r.MeanCoworkerUs += res.CoworkerUs
	r.MeanSyncUs += res.SyncUs
}

func (r *report) finish(reg *status.Registry) {
	if n := float64(len(r.Runs)); n > 0 {
		r.MeanDirectUs /= n
		r.MeanCoworkerUs /= n
		r.MeanSyncUs /= n
	}
	r.Metrics = reg.Snapshot()
}

func micros(d time.Duration) float64 {
	return float64(d.Nanoseconds()) / 1e3
}
