package navigation

import (
	"log"
	"sync"
	"sync/atomic"

	"github.com/lixenwraith/mission/core"
	"github.com/lixenwraith/mission/status"
)

// Handshake flags shared between the consumer and the worker
const (
	FlagReady uint32 = 1 << iota // last result published, mailbox accepts a new request
	FlagStart                    // worker has something to look at
	FlagDone                     // worker must exit
)

// PathService is the request/read surface the simulation consumes
// An empty result means no route
type PathService interface {
	Request(m Obstacles, start, finish core.Point) bool
	Ready() bool
	Read() Path
}

// Coworker runs path searches on one background goroutine
//
// Protocol:
//   - Request installs a job only while READY is set, then clears READY
//   - Request always raises START and wakes the worker
//   - the worker clears START, exits on DONE, and searches when READY is clear
//   - the result is published before READY is raised again
//
// A Request arriving while a search is in flight is coalesced: the in-flight job wins.
// The map passed to an accepted Request is borrowed and must not change until Ready reports true.
type Coworker struct {
	flags atomic.Uint32

	mu   sync.Mutex
	cond *sync.Cond

	// Mailbox, guarded by mu
	field  Obstacles
	start  core.Point
	finish core.Point

	result atomic.Pointer[Path]
	search searcher

	running  atomic.Bool
	stopped  atomic.Bool
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewCoworker creates a stopped coworker for a width x height grid
// Metrics go to a private registry until Init binds a shared one
func NewCoworker(width, height int) *Coworker {
	c := &Coworker{
		search: newSearcher(width, height, status.NewRegistry()),
	}
	c.cond = sync.NewCond(&c.mu)
	c.flags.Store(FlagReady)
	empty := Path{}
	c.result.Store(&empty)
	return c
}

// Name implements service.Service
func (c *Coworker) Name() string { return "navigation" }

// Dependencies implements service.Service
func (c *Coworker) Dependencies() []string { return []string{"status"} }

// Init binds metrics to the first *status.Registry in args
func (c *Coworker) Init(args ...any) error {
	if c.stopped.Load() {
		return ErrStopped
	}
	if c.running.Load() {
		return ErrAlreadyStarted
	}
	for _, arg := range args {
		if reg, ok := arg.(*status.Registry); ok {
			c.search.bind(reg)
			break
		}
	}
	return nil
}

// Start launches the worker goroutine
func (c *Coworker) Start() error {
	if c.stopped.Load() {
		return ErrStopped
	}
	if !c.running.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}

	c.search.running.Store(true)
	c.wg.Add(1)
	core.Go(c.loop)
	return nil
}

// Stop raises DONE, wakes the worker and waits for it to exit
// Idempotent; the coworker is inert afterwards
func (c *Coworker) Stop() error {
	c.stopOnce.Do(func() {
		c.stopped.Store(true)

		c.mu.Lock()
		c.flags.Or(FlagStart | FlagDone)
		c.cond.Signal()
		c.mu.Unlock()

		c.wg.Wait()
		c.running.Store(false)
		c.search.running.Store(false)
	})
	return nil
}

// Request submits a search, returning true if the job was installed
// Never blocks on the search itself
func (c *Coworker) Request(m Obstacles, start, finish core.Point) bool {
	if c.flags.Load()&FlagDone != 0 {
		return false
	}
	c.search.requests.Add(1)

	c.mu.Lock()
	defer c.mu.Unlock()

	accepted := c.flags.Load()&FlagReady != 0
	if accepted {
		c.field = m
		c.start = start
		c.finish = finish
		c.flags.And(^FlagReady)
	} else {
		c.search.coalesced.Add(1)
	}

	c.flags.Or(FlagStart)
	c.cond.Signal()
	return accepted
}

// Ready reports whether the last accepted request has been answered
func (c *Coworker) Ready() bool {
	return c.flags.Load()&FlagReady != 0
}

// Read returns the most recently published offset path in goal-to-start order
// Empty before the first result and when no route exists; callers must not modify it
func (c *Coworker) Read() Path {
	return *c.result.Load()
}

// Flags returns the raw handshake word
func (c *Coworker) Flags() uint32 {
	return c.flags.Load()
}

func (c *Coworker) loop() {
	defer c.wg.Done()

	for {
		c.mu.Lock()
		for c.flags.Load()&FlagStart == 0 {
			c.cond.Wait()
		}
		c.flags.And(^FlagStart)

		flags := c.flags.Load()
		if flags&FlagDone != 0 {
			c.mu.Unlock()
			log.Printf("navigation: worker exiting")
			return
		}
		if flags&FlagReady != 0 {
			c.mu.Unlock()
			continue
		}
		field, start, finish := c.field, c.start, c.finish
		c.mu.Unlock()

		path := c.search.run(field, start, finish)
		c.result.Store(&path)
		c.flags.Or(FlagReady)
	}
}
