// Package monitor samples the OS clipboard in the background, classifies new
// content, persists it, and notifies subscribers.
package monitor

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/hpark/clipvault/internal/classify"
	"github.com/hpark/clipvault/internal/clipboard"
	"github.com/hpark/clipvault/internal/config"
	"github.com/hpark/clipvault/internal/db"
	"github.com/hpark/clipvault/internal/entry"
	"github.com/hpark/clipvault/internal/events"
)

type state int

const (
	stateIdle state = iota
	stateRunning
	stateStopped
)

// Monitor polls the clipboard on a fixed interval and appends every change
// to history, suppressing consecutive duplicates. Exactly one Monitor should
// run per process; Start and Stop are not reentrant across instances.
type Monitor struct {
	clip       clipboard.Clipboard
	database   *sql.DB
	classifier *classify.Classifier
	bus        *events.Bus
	logger     *log.Logger
	interval   time.Duration
	backoff    time.Duration

	mu     sync.Mutex
	state  state
	stopCh chan struct{}
	done   chan struct{}

	accepted       atomic.Int64
	readFailures   atomic.Int64
	appendFailures atomic.Int64
}

// New creates a Monitor. The bus may be nil if nobody wants live updates.
func New(clip clipboard.Clipboard, database *sql.DB, classifier *classify.Classifier, bus *events.Bus, cfg *config.Config, logger *log.Logger) *Monitor {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Monitor{
		clip:       clip,
		database:   database,
		classifier: classifier,
		bus:        bus,
		logger:     logger,
		interval:   time.Duration(cfg.PollIntervalMS) * time.Millisecond,
		backoff:    time.Duration(cfg.ReadBackoffMS) * time.Millisecond,
		stopCh:     make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start begins the polling loop in a new goroutine. It fails if the monitor
// is already running or has been stopped; a Monitor is single-use.
func (m *Monitor) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	switch m.state {
	case stateRunning:
		return fmt.Errorf("monitor already running")
	case stateStopped:
		return fmt.Errorf("monitor already stopped")
	}
	m.state = stateRunning

	go m.run()
	return nil
}

// Stop requests shutdown and waits for the loop to exit. Cancellation is
// cooperative: the loop observes the request at its next iteration boundary,
// so Stop returns within roughly one polling interval. Idempotent and safe
// to call before Start.
func (m *Monitor) Stop() {
	m.mu.Lock()
	prev := m.state
	if prev != stateStopped {
		m.state = stateStopped
		close(m.stopCh)
	}
	m.mu.Unlock()

	if prev == stateRunning {
		<-m.done
	}
}

// Accepted returns how many entries the monitor has recorded.
func (m *Monitor) Accepted() int64 { return m.accepted.Load() }

// ReadFailures returns how many clipboard reads have failed.
func (m *Monitor) ReadFailures() int64 { return m.readFailures.Load() }

// AppendFailures returns how many accepted entries failed to persist.
func (m *Monitor) AppendFailures() int64 { return m.appendFailures.Load() }

func (m *Monitor) run() {
	defer close(m.done)

	ctx := context.Background()

	// Seed duplicate suppression with the head of history so a restart does
	// not re-record the entry captured just before shutdown.
	lastAccepted, err := db.LatestContent(ctx, m.database)
	if err != nil {
		m.logger.Printf("monitor: seeding last accepted content: %v", err)
		lastAccepted = ""
	}

	for {
		select {
		case <-m.stopCh:
			return
		default:
		}

		text, err := m.clip.Read()
		if err != nil {
			// Transient: skip this poll and retry after a backoff.
			m.readFailures.Add(1)
			m.logger.Printf("monitor: clipboard read: %v", err)
			if !m.sleep(m.interval + m.backoff) {
				return
			}
			continue
		}

		// Only the immediately-previous value is compared: re-copies of older
		// content are legitimate new entries, and a full seen-set would grow
		// without bound over a long session.
		if text != "" && text != lastAccepted {
			m.capture(ctx, text)
			lastAccepted = text
		}

		if !m.sleep(m.interval) {
			return
		}
	}
}

// capture classifies, persists, and publishes one accepted clipboard value.
func (m *Monitor) capture(ctx context.Context, text string) {
	e := entry.New(text, m.classifier.Categorize(text))

	if err := db.Insert(ctx, m.database, e); err != nil {
		// The clipboard value is unchanged whether or not the insert worked,
		// so the caller still advances its last-accepted pointer; retrying
		// every poll would just repeat the failure.
		m.appendFailures.Add(1)
		m.logger.Printf("monitor: append: %v", err)
		return
	}

	m.accepted.Add(1)
	if m.bus != nil {
		m.bus.Publish(e)
	}
}

// sleep waits for d or until Stop is requested. Returns false on stop.
func (m *Monitor) sleep(d time.Duration) bool {
	select {
	case <-m.stopCh:
		return false
	case <-time.After(d):
		return true
	}
}
