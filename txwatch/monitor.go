package txwatch

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	clientconfig "github.com/qchain/sdk-go/client/config"
	sdklog "github.com/qchain/sdk-go/pkg/log"
)

// Monitor resolves in-flight transaction ids to terminal statuses. It owns
// one polling session per transaction id; starting a new session for an id
// cancels the previous one.
type Monitor struct {
	node   NodeReader
	index  IndexReader
	cfg    clientconfig.WatchConfig
	linkFn LinkFn
	logger sdklog.Logger

	mu       sync.Mutex
	sessions map[string]*Session
}

// Session is the live state of one confirmation-monitoring run. It is
// created by Monitor.Start and owns a single polling goroutine; ticks within
// a session are strictly sequential.
type Session struct {
	ID   string
	TxID string

	cancel  context.CancelFunc
	done    chan Status
	updates chan Status

	mu        sync.Mutex
	cancelled bool
	result    *Status
}

// New creates a monitor over the two read paths. linkFn may be nil; timed-out
// statuses then carry no explorer links.
func New(node NodeReader, index IndexReader, cfg clientconfig.WatchConfig, linkFn LinkFn, logger sdklog.Logger) (*Monitor, error) {
	if node == nil {
		return nil, fmt.Errorf("node reader is required")
	}
	if index == nil {
		return nil, fmt.Errorf("index reader is required")
	}
	clientconfig.ApplyWatchDefaults(&cfg)
	if logger == nil {
		logger = sdklog.NoopLogger{}
	}
	return &Monitor{
		node:     node,
		index:    index,
		cfg:      cfg,
		linkFn:   linkFn,
		logger:   logger,
		sessions: make(map[string]*Session),
	}, nil
}

// Start begins a polling session for txid. Any prior session for the same id
// is cancelled first, so at most one session per id is ever active. The
// session ends when a terminal status is reached, Cancel is called, or ctx
// is done.
func (m *Monitor) Start(ctx context.Context, txid string) (*Session, error) {
	if txid == "" {
		return nil, fmt.Errorf("transaction id is required")
	}

	sctx, cancel := context.WithCancel(ctx)
	s := &Session{
		ID:      uuid.NewString(),
		TxID:    txid,
		cancel:  cancel,
		done:    make(chan Status, 1),
		updates: make(chan Status, 8),
	}

	m.mu.Lock()
	if prev, ok := m.sessions[txid]; ok {
		prev.Cancel()
	}
	m.sessions[txid] = s
	m.mu.Unlock()

	go m.run(sctx, s)
	return s, nil
}

// Poll performs one immediate confirmation check outside any session cadence
// (the "check now" action). It never returns an error; failures are folded
// into the status.
func (m *Monitor) Poll(ctx context.Context, txid string) Status {
	p := &poller{node: m.node, index: m.index}
	return p.check(ctx, txid, true)
}

// Done returns a channel that receives the session's single terminal status.
// A cancelled session closes the channel without sending.
func (s *Session) Done() <-chan Status { return s.done }

// Updates returns intermediate statuses ("checking... n/N"). Sends are
// non-blocking; a slow consumer misses updates, never the terminal status.
func (s *Session) Updates() <-chan Status { return s.updates }

// Result returns the terminal status once the session has finished.
func (s *Session) Result() (Status, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return Status{}, false
	}
	return *s.result, true
}

// Cancel stops the session's timer. Idempotent; calling it on an already
// terminal or already cancelled session is a no-op.
func (s *Session) Cancel() {
	s.mu.Lock()
	s.cancelled = true
	s.mu.Unlock()
	s.cancel()
}

// Cancelled reports whether Cancel was called on this session.
func (s *Session) Cancelled() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cancelled
}

func (s *Session) finish(st Status) {
	s.mu.Lock()
	if s.result != nil {
		s.mu.Unlock()
		return
	}
	s.result = &st
	s.mu.Unlock()
	s.done <- st
	close(s.done)
	close(s.updates)
}

func (s *Session) abandon() {
	s.mu.Lock()
	terminal := s.result != nil
	s.mu.Unlock()
	if terminal {
		return
	}
	close(s.done)
	close(s.updates)
}

func (m *Monitor) run(ctx context.Context, s *Session) {
	// Deregister before emitting so a receiver of the terminal status never
	// observes the session as still active.
	finish := func(st Status) {
		m.forget(s)
		s.finish(st)
	}
	abandon := func() {
		m.forget(s)
		s.abandon()
	}

	p := &poller{node: m.node, index: m.index}
	backoff := NewBackoff(m.cfg)

	attempt := 0
	errStreak := 0
	for {
		select {
		case <-ctx.Done():
			abandon()
			return
		default:
		}

		attempt++
		forceIndex := m.cfg.IndexCheckEvery > 0 && attempt%m.cfg.IndexCheckEvery == 0
		st := p.check(ctx, s.TxID, forceIndex)
		st.Attempts = attempt

		if st.State == StateError {
			errStreak++
		} else {
			errStreak = 0
		}

		switch {
		case st.State == StateConfirmed:
			m.logger.Printf("tx %s confirmed in round %d after %d attempts", s.TxID, st.Round, attempt)
			finish(st)
			return
		case st.PoolRejected:
			m.logger.Printf("tx %s rejected by pool: %s", s.TxID, st.Message)
			finish(st)
			return
		case st.State == StateError && errStreak >= m.cfg.ErrorStreakLimit:
			// Structured errors on every recent attempt are unlikely to
			// self-resolve; end early instead of burning the full ceiling.
			m.logger.Printf("tx %s: giving up after %d consecutive errors: %s", s.TxID, errStreak, st.Message)
			finish(st)
			return
		case attempt >= m.cfg.MaxAttempts:
			if st.State == StateError {
				finish(st)
				return
			}
			timedOut := Status{
				TxID:     s.TxID,
				State:    StateTimedOut,
				Message:  fmt.Sprintf("no confirmation after %d attempts", attempt),
				Attempts: attempt,
			}
			if m.linkFn != nil {
				timedOut.Links = m.linkFn(s.TxID)
			}
			m.logger.Printf("tx %s: %s", s.TxID, timedOut.Message)
			finish(timedOut)
			return
		}

		select {
		case s.updates <- st:
		default:
		}

		select {
		case <-ctx.Done():
			abandon()
			return
		case <-sleepCtx(ctx, backoff.Next(attempt)):
		}
	}
}

func (m *Monitor) forget(s *Session) {
	m.mu.Lock()
	if cur, ok := m.sessions[s.TxID]; ok && cur == s {
		delete(m.sessions, s.TxID)
	}
	m.mu.Unlock()
}

// Active reports whether a session for txid is currently polling.
func (m *Monitor) Active(txid string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[txid]
	return ok
}
