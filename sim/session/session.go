package session

import (
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/joshuapare/memsim/internal/logger"
	"github.com/joshuapare/memsim/sim/alloc"
	"github.com/joshuapare/memsim/sim/store"
	"github.com/joshuapare/memsim/sim/verify"
)

// State is the configuration state of a Session.
type State uint8

const (
	Unconfigured State = iota
	Configured
)

func (s State) String() string {
	if s == Configured {
		return "configured"
	}
	return "unconfigured"
}

// Request is one process of a batch as submitted by a caller.
type Request struct {
	Name string `json:"name"`
	Size int    `json:"size"`
}

// Option configures a Session.
type Option func(*Session)

// WithLogger routes session logs to l instead of the package logger.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) { s.log = l }
}

// Session is one simulation: a store, the allocator for the configured mode
// and the process id counter. It is not safe for concurrent use.
type Session struct {
	state  State
	mode   alloc.Mode
	cfg    Config
	st     *store.Store
	alloc  alloc.Allocator
	nextID store.ProcessID
	log    *slog.Logger
}

// New returns an unconfigured session in segmentation mode.
func New(opts ...Option) *Session {
	s := &Session{
		mode:   alloc.Segmentation,
		st:     store.New(0),
		nextID: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Session) logger() *slog.Logger {
	if s.log != nil {
		return s.log
	}
	return logger.L
}

// State reports whether the session has been configured.
func (s *Session) State() State { return s.state }

// Mode returns the active mode, or the mode selected by SwitchMode while unconfigured.
func (s *Session) Mode() alloc.Mode { return s.mode }

// Config returns the active configuration. It is zero while unconfigured.
func (s *Session) Config() Config { return s.cfg }

// Configure validates the sizes and mode, resets the store to
// floor(totalBytes/blockSize) free blocks and drops every record.
// An invalid configuration leaves the session untouched.
func (s *Session) Configure(totalBytes, blockSize int, mode alloc.Mode) (Config, error) {
	cfg, err := NewConfig(totalBytes, blockSize, mode)
	if err != nil {
		return Config{}, err
	}
	return s.Apply(cfg)
}

// Apply configures the session from a Config built by NewConfig or ParseConfig.
func (s *Session) Apply(cfg Config) (Config, error) {
	cfg, err := NewConfig(cfg.TotalBytes, cfg.BlockSize, cfg.Mode)
	if err != nil {
		return Config{}, err
	}

	st := store.New(cfg.TotalBlocks)
	a, err := alloc.New(cfg.Mode, st, cfg.BlockSize)
	if err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	s.st = st
	s.alloc = a
	s.cfg = cfg
	s.mode = cfg.Mode
	s.state = Configured

	s.logger().Info("session configured",
		"total", cfg.TotalBytes, "block", cfg.BlockSize,
		"blocks", cfg.TotalBlocks, "mode", cfg.Mode.String())
	return cfg, nil
}

// Reset drops the configuration, the store and every record. The id
// counter keeps counting.
func (s *Session) Reset() {
	s.st = store.New(0)
	s.alloc = nil
	s.cfg = Config{}
	s.state = Unconfigured
	s.logger().Debug("session reset")
}

// SwitchMode resets the session and selects mode for the next Configure.
func (s *Session) SwitchMode(mode alloc.Mode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: unknown mode %s", ErrInvalidConfig, mode)
	}
	s.Reset()
	s.mode = mode
	return nil
}

// SubmitBatch assigns ids to reqs and places them in order with the active
// allocator. The strategy only matters under segmentation.
//
// The whole batch is rejected before anything is placed when it is empty or
// holds a non-positive size. Otherwise the first process that cannot be
// placed stops the batch; earlier processes stay placed and their records
// are returned along with the error.
func (s *Session) SubmitBatch(reqs []Request, strategy alloc.Strategy) ([]alloc.Record, error) {
	if s.state != Configured {
		return nil, ErrNotConfigured
	}
	if len(reqs) == 0 {
		return nil, ErrEmptyBatch
	}
	for _, r := range reqs {
		if r.Size <= 0 {
			p := alloc.Process{Name: cleanName(r.Name), Size: r.Size}
			return nil, &alloc.Error{Process: p, Err: alloc.ErrInvalidSize}
		}
	}

	procs := make([]alloc.Process, len(reqs))
	for i, r := range reqs {
		id := s.nextID
		s.nextID++
		name := cleanName(r.Name)
		if name == "" {
			name = fmt.Sprintf("Process %d", id)
		}
		procs[i] = alloc.Process{ID: id, Name: name, Size: r.Size}
	}

	recs, err := s.alloc.Allocate(procs, strategy)
	if err != nil {
		s.logger().Warn("batch stopped",
			"placed", len(recs), "submitted", len(procs), "error", err)
		return recs, err
	}
	s.logger().Info("batch placed",
		"processes", len(recs), "strategy", strategy.String(), "mode", s.mode.String())
	return recs, nil
}

// Deallocate frees the blocks of id. Unknown ids are ignored.
func (s *Session) Deallocate(id store.ProcessID) error {
	if s.state != Configured {
		return ErrNotConfigured
	}
	if s.alloc.Deallocate(id) {
		s.logger().Info("process deallocated", "pid", int(id))
	}
	return nil
}

// FreeRuns returns the maximal free runs in increasing start order.
func (s *Session) FreeRuns() []store.FreeRun { return store.FreeRuns(s.st) }

// Spans returns the memory map.
func (s *Session) Spans() []store.Span { return store.Spans(s.st) }

// Blocks returns a copy of the block array.
func (s *Session) Blocks() []store.ProcessID { return s.st.Snapshot() }

// Records returns every live record ordered by process id.
func (s *Session) Records() []alloc.Record {
	if s.alloc == nil {
		return nil
	}
	return s.alloc.Records()
}

// Record returns the live record of id.
func (s *Session) Record(id store.ProcessID) (alloc.Record, bool) {
	if s.alloc == nil {
		return alloc.Record{}, false
	}
	return s.alloc.Record(id)
}

// Verify checks the store against the records.
func (s *Session) Verify() error {
	return verify.AllInvariants(s.st, s.Records(), s.cfg.BlockSize)
}

// cleanName trims and NFC-normalises a process name so that visually equal
// names compare equal.
func cleanName(name string) string {
	return norm.NFC.String(strings.TrimSpace(name))
}
