package scenario

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/joshuapare/memsim/sim/alloc"
	"github.com/joshuapare/memsim/sim/session"
	"github.com/joshuapare/memsim/sim/store"
)

// Supported values of Scenario.Encoding.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
)

// Scenario is a scripted simulation.
type Scenario struct {
	Name     string `json:"name,omitempty"`
	Total    int    `json:"total"`
	Block    int    `json:"block"`
	Mode     string `json:"mode"`
	Strategy string `json:"strategy,omitempty"`
	Encoding string `json:"encoding,omitempty"`
	Steps    []Step `json:"steps"`
}

// Step submits a batch or frees processes. Strategy overrides the scenario
// strategy for this batch.
type Step struct {
	Allocate []session.Request `json:"allocate,omitempty"`
	Strategy string            `json:"strategy,omitempty"`
	Free     []int             `json:"free,omitempty"`
}

// IsFree reports whether the step frees processes.
func (s Step) IsFree() bool { return len(s.Free) > 0 }

// Config validates the scenario's configuration fields.
func (sc *Scenario) Config() (session.Config, error) {
	mode, err := alloc.ParseMode(sc.Mode)
	if err != nil {
		return session.Config{}, fmt.Errorf("%w: %w", session.ErrInvalidConfig, err)
	}
	return session.NewConfig(sc.Total, sc.Block, mode)
}

// DefaultStrategy returns the parsed scenario strategy, FirstFit when unset.
func (sc *Scenario) DefaultStrategy() (alloc.Strategy, error) {
	return alloc.ParseStrategy(sc.Strategy)
}

// Validate checks the configuration, every strategy name and the shape of
// every step without running anything.
func (sc *Scenario) Validate() error {
	if _, err := sc.Config(); err != nil {
		return err
	}
	if _, err := sc.DefaultStrategy(); err != nil {
		return err
	}
	for i, step := range sc.Steps {
		if step.IsFree() == (len(step.Allocate) > 0) {
			return fmt.Errorf("%w: step %d must either allocate or free", ErrInvalidStep, i+1)
		}
		if _, err := alloc.ParseStrategy(step.Strategy); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		for _, id := range step.Free {
			if id <= 0 {
				return fmt.Errorf("%w: step %d frees non-positive id %d", ErrInvalidStep, i+1, id)
			}
		}
	}
	return nil
}

// Load reads a scenario from r.
func Load(r io.Reader) (*Scenario, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return Parse(data)
}

// LoadFile reads a scenario from path.
func LoadFile(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sc, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// Parse decodes a scenario. The encoding field is read first; Windows-1252
// files are then decoded to UTF-8 and parsed again so names come out right.
func Parse(data []byte) (*Scenario, error) {
	var probe struct {
		Encoding string `json:"encoding"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}

	enc, err := normalizeEncoding(probe.Encoding)
	if err != nil {
		return nil, err
	}
	if enc == EncodingWindows1252 {
		data, err = decodeWindows1252(data)
		if err != nil {
			return nil, err
		}
	}

	var sc Scenario
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	sc.Encoding = enc
	return &sc, nil
}

func normalizeEncoding(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "utf-8", "utf8":
		return EncodingUTF8, nil
	case "windows-1252", "cp1252", "latin1", "latin-1":
		return EncodingWindows1252, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrEncoding, s)
	}
}

func decodeWindows1252(data []byte) ([]byte, error) {
	r := transform.NewReader(bytes.NewReader(data), charmap.Windows1252.NewDecoder())
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("decode windows-1252: %w", err)
	}
	return out, nil
}

// FreeIDs converts the free list of a step to process ids.
func (s Step) FreeIDs() []store.ProcessID {
	ids := make([]store.ProcessID, len(s.Free))
	for i, id := range s.Free {
		ids[i] = store.ProcessID(id)
	}
	return ids
}
