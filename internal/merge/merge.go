// Package merge turns per-chunk intervals into the final per-read call list:
// it lifts coordinates to the read, collapses duplicate calls produced by
// overlapping chunks and assigns a confidence flag to every call.
package merge

import (
	"lrdecomp/internal/engine"
)

// Confidence flags.
const (
	FlagConfident = "+"
	FlagLow       = "?"
)

// Config controls merging and flagging.
type Config struct {
	MaxGap    int     // same-monomer calls whose ends are closer than this are one call
	Window    int     // trailing identities averaged for the flag
	Threshold float64 // mean identity below this flags the call as low confidence
}

// DefaultConfig returns the standard merge settings.
func DefaultConfig() Config { return Config{MaxGap: 150, Window: 5, Threshold: 80} }

// Call is a monomer call in read coordinates (inclusive).
type Call struct {
	ReadID   string
	Monomer  string
	Start    int
	End      int
	Identity int
	Alts     []engine.Alt
	Flag     string
}

// FromIntervals lifts chunk-local intervals to read coordinates.
func FromIntervals(ivs []engine.Interval) []Call {
	out := make([]Call, 0, len(ivs))
	for _, iv := range ivs {
		out = append(out, Call{
			ReadID:   iv.ReadID,
			Monomer:  iv.Monomer,
			Start:    iv.ChunkOffset + iv.Start,
			End:      iv.ChunkOffset + iv.End,
			Identity: iv.Identity,
			Alts:     iv.Alts,
		})
	}
	return out
}

// Merger consumes calls in read order and emits finalized calls. A call is
// held back until the next call can no longer replace it, so the output does
// not depend on how the input was batched.
type Merger struct {
	cfg  Config
	emit func(Call) error

	pending *Call
	lastEnd int   // end of the last emitted call of the current read
	recent  []int // trailing identities of emitted calls
}

// NewMerger returns a Merger that hands finalized calls to emit.
func NewMerger(cfg Config, emit func(Call) error) *Merger {
	return &Merger{cfg: cfg, emit: emit, lastEnd: -1}
}

// Add feeds the next call. Calls of a new read implicitly flush the previous one.
func (m *Merger) Add(c Call) error {
	if m.pending != nil && m.pending.ReadID != c.ReadID {
		if err := m.Flush(); err != nil {
			return err
		}
	}
	if p := m.pending; p != nil {
		sameCall := c.Monomer == p.Monomer && c.End-p.End < m.cfg.MaxGap
		if sameCall || c.Start <= p.End {
			if c.Identity > p.Identity && c.Start > m.lastEnd {
				m.pending = &c
			}
			return nil
		}
		if err := m.finalize(); err != nil {
			return err
		}
	}
	if c.Start <= m.lastEnd {
		return nil
	}
	m.pending = &c
	return nil
}

// Flush emits the pending call and resets the per-read state.
func (m *Merger) Flush() error {
	var err error
	if m.pending != nil {
		err = m.finalize()
	}
	m.lastEnd = -1
	m.recent = m.recent[:0]
	return err
}

func (m *Merger) finalize() error {
	c := *m.pending
	m.pending = nil
	m.lastEnd = c.End

	m.recent = append(m.recent, c.Identity)
	sum := 0
	for _, v := range m.recent {
		sum += v
	}
	if float64(sum)/float64(len(m.recent)) < m.cfg.Threshold {
		c.Flag = FlagLow
	} else {
		c.Flag = FlagConfident
	}
	if len(m.recent) > m.cfg.Window {
		m.recent = m.recent[1:]
	}
	return m.emit(c)
}

// Merge runs a Merger over calls and returns the result.
func Merge(cfg Config, calls []Call) []Call {
	var out []Call
	m := NewMerger(cfg, func(c Call) error {
		out = append(out, c)
		return nil
	})
	for _, c := range calls {
		_ = m.Add(c)
	}
	_ = m.Flush()
	return out
}
