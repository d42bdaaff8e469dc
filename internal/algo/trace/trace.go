// Package trace records the individual steps an algorithm takes so that
// lessons can replay them one at a time and the API can return them as JSON.
package trace

import "fmt"

// Kind classifies a single algorithm step.
type Kind int

const (
	KindVisit Kind = iota
	KindEnqueue
	KindDequeue
	KindPush
	KindPop
	KindRelax
	KindSelect
	KindReject
	KindUnion
	KindFind
	KindCompress
	KindEmit
	KindCycle
	KindDone
)

var kindNames = [...]string{
	KindVisit:    "visit",
	KindEnqueue:  "enqueue",
	KindDequeue:  "dequeue",
	KindPush:     "push",
	KindPop:      "pop",
	KindRelax:    "relax",
	KindSelect:   "select",
	KindReject:   "reject",
	KindUnion:    "union",
	KindFind:     "find",
	KindCompress: "compress",
	KindEmit:     "emit",
	KindCycle:    "cycle",
	KindDone:     "done",
}

// String returns the lower-case name used in JSON and logs.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "unknown"
	}
	return kindNames[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return fmt.Errorf("trace: unknown step kind %q", b)
}

// Step is one observable action of an algorithm.
// Node is set for vertex-level steps, From/To for edge-level steps.
type Step struct {
	Kind  Kind    `json:"kind"`
	Node  string  `json:"node,omitempty"`
	From  string  `json:"from,omitempty"`
	To    string  `json:"to,omitempty"`
	Value float64 `json:"value,omitempty"`
	Note  string  `json:"note,omitempty"`
}

// Recorder receives steps as an algorithm runs.
type Recorder interface {
	Record(Step)
}

// Nop discards every step.
type Nop struct{}

// Record implements Recorder.
func (Nop) Record(Step) {}

// Trace is an in-memory Recorder that keeps steps in order.
type Trace struct {
	Steps []Step `json:"steps"`
}

// New returns an empty trace.
func New() *Trace {
	return &Trace{Steps: make([]Step, 0, 32)}
}

// Record implements Recorder.
func (t *Trace) Record(s Step) {
	t.Steps = append(t.Steps, s)
}

// Len returns the number of recorded steps.
func (t *Trace) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Steps)
}

// At returns step i, or false when i is out of range.
func (t *Trace) At(i int) (Step, bool) {
	if t == nil || i < 0 || i >= len(t.Steps) {
		return Step{}, false
	}
	return t.Steps[i], true
}

// Filter returns the steps of the given kind in order.
func (t *Trace) Filter(kind Kind) []Step {
	var out []Step
	for _, s := range t.Steps {
		if s.Kind == kind {
			out = append(out, s)
		}
	}
	return out
}

// String formats a step for the lesson log.
func (s Step) String() string {
	switch {
	case s.From != "" || s.To != "":
		if s.Value != 0 {
			return fmt.Sprintf("%-8s %s-%s (%g)", s.Kind, s.From, s.To, s.Value)
		}
		return fmt.Sprintf("%-8s %s-%s", s.Kind, s.From, s.To)
	case s.Node != "":
		if s.Note != "" {
			return fmt.Sprintf("%-8s %s %s", s.Kind, s.Node, s.Note)
		}
		return fmt.Sprintf("%-8s %s", s.Kind, s.Node)
	default:
		return fmt.Sprintf("%-8s %s", s.Kind, s.Note)
	}
}

// Or returns r, or Nop when r is nil.
func Or(r Recorder) Recorder {
	if r == nil {
		return Nop{}
	}
	return r
}
