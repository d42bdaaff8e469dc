package graph

import "github.com/Vasuaghera/ClimbAlgoMountain-sub002/internal/algo/trace"

// Option configures a single algorithm run.
type Option func(*options)

type options struct {
	rec trace.Recorder
}

// WithRecorder captures the steps of the run. A nil recorder is ignored.
func WithRecorder(r trace.Recorder) Option {
	return func(o *options) {
		if r != nil {
			o.rec = r
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{rec: trace.Nop{}}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
