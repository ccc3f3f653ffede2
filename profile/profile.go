package profile

import (
	"context"
	"log/slog"

	"github.com/ardnew/iconf/log"
)

// Tag names the build tag that enables profiling. It also names the cache
// subdirectory where profiles are written by default.
const Tag = "pprof"

// Stopper ends an active profiling session.
type Stopper interface{ Stop() }

// Profiler describes a single profiling session.
type Profiler struct {
	Mode  string // one of [Modes], or empty to disable
	Path  string // output directory
	Quiet bool   // suppress the profiler's own messages
}

// Start begins profiling and returns the [Stopper] that ends it.
//
// If the binary was built without the pprof tag, or Mode is empty or
// unsupported, Start returns a no-op. Both Start and Stop are always safely
// callable.
func (p Profiler) Start(ctx context.Context) Stopper {
	if p.Mode == "" {
		return ignore{}
	}

	s := start(p)

	log.DebugContext(ctx, "profiler started",
		slog.String("mode", p.Mode),
		slog.String("path", p.Path),
		slog.Bool("enabled", Enabled()),
	)

	return s
}

type ignore struct{}

func (ignore) Stop() {}
