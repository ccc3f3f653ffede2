//go:build pprof

package profile

import (
	"maps"
	"slices"
	"sync"

	"github.com/pkg/profile"

	_ "net/http/pprof" // register HTTP handlers
)

// Enabled reports whether the binary was built with profiling support.
func Enabled() bool { return true }

// Modes returns the sorted list of supported profiling modes.
var Modes = sync.OnceValue(
	func() []string {
		return slices.Sorted(maps.Keys(mode))
	},
)

var mode = map[string]func(*profile.Profile){
	"allocs":    profile.MemProfileAllocs,
	"block":     profile.BlockProfile,
	"clock":     profile.ClockProfile,
	"cpu":       profile.CPUProfile,
	"goroutine": profile.GoroutineProfile,
	"heap":      profile.MemProfileHeap,
	"mem":       profile.MemProfile,
	"mutex":     profile.MutexProfile,
	"thread":    profile.ThreadcreationProfile,
	"trace":     profile.TraceProfile,
}

// option accumulates the settings passed to [profile.Start].
type option func([]func(*profile.Profile)) []func(*profile.Profile)

func withMode(m string) option {
	return func(s []func(*profile.Profile)) []func(*profile.Profile) {
		if fn, ok := mode[m]; ok {
			s = append(s, fn)
		}

		return s
	}
}

func withPath(p string) option {
	return func(s []func(*profile.Profile)) []func(*profile.Profile) {
		if p != "" {
			s = append(s, profile.ProfilePath(p))
		}

		return s
	}
}

func withQuiet(v bool) option {
	return func(s []func(*profile.Profile)) []func(*profile.Profile) {
		if v {
			s = append(s, profile.Quiet)
		}

		return s
	}
}

func start(p Profiler) Stopper {
	settings := withMode(p.Mode)(nil)
	if len(settings) == 0 {
		return ignore{}
	}

	settings = withQuiet(p.Quiet)(withPath(p.Path)(settings))

	return profile.Start(settings...)
}
