// Package profile provides optional runtime profiling for iconf.
//
// Profiling is backed by [github.com/pkg/profile] and is compiled in only
// with the "pprof" build tag. Without the tag, [Profiler.Start] returns a
// no-op and [Modes] is empty.
//
//	p := profile.Profiler{Mode: "cpu", Path: "/tmp/profiles", Quiet: true}
//	defer p.Start(ctx).Stop()
//
// Profile files are named after the mode (cpu.pprof, mem.pprof, and so on).
// The iconf command exposes the same settings as flags:
//
//	go build -tags pprof -o iconf .
//	./iconf --pprof-mode=cpu get key --section app
//
// By default profiles are written beneath the user cache directory, in
// iconf/pprof. Inspect them with go tool pprof:
//
//	go tool pprof -http=: ./iconf ~/.cache/iconf/pprof/cpu.pprof
//
// Building with the tag also registers the [net/http/pprof] handlers on
// [net/http.DefaultServeMux].
package profile
