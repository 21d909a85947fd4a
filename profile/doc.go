// Package profile provides optional runtime profiling.
//
// Profiling is compiled in only with the "pprof" build tag; otherwise
// [Start] always returns a no-op and [Modes] is empty.
//
//	stop := profile.Start(
//		profile.WithMode("cpu"),
//		profile.WithPath(dir),
//	)
//	defer stop.Stop()
//
// Profiles are written by [github.com/pkg/profile] into the configured
// directory (e.g., cpu.pprof) and can be inspected with "go tool pprof".
// With the build tag, [net/http/pprof] handlers are also registered.
package profile

// Tag is the build tag required to enable pprof profiling.
const Tag = `pprof`
