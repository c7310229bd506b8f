// Package logger wraps zerolog behind a tiny surface: one root logger built
// from LOG_* variables, child loggers per component, and request-scoped
// children fed from context
package logger

import (
	"context"
	"io"
	"os"
	"runtime/debug"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"easel/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is what the rest of the app logs through, aliased so call sites
// never name zerolog directly
type Logger = zerolog.Logger

// Options selects sink, level and the static fields stamped on every line
type Options struct {
	Level  string    // trace through panic; empty or unknown falls back to debug
	Format string    // console or json
	Writer io.Writer // nil means stdout

	Service   string
	Component string

	WithCaller   bool
	SampleEvery  int // emit every Nth line when > 1
	StaticFields map[string]string
}

// FromEnv reads LOG_* through the raw view; the logging config cannot itself
// log, that would recurse
func FromEnv() Options {
	env := raw.New().Prefix("LOG_")
	var o Options
	o.Level = env.String("LEVEL", "debug")
	o.Format = env.String("FORMAT", "console")
	o.Service = env.String("SERVICE", "")
	o.Component = env.String("COMPONENT", "")
	o.WithCaller = env.Bool("CALLER", false)
	o.SampleEvery = env.Int("SAMPLE_EVERY", 0)
	return o
}

var setup sync.Once
var root atomic.Pointer[zerolog.Logger]

// Init builds the root logger once; later calls are no-ops
func Init(o Options) {
	setup.Do(func() {
		l := build(o)
		root.Store(&l)
	})
}

// Get returns the root logger, initializing from the environment on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

func build(o Options) zerolog.Logger {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
	zerolog.TimeFieldFormat = time.RFC3339Nano

	lc := zerolog.New(sink(o)).Level(toLevel(o.Level)).With().Timestamp()
	for k, v := range stamp(o) {
		lc = lc.Str(k, v)
	}

	l := lc.Logger()
	if o.WithCaller {
		l = l.With().Caller().Logger()
	}
	if o.SampleEvery > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(o.SampleEvery)})
	}
	return l
}

// stamp collects the static fields every line carries
func stamp(o Options) map[string]string {
	f := make(map[string]string, len(o.StaticFields)+3)
	if bi, ok := debug.ReadBuildInfo(); ok {
		f["go_version"] = bi.GoVersion
	}
	if o.Service != "" {
		f["service"] = o.Service
	}
	if o.Component != "" {
		f["component"] = o.Component
	}
	for k, v := range o.StaticFields {
		f[k] = v
	}
	return f
}

// sink picks the writer: json goes straight out, console gets the pretty wrapper
func sink(o Options) io.Writer {
	w := io.Writer(os.Stdout)
	if o.Writer != nil {
		w = o.Writer
	}
	if strings.EqualFold(o.Format, "console") {
		return zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return w
}

// toLevel maps names through zerolog; unknown or empty means debug
func toLevel(s string) zerolog.Level {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "warning" {
		s = "warn"
	}
	lvl, err := zerolog.ParseLevel(s)
	if err != nil || lvl == zerolog.NoLevel {
		return zerolog.DebugLevel
	}
	return lvl
}

type requestIDKey struct{}

// WithRequest stores reqID for C to pick up; empty ids are not stored
func WithRequest(ctx context.Context, reqID string) context.Context {
	if reqID == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey{}, reqID)
}

// tag hangs one extra field off the root, or returns the root for empty values
func tag(key, val string) *Logger {
	if val == "" {
		return Get()
	}
	l := Get().With().Str(key, val).Logger()
	return &l
}

// C returns a child carrying the request id found on ctx, or the root when
// there is none
func C(ctx context.Context) *Logger {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return tag("request_id", id)
}

// Named returns a child tagged with a component field
func Named(component string) *Logger { return tag("component", component) }
