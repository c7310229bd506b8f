package logger

import (
	"bytes"
	"context"
	"testing"

	kit "easel/internal/platform/testkit"

	"github.com/rs/zerolog"
)

func TestLevelNames(t *testing.T) {
	rows := []struct {
		give string
		want zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"debug", zerolog.DebugLevel},
		{"INFO", zerolog.InfoLevel},
		{"warn", zerolog.WarnLevel},
		{"warning", zerolog.WarnLevel},
		{"  error  ", zerolog.ErrorLevel},
		{"fatal", zerolog.FatalLevel},
		{"panic", zerolog.PanicLevel},
		{"", zerolog.DebugLevel},
		{"verbose", zerolog.DebugLevel},
	}
	for _, row := range rows {
		if got := toLevel(row.give); got != row.want {
			t.Fatalf("toLevel(%q) = %v, want %v", row.give, got, row.want)
		}
	}
}

// alwaysEmit defeats root-level sampling so assertions see every line
func alwaysEmit(l *Logger) *Logger {
	v := l.Sample(&zerolog.BasicSampler{N: 1})
	return &v
}

func TestRootAndChildLoggers(t *testing.T) {
	var out bytes.Buffer

	// sampling on so that branch is exercised; children re-sample to emit
	opt := Options{Level: "info", Format: "console", Service: "easel-api", Component: "api", Writer: &out}
	opt.WithCaller = true
	opt.SampleEvery = 3
	opt.StaticFields = map[string]string{"region": "us-east"}
	Init(opt)

	alwaysEmit(Get()).Info().Str("path", "/images/batch-status").Msg("root-msg")
	alwaysEmit(Named("imagecheck")).Info().Msg("named-msg")

	ctx := WithRequest(context.Background(), "req-7f3a")
	alwaysEmit(C(ctx)).Info().Msg("ctx-msg")

	// a bare context adds no request field but must still log
	alwaysEmit(C(context.Background())).Info().Msg("bare-ctx")

	logged := out.String()

	for _, want := range []string{
		"root-msg", "named-msg", "ctx-msg", "bare-ctx",
		"component=", "imagecheck",
		"request_id=", "req-7f3a",
		"service=", "easel-api",
		"region=", "us-east",
	} {
		kit.MustContain(t, logged, want)
	}
}

func TestFromEnv(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_FORMAT", "json")
	t.Setenv("LOG_SERVICE", "easel-api")
	t.Setenv("LOG_COMPONENT", "edge")
	t.Setenv("LOG_CALLER", "1")
	t.Setenv("LOG_SAMPLE_EVERY", "3")

	got := FromEnv()
	if got.Level != "error" || got.Format != "json" {
		t.Fatalf("level/format: %+v", got)
	}
	if got.Service != "easel-api" || got.Component != "edge" {
		t.Fatalf("service/component: %+v", got)
	}
	if !got.WithCaller || got.SampleEvery != 3 {
		t.Fatalf("caller/sample: %+v", got)
	}
}

func TestSinkSelection(t *testing.T) {
	var dst bytes.Buffer

	if w := sink(Options{Writer: &dst, Format: "json"}); w != &dst {
		t.Fatal("json format should write straight to the buffer")
	}
	if _, ok := sink(Options{Writer: &dst, Format: "Console"}).(zerolog.ConsoleWriter); !ok {
		t.Fatal("console format should wrap the buffer, whatever its case")
	}
}
