package log

import (
	"context"
	"log/slog"
	"testing"
	"time"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"trace", LevelTrace},
		{"TRACE", LevelTrace},
		{"  trace\t", LevelTrace},
		{"debug", LevelDebug},
		{" info ", LevelInfo},
		{"WARN", LevelWarn},
		{"error\n", LevelError},
		{"warn+2", Level(slog.LevelWarn + 2)},
		{"", DefaultLevel},
		{"verbose", DefaultLevel},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := ParseLevel(tt.in); got != tt.want {
				t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in   string
		want Format
	}{
		{"json", FormatJSON},
		{" TEXT ", FormatText},
		{"yaml", DefaultFormat},
	}

	for _, tt := range tests {
		if got := ParseFormat(tt.in); got != tt.want {
			t.Errorf("ParseFormat(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestLevels_RoundTrip(t *testing.T) {
	for name := range Levels() {
		if got := ParseLevel(name).String(); got != name {
			t.Errorf("ParseLevel(%q).String() = %q", name, got)
		}
	}

	for name := range Formats() {
		if got := ParseFormat(name).String(); got != name {
			t.Errorf("ParseFormat(%q).String() = %q", name, got)
		}
	}
}

func TestMakeFormatTimeFunc(t *testing.T) {
	ts := time.Date(2024, 3, 9, 14, 5, 7, 123456789, time.UTC)

	tests := []struct {
		layout string
		want   string
	}{
		{"RFC3339", "2024-03-09T14:05:07Z"},
		{"rfc-3339", "2024-03-09T14:05:07Z"},
		{"kitchen", "2:05PM"},
		{"ms", "Mar  9 14:05:07.123"},
		{"2006/01/02", "2024/03/09"},
		{"none", ""},
		{"  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.layout, func(t *testing.T) {
			if got := makeFormatTimeFunc(tt.layout)(ts); got != tt.want {
				t.Errorf("layout %q formatted %q, want %q", tt.layout, got, tt.want)
			}
		})
	}
}

func TestConfig_Handler_NilOutputDiscards(t *testing.T) {
	for _, c := range []config{
		{},
		{format: FormatJSON},
		{format: FormatText, pretty: true},
		{format: FormatJSON, pretty: true},
	} {
		h := c.handler()

		r := slog.NewRecord(time.Now(), slog.LevelError, "dropped", 0)
		if err := h.Handle(context.Background(), r); err != nil {
			t.Errorf("%+v: Handle() error = %v", c, err)
		}
	}
}

func TestConfig_Handler_Kind(t *testing.T) {
	tests := []struct {
		name string
		c    config
		want string
	}{
		{"pretty json", config{format: FormatJSON, pretty: true}, "*log.prettyJSONHandler"},
		{"pretty text", config{format: FormatText, pretty: true}, "*log.prettyTextHandler"},
		{"json", config{format: FormatJSON}, "*slog.JSONHandler"},
		{"text", config{format: FormatText}, "*slog.TextHandler"},
		{"unknown", config{format: Format(9)}, "slog.discardHandler"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := typeName(tt.c.handler()); got != tt.want {
				t.Errorf("handler type = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestConfig_Clone_Independent(t *testing.T) {
	base := makeConfig(nil, WithLevel(LevelWarn))
	next := base.clone(WithLevel(LevelTrace))

	if base.level != LevelWarn || next.level != LevelTrace {
		t.Errorf("levels = %v/%v, want warn/trace", base.level, next.level)
	}

	if base.mutex == next.mutex {
		t.Error("clone shares its mutex with the original")
	}
}
