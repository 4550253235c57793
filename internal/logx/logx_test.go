package logx

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"WARNING": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := parseLevel(in); got != want {
			t.Fatalf("parseLevel(%q)=%v want %v", in, got, want)
		}
	}
}

func TestScopeFollowsInit(t *testing.T) {
	scope := GetScope("menu")
	before := scope.Zap()

	Init("error", "json")
	t.Cleanup(func() { Init("info", "console") })

	after := scope.Zap()
	if before == after {
		t.Fatalf("scoped logger did not pick up the new global logger")
	}
	if after.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("info should be disabled after Init(error)")
	}
}
