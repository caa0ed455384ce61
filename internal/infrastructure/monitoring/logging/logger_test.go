package logging

import (
	"errors"
	"testing"

	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFieldConstructors(t *testing.T) {
	if f := String("k", "v"); f.Key != "k" || f.Value != "v" {
		t.Errorf("String field: %+v", f)
	}
	if f := Int("n", 7); f.Value != 7 {
		t.Errorf("Int field: %+v", f)
	}
	if f := Err(nil); f.Key != "error" || f.Value != "" {
		t.Errorf("Err(nil) field: %+v", f)
	}
	if f := Err(errors.New("boom")); f.Key != "error" {
		t.Errorf("Err field: %+v", f)
	}
}

func TestZapLoggerEmitsFields(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	log := NewLoggerFromCore(core)

	log.Info("inspection recorded",
		String("equipment_id", "eq-1"),
		Float64("leak_rate", 182.5),
		Bool("compliant", false))

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e.Message != "inspection recorded" {
		t.Errorf("message = %q", e.Message)
	}
	ctx := e.ContextMap()
	if ctx["equipment_id"] != "eq-1" {
		t.Errorf("equipment_id = %v", ctx["equipment_id"])
	}
	if ctx["leak_rate"] != 182.5 {
		t.Errorf("leak_rate = %v", ctx["leak_rate"])
	}
	if ctx["compliant"] != false {
		t.Errorf("compliant = %v", ctx["compliant"])
	}
}

func TestWithAndNamed(t *testing.T) {
	core, observed := observer.New(zapcore.DebugLevel)
	log := NewLoggerFromCore(core).Named("compliance").With(String("service", "evaluator"))

	log.Warn("leak rate exceeds threshold")

	entries := observed.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	if entries[0].LoggerName != "compliance" {
		t.Errorf("logger name = %q", entries[0].LoggerName)
	}
	if entries[0].ContextMap()["service"] != "evaluator" {
		t.Errorf("With field missing: %v", entries[0].ContextMap())
	}
}

func TestLevelFiltering(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)
	log := NewLoggerFromCore(core)

	log.Debug("ignored")
	log.Info("ignored too")
	log.Error("kept")

	if n := len(observed.All()); n != 1 {
		t.Errorf("expected only the error entry, got %d entries", n)
	}
}

func TestNewLoggerDefaults(t *testing.T) {
	log, err := NewLogger(LogConfig{})
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	if log == nil {
		t.Fatal("nil logger")
	}
}

func TestDefaultLogger(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	if Default() == nil {
		t.Fatal("Default should never be nil")
	}

	nop := NewNopLogger()
	SetDefault(nop)
	if Default() != nop {
		t.Error("SetDefault did not take effect")
	}

	SetDefault(nil) // ignored
	if Default() != nop {
		t.Error("SetDefault(nil) should be a no-op")
	}
}

//Personal.AI order the ending
