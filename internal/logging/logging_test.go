package logging

import (
	"testing"

	"go.uber.org/zap"
)

func TestNew_LevelFallsBackToInfo(t *testing.T) {
	logger, err := New(Config{Level: "loud", Format: "json", Service: "partquote"})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	defer logger.Sync()

	if logger.Core().Enabled(zap.DebugLevel) {
		t.Fatalf("debug should be disabled at the fallback level")
	}
	if !logger.Core().Enabled(zap.InfoLevel) {
		t.Fatalf("info should be enabled")
	}
}

func TestNew_DebugLevel(t *testing.T) {
	logger, err := New(Config{Level: "debug", Format: "console", Development: true})
	if err != nil {
		t.Fatalf("new logger: %v", err)
	}
	defer logger.Sync()

	if !logger.Core().Enabled(zap.DebugLevel) {
		t.Fatalf("debug should be enabled")
	}
}
