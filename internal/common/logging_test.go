package common

import (
	"bytes"
	"strings"
	"sync"
	"testing"
)

func TestNewLoggerFromConfig_ConsoleOnly(t *testing.T) {
	logger := NewLoggerFromConfig(LoggingConfig{Level: "error", Outputs: []string{"console"}})
	if logger == nil {
		t.Fatal("NewLoggerFromConfig returned nil")
	}
	// Must not panic
	logger.Info().Str("key", "value").Msg("filtered at error level")
	logger.Error().Str("product", "w1").Msg("visible")
}

func TestNewLoggerFromConfig_DefaultLevel(t *testing.T) {
	logger := NewLoggerFromConfig(LoggingConfig{})
	if logger == nil {
		t.Fatal("expected logger with default level")
	}
}

func TestNewLoggerWithOutput_WritesToProvidedWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLoggerWithOutput("info", &buf)
	logger.Info().Str("view", "wealth").Msg("products loaded")

	if !strings.Contains(buf.String(), "products loaded") {
		t.Errorf("expected message in output, got %q", buf.String())
	}
}

func TestNewSilentLogger_DiscardsOutput(t *testing.T) {
	logger := NewSilentLogger()
	if logger == nil {
		t.Fatal("NewSilentLogger returned nil")
	}
	logger.Error().Str("key", "value").Msg("should be discarded")
}

func TestWithCorrelationId_ReturnsNewLogger(t *testing.T) {
	logger := NewSilentLogger()
	tagged := logger.WithCorrelationId("req-123")
	if tagged == nil {
		t.Fatal("WithCorrelationId returned nil")
	}
	if tagged == logger {
		t.Error("expected a new logger instance")
	}
	tagged.Info().Msg("tagged message")
}

func TestConcurrentLogging_SilentLoggerSafe(t *testing.T) {
	logger := NewSilentLogger()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.Info().Int("n", n).Msg("concurrent")
		}(i)
	}
	wg.Wait()
}
