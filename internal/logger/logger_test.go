package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func captureJSON(t *testing.T, level slog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	defaultLogger = slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: level}))
	return &buf
}

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var logEntry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &logEntry); err != nil {
		t.Fatalf("Failed to parse JSON log output: %v", err)
	}
	return logEntry
}

// TestInitWithWriter_JSONFormat tests that the json format produces parseable entries
func TestInitWithWriter_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "info", "json")

	Info(context.Background(), "test message", "key1", "value1", "key2", 42)

	logEntry := decodeEntry(t, &buf)
	if logEntry["msg"] != "test message" {
		t.Errorf("Expected msg='test message', got %v", logEntry["msg"])
	}
	if logEntry["key1"] != "value1" {
		t.Errorf("Expected key1='value1', got %v", logEntry["key1"])
	}
	if logEntry["key2"] != float64(42) {
		t.Errorf("Expected key2=42, got %v", logEntry["key2"])
	}
	if _, ok := logEntry["time"]; !ok {
		t.Error("Expected 'time' field in log output")
	}
	if logEntry["level"] != "INFO" {
		t.Errorf("Expected level='INFO', got %v", logEntry["level"])
	}
}

// TestInitWithWriter_TextFormat tests that any other format falls back to text output
func TestInitWithWriter_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "info", "text")

	Info(context.Background(), "hello", "brand", "maruti")

	out := buf.String()
	if !strings.Contains(out, "msg=hello") {
		t.Errorf("Expected text output to contain msg=hello, got %q", out)
	}
	if !strings.Contains(out, "brand=maruti") {
		t.Errorf("Expected text output to contain brand=maruti, got %q", out)
	}
}

func TestInitWithWriter_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter(&buf, "warn", "json")

	Info(context.Background(), "dropped")
	if buf.Len() != 0 {
		t.Fatalf("Expected info message to be filtered at warn level, got %q", buf.String())
	}

	Warn(context.Background(), "kept")
	if buf.Len() == 0 {
		t.Fatal("Expected warn message to be logged at warn level")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"", slog.LevelInfo},
		{"nonsense", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// TestCorrelationIDPropagation tests that correlation_id is propagated through context
func TestCorrelationIDPropagation(t *testing.T) {
	buf := captureJSON(t, slog.LevelInfo)

	ctx := context.WithValue(context.Background(), CorrelationIDKey, "test-correlation-id")
	Info(ctx, "test message with correlation")

	logEntry := decodeEntry(t, buf)
	if logEntry["correlation_id"] != "test-correlation-id" {
		t.Errorf("Expected correlation_id='test-correlation-id', got %v", logEntry["correlation_id"])
	}
}

// TestRequestIDPropagation tests that request_id is propagated through context
func TestRequestIDPropagation(t *testing.T) {
	buf := captureJSON(t, slog.LevelInfo)

	ctx := context.WithValue(context.Background(), RequestIDKey, "req-42")
	Info(ctx, "test message with request_id")

	logEntry := decodeEntry(t, buf)
	if logEntry["request_id"] != "req-42" {
		t.Errorf("Expected request_id='req-42', got %v", logEntry["request_id"])
	}
	if _, ok := logEntry["correlation_id"]; ok {
		t.Error("Expected no correlation_id when none is set on the context")
	}
}

// TestStateTransitionLogging tests that state transitions are logged correctly
func TestStateTransitionLogging(t *testing.T) {
	buf := captureJSON(t, slog.LevelDebug)

	ctx := context.WithValue(context.Background(), CorrelationIDKey, "view-1")
	LogStateTransition(ctx, "IDLE", "VALIDATING")

	logEntry := decodeEntry(t, buf)
	if logEntry["msg"] != "Submission state transition" {
		t.Errorf("Expected msg='Submission state transition', got %v", logEntry["msg"])
	}
	if logEntry["old_state"] != "IDLE" {
		t.Errorf("Expected old_state='IDLE', got %v", logEntry["old_state"])
	}
	if logEntry["new_state"] != "VALIDATING" {
		t.Errorf("Expected new_state='VALIDATING', got %v", logEntry["new_state"])
	}
	if logEntry["correlation_id"] != "view-1" {
		t.Errorf("Expected correlation_id='view-1', got %v", logEntry["correlation_id"])
	}
	if _, ok := logEntry["timestamp"]; !ok {
		t.Error("Expected 'timestamp' field in state transition log")
	}
}

// TestSlowOperationLogging tests that slow operations are logged
func TestSlowOperationLogging(t *testing.T) {
	buf := captureJSON(t, slog.LevelInfo)
	ctx := context.Background()

	LogSlowOperation(ctx, "predict_car_price", 1500*time.Millisecond)
	if buf.Len() == 0 {
		t.Fatal("Expected slow operation to be logged")
	}

	logEntry := decodeEntry(t, buf)
	if logEntry["msg"] != "Slow operation detected" {
		t.Errorf("Expected msg='Slow operation detected', got %v", logEntry["msg"])
	}
	if logEntry["operation"] != "predict_car_price" {
		t.Errorf("Expected operation='predict_car_price', got %v", logEntry["operation"])
	}
	if logEntry["duration_ms"] != float64(1500) {
		t.Errorf("Expected duration_ms=1500, got %v", logEntry["duration_ms"])
	}
	if logEntry["level"] != "WARN" {
		t.Errorf("Expected level='WARN', got %v", logEntry["level"])
	}

	buf.Reset()
	LogSlowOperation(ctx, "fast_operation", 500*time.Millisecond)
	if buf.Len() > 0 {
		t.Error("Expected fast operation not to be logged")
	}
}

// TestErrorLogging tests that errors are logged with error details
func TestErrorLogging(t *testing.T) {
	buf := captureJSON(t, slog.LevelInfo)

	testErr := &testError{msg: "test error message"}
	LogError(context.Background(), "Operation failed", testErr, "additional_key", "additional_value")

	logEntry := decodeEntry(t, buf)
	if logEntry["msg"] != "Operation failed" {
		t.Errorf("Expected msg='Operation failed', got %v", logEntry["msg"])
	}
	if logEntry["error"] != "test error message" {
		t.Errorf("Expected error='test error message', got %v", logEntry["error"])
	}
	if logEntry["additional_key"] != "additional_value" {
		t.Errorf("Expected additional_key='additional_value', got %v", logEntry["additional_key"])
	}
	if logEntry["level"] != "ERROR" {
		t.Errorf("Expected level='ERROR', got %v", logEntry["level"])
	}
}

// testError is a simple error type for testing
type testError struct {
	msg string
}

func (e *testError) Error() string {
	return e.msg
}
