package log

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	gserrors "github.com/joshua-benabou/gstools-go/pkg/errors"
)

// TestLoggerInterface tests the Logger interface implementation
func TestLoggerInterface(t *testing.T) {
	testLogger, buffer := NewTestLogger(LevelDebug)

	testLogger.Debug("debug message", "key1", "value1", "number", 42)
	testLogger.Info("info message", "operation", "test")
	testLogger.Warn("warning message", "warning_code", "TEST_WARNING")

	testErr := fmt.Errorf("test error")
	testLogger.Error("error message", testErr, "error_code", "TEST_ERROR")

	output := buffer.String()
	if output == "" {
		t.Fatal("Expected log output, got empty string")
	}

	if !testLogger.ContainsMessage("debug message") {
		t.Error("Debug message not found in output")
	}
	if !testLogger.ContainsMessage("info message") {
		t.Error("Info message not found in output")
	}
	if !testLogger.ContainsMessage("warning message") {
		t.Error("Warning message not found in output")
	}
	if !testLogger.ContainsMessage("error message") {
		t.Error("Error message not found in output")
	}

	if !testLogger.ContainsField("key1", "value1") {
		t.Error("Expected field key1=value1 not found")
	}
	if !testLogger.ContainsField("number", 42.0) { // JSON unmarshaling converts numbers to float64
		t.Error("Expected field number=42 not found")
	}
}

// TestLoggerWith tests the With method for context-aware logging
func TestLoggerWith(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelDebug)

	contextLogger := testLogger.With(
		FamilyKey, "Gaussian",
		ComponentKey, "field.randmeth",
		SeedKey, 19031977,
	)

	contextLogger.Info("contextual message", OperationKey, OperationUpdate)

	if !testLogger.ContainsField(FamilyKey, "Gaussian") {
		t.Error("Family context not found")
	}
	if !testLogger.ContainsField(ComponentKey, "field.randmeth") {
		t.Error("Component context not found")
	}
	if !testLogger.ContainsField(OperationKey, OperationUpdate) {
		t.Error("Operation field not found")
	}
}

// TestLoggerEnabled tests the Enabled method
func TestLoggerEnabled(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)
	ctx := context.Background()

	if !testLogger.Enabled(ctx, LevelInfo) {
		t.Error("Logger should be enabled for Info level")
	}
	if !testLogger.Enabled(ctx, LevelError) {
		t.Error("Logger should be enabled for Error level")
	}
	if testLogger.Enabled(ctx, LevelDebug) {
		t.Error("Logger should not be enabled for Debug level")
	}

	testLogger.Debug("this should not appear")
	testLogger.Info("this should appear")

	if testLogger.ContainsMessage("this should not appear") {
		t.Error("Debug message should not appear when level is Info")
	}
	if !testLogger.ContainsMessage("this should appear") {
		t.Error("Info message should appear when level is Info")
	}
}

// TestDomainAttributeKeys tests the geostatistical attribute keys
func TestDomainAttributeKeys(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)

	testLogger.Info("generator reseeded",
		OperationKey, OperationUpdate,
		GeneratorKey, "RandMeth",
		ModeCountKey, 1000,
		SeedKey, 20170519,
		SamplingKey, "inversion",
		DurationMsKey, 250,
	)

	entries, err := testLogger.GetLogEntries()
	if err != nil {
		t.Fatalf("Failed to parse log entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 log entry, got %d", len(entries))
	}

	entry := entries[0]

	expectedFields := map[string]interface{}{
		OperationKey:  OperationUpdate,
		GeneratorKey:  "RandMeth",
		ModeCountKey:  1000.0, // JSON numbers are float64
		SeedKey:       20170519.0,
		SamplingKey:   "inversion",
		DurationMsKey: 250.0,
	}

	for key, expectedValue := range expectedFields {
		if actualValue, exists := entry[key]; !exists {
			t.Errorf("Expected field %s not found", key)
		} else if actualValue != expectedValue {
			t.Errorf("Field %s: expected %v, got %v", key, expectedValue, actualValue)
		}
	}
}

// TestLoggerProviderIntegration tests the LoggerProvider interface
func TestLoggerProviderIntegration(t *testing.T) {
	provider, buffer := NewTestLoggerProvider(LevelDebug)

	logger := provider.GetLogger()
	logger.Info("provider test message")

	namedLogger := provider.GetLoggerWithName("covmodel.scale")
	namedLogger.Info("named logger message")

	if buffer.String() == "" {
		t.Fatal("Expected log output from provider")
	}

	lines := buffer.String()
	if !strings.Contains(lines, "provider test message") {
		t.Error("Provider test message not found")
	}
	if !strings.Contains(lines, "named logger message") {
		t.Error("Named logger message not found")
	}
	if !strings.Contains(lines, "covmodel.scale") {
		t.Error("Component name not found in named logger output")
	}
}

// TestSetLoggerProvider tests swapping the package-level provider
func TestSetLoggerProvider(t *testing.T) {
	provider, buffer := NewTestLoggerProvider(LevelDebug)
	SetLoggerProvider(provider)
	defer SetLoggerProvider(&slogProvider{})

	GetLoggerWithName("test.swap").Debug("captured by provider")

	if !strings.Contains(buffer.String(), "captured by provider") {
		t.Error("Expected message to route through the swapped provider")
	}
	if !strings.Contains(buffer.String(), "test.swap") {
		t.Error("Expected component name in captured output")
	}
}

// TestPerformanceAttributesLogging tests performance-related logging
func TestPerformanceAttributesLogging(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)

	startTime := time.Now()
	time.Sleep(10 * time.Millisecond)
	duration := time.Since(startTime)

	testLogger.Info("mode sampling completed",
		OperationKey, OperationSample,
		DurationMsKey, duration.Milliseconds(),
		ModeCountKey, 5000,
		IterationKey, 100,
	)

	if !testLogger.ContainsField(DurationMsKey, float64(duration.Milliseconds())) {
		t.Error("Duration not logged correctly")
	}
	if !testLogger.ContainsField(ModeCountKey, 5000.0) {
		t.Error("Mode count not logged correctly")
	}
}

// TestErrorLoggingIntegration tests error logging integration
func TestErrorLoggingIntegration(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelError)

	testErr := fmt.Errorf("integral scale could not be matched")

	testLogger.Error("scale fit failed",
		"error", testErr,
		OperationKey, OperationFit,
		ErrorCodeKey, ErrorNumerical,
		SuggestionKey, "check the rescale factor",
	)

	entries, err := testLogger.GetLogEntries()
	if err != nil {
		t.Fatalf("Failed to parse log entries: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Expected 1 error entry, got %d", len(entries))
	}

	if entries[0]["level"] != "ERROR" {
		t.Error("Expected ERROR level")
	}
	if !testLogger.ContainsField(ErrorCodeKey, ErrorNumerical) {
		t.Error("Error code not found")
	}
	if !testLogger.ContainsField(SuggestionKey, "check the rescale factor") {
		t.Error("Error suggestion not found")
	}
}

// TestZerologWarningBridge tests routing library warnings through zerolog
func TestZerologWarningBridge(t *testing.T) {
	var buf bytes.Buffer
	EnableZerologWarnings(&buf)
	defer gserrors.SetZerologWarnFunc(nil)

	gserrors.Warn(gserrors.NewAttributeWarning("Stable", "beta", "unknown name"))

	out := buf.String()
	if !strings.Contains(out, "AttributeWarning") {
		t.Errorf("expected structured warning type in output, got %q", out)
	}
	if !strings.Contains(out, "beta") {
		t.Errorf("expected attribute name in output, got %q", out)
	}
	if !strings.Contains(out, `"level":"warn"`) {
		t.Errorf("expected warn level in output, got %q", out)
	}
}

// TestConcurrentLogging tests thread safety of logging
func TestConcurrentLogging(t *testing.T) {
	testLogger, _ := NewTestLogger(LevelInfo)

	numGoroutines := 3
	messagesPerGoroutine := 3

	done := make(chan bool, numGoroutines)

	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer func() { done <- true }()

			for j := 0; j < messagesPerGoroutine; j++ {
				testLogger.Info(fmt.Sprintf("goroutine %d message %d", id, j),
					"goroutine_id", id,
					"message_id", j,
				)
			}
		}(i)
	}

	for i := 0; i < numGoroutines; i++ {
		<-done
	}

	entries, err := testLogger.GetLogEntries()
	if err != nil {
		t.Fatalf("Failed to parse log entries: %v", err)
	}

	expectedEntries := numGoroutines * messagesPerGoroutine
	if len(entries) < expectedEntries-2 {
		t.Errorf("Expected around %d log entries, got %d", expectedEntries, len(entries))
	}
}

// BenchmarkLogging benchmarks logging performance
func BenchmarkLogging(b *testing.B) {
	testLogger, _ := NewTestLogger(LevelInfo)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		testLogger.Info("benchmark message",
			"iteration", i,
			OperationKey, OperationGenerate,
			PointsKey, 1000,
		)
	}
}
