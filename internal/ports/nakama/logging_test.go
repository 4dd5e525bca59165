package nakama

import (
	"fmt"
	"testing"

	"github.com/heroiclabs/nakama-common/runtime"
)

// recordingLogger keeps every formatted line with its level and fields.
type recordingLogger struct {
	lines  *[]string
	fields map[string]interface{}
}

func (l recordingLogger) log(level, format string, v ...interface{}) {
	*l.lines = append(*l.lines, fmt.Sprintf("%s %s %v", level, fmt.Sprintf(format, v...), l.fields))
}

func (l recordingLogger) Debug(format string, v ...interface{}) { l.log("debug", format, v...) }
func (l recordingLogger) Info(format string, v ...interface{})  { l.log("info", format, v...) }
func (l recordingLogger) Warn(format string, v ...interface{})  { l.log("warn", format, v...) }
func (l recordingLogger) Error(format string, v ...interface{}) { l.log("error", format, v...) }
func (l recordingLogger) WithField(key string, v interface{}) runtime.Logger {
	return l.WithFields(map[string]interface{}{key: v})
}
func (l recordingLogger) WithFields(fields map[string]interface{}) runtime.Logger {
	merged := make(map[string]interface{}, len(l.fields)+len(fields))
	for k, v := range l.fields {
		merged[k] = v
	}
	for k, v := range fields {
		merged[k] = v
	}
	return recordingLogger{lines: l.lines, fields: merged}
}
func (l recordingLogger) Fields() map[string]interface{} { return l.fields }

func TestAppLoggerForwardsToRuntime(t *testing.T) {
	var lines []string
	log := newAppLogger(recordingLogger{lines: &lines})

	log.WithField("game_id", "g1").Info("landlord chosen")
	log.Debug("bid placed")
	log.Warn("bot move rejected")

	want := []string{
		"info landlord chosen map[game_id:g1]",
		"debug bid placed map[]",
		"warn bot move rejected map[]",
	}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines: %q", len(lines), lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
