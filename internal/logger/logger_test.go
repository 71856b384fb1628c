package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T, lvl slog.Level) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log
	log = New(NewJSONHandler(&buf, &slog.HandlerOptions{Level: lvl}))
	t.Cleanup(func() { log = prev })
	return &buf
}

func lastEntry(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(lines[len(lines)-1], &entry))
	return entry
}

func TestInit(t *testing.T) {
	Init()
	assert.NotNil(t, Get())
	assert.Same(t, Get(), slog.Default())
}

func TestLevelFunctions(t *testing.T) {
	tests := []struct {
		name  string
		log   func()
		level string
		msg   string
	}{
		{"info", func() { Info("payment created", "payment_id", 3) }, "INFO", "payment created"},
		{"warn", func() { Warn("payout notice dropped", "user_id", 4) }, "WARN", "payout notice dropped"},
		{"error", func() { Error("settlement failed", "reason", "missing_iban") }, "ERROR", "settlement failed"},
		{"debug", func() { Debug("locking trainings", "count", 2) }, "DEBUG", "locking trainings"},
		{"infof", func() { Infof("Server starting on port %s", "8080") }, "INFO", "Server starting on port 8080"},
		{"errorf", func() { Errorf("migration %d failed", 2) }, "ERROR", "migration 2 failed"},
		{"debugf", func() { Debugf("queue length %d", 5) }, "DEBUG", "queue length 5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := capture(t, slog.LevelDebug)
			tt.log()

			entry := lastEntry(t, buf)
			assert.Equal(t, tt.level, entry["level"])
			assert.Equal(t, tt.msg, entry["msg"])
		})
	}
}

func TestKeyValueArgs(t *testing.T) {
	buf := capture(t, slog.LevelInfo)

	Info("training transitioned", "training_id", 12, "from", "NEW", "to", "APPROVED")

	entry := lastEntry(t, buf)
	assert.Equal(t, float64(12), entry["training_id"])
	assert.Equal(t, "NEW", entry["from"])
	assert.Equal(t, "APPROVED", entry["to"])
}

func TestWithError(t *testing.T) {
	buf := capture(t, slog.LevelInfo)

	WithError(assert.AnError).Warn("notification requeued")

	entry := lastEntry(t, buf)
	assert.Equal(t, "notification requeued", entry["msg"])
	assert.Equal(t, assert.AnError.Error(), entry["error"])
}

func TestWithFields(t *testing.T) {
	buf := capture(t, slog.LevelInfo)

	WithFields(map[string]interface{}{"payment_id": 9, "trainers": 2}).Info("payout queued")

	entry := lastEntry(t, buf)
	assert.Equal(t, float64(9), entry["payment_id"])
	assert.Equal(t, float64(2), entry["trainers"])
}

func TestSetLevel(t *testing.T) {
	var buf bytes.Buffer
	prev := log
	log = New(NewJSONHandler(&buf, &slog.HandlerOptions{Level: level}))
	t.Cleanup(func() {
		log = prev
		SetLevel("info")
	})

	SetLevel("error")
	Info("hidden settlement message")
	assert.NotContains(t, buf.String(), "hidden settlement message")

	SetLevel("WARNING")
	Warn("visible warning")
	assert.Contains(t, buf.String(), "visible warning")

	SetLevel("debug")
	Debug("visible payment debug", "payment_id", 7)
	assert.Contains(t, buf.String(), "visible payment debug")
	assert.Contains(t, buf.String(), "payment_id")

	SetLevel("nonsense")
	Debug("hidden again")
	assert.NotContains(t, buf.String(), "hidden again")
}
