package logger

import (
	"errors"
	"testing"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	level   string
	module  string
	message string
	details map[string]interface{}
}

type captureLogger struct {
	entries []captured
}

func (c *captureLogger) add(level, module, message string, details map[string]interface{}) {
	c.entries = append(c.entries, captured{level, module, message, details})
}
func (c *captureLogger) Debug(m, msg string, d map[string]interface{}) { c.add("debug", m, msg, d) }
func (c *captureLogger) Info(m, msg string, d map[string]interface{})  { c.add("info", m, msg, d) }
func (c *captureLogger) Warn(m, msg string, d map[string]interface{})  { c.add("warn", m, msg, d) }
func (c *captureLogger) Error(m, msg string, d map[string]interface{}) { c.add("error", m, msg, d) }
func (c *captureLogger) Sync() error                                    { return nil }

func TestWatermillAdapter(t *testing.T) {
	base := &captureLogger{}
	adapter := NewWatermillAdapter(base).With(watermill.LogFields{"topic": "session_events"})

	adapter.Info("subscribed", watermill.LogFields{"subscriber": 1})
	adapter.Error("publish failed", errors.New("closed"), nil)
	adapter.Trace("noise", nil)

	require.Len(t, base.entries, 2)
	assert.Equal(t, "Watermill", base.entries[0].module)
	assert.Equal(t, "session_events", base.entries[0].details["topic"])
	assert.Equal(t, 1, base.entries[0].details["subscriber"])
	assert.Equal(t, "error", base.entries[1].level)
	assert.Equal(t, "closed", base.entries[1].details["error"])
}
