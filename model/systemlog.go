package model

import "time"

// LogLevel is the severity of a system log entry.
type LogLevel string

const (
	LogInfo    LogLevel = "info"
	LogWarning LogLevel = "warning"
	LogError   LogLevel = "error"
)

// SystemLog is one entry of the append-only audit trail. The collection is
// kept newest first and capped at MaxLogEntries.
type SystemLog struct {
	Action    string    `json:"action"`
	Actor     string    `json:"actor,omitempty"`
	Level     LogLevel  `json:"level"`
	Timestamp time.Time `json:"timestamp"`
}
