package model

import "time"

// MaxMetricPoints bounds the rolling metrics series held in SystemConfig.
const MaxMetricPoints = 1440

// SystemConfig is the singleton holding the active AI model selector and a
// rolling metrics series. Only admins mutate it.
type SystemConfig struct {
	ActiveModel string        `json:"active_model"`
	Metrics     []MetricPoint `json:"metrics"`
}

// MetricPoint is one sample of the rolling system metrics series.
type MetricPoint struct {
	At          time.Time `json:"at"`
	ActiveUsers int       `json:"active_users"`
	TestsTaken  int       `json:"tests_taken"`
}

// DefaultSystemConfig returns the seed configuration.
func DefaultSystemConfig() SystemConfig {
	return SystemConfig{
		ActiveModel: "gemini-2.5-flash",
		Metrics:     []MetricPoint{},
	}
}

// AppendMetric adds a sample to the rolling series, evicting the oldest
// samples beyond MaxMetricPoints.
func (c *SystemConfig) AppendMetric(p MetricPoint) {
	c.Metrics = append(c.Metrics, p)
	if len(c.Metrics) > MaxMetricPoints {
		c.Metrics = c.Metrics[len(c.Metrics)-MaxMetricPoints:]
	}
}
