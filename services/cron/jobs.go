package cron

import (
	"context"
	"encoding/json"
	"log"
	"time"

	"github.com/reelflip/jeeprep-api/model"
)

// SampleMetrics appends one point to the rolling metrics series: active user
// count and tests taken so far. The server-side counterpart of the dashboard's
// per-minute tick.
func (m *Manager) SampleMetrics() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := m.store.Mutate(ctx, func(doc *model.Document) error {
		active := 0
		for _, u := range doc.Users {
			if !u.IsBlocked() {
				active++
			}
		}
		doc.SystemConfig.AppendMetric(model.MetricPoint{
			At:          time.Now().UTC(),
			ActiveUsers: active,
			TestsTaken:  len(doc.Tests),
		})
		return nil
	})
	if err != nil {
		log.Println("[CRON] metrics sample failed:", err)
	}
}

// SnapshotBackup uploads the serialized document to the configured bucket.
func (m *Manager) SnapshotBackup() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	doc, err := m.store.Load(ctx)
	if err != nil {
		log.Println("[CRON] snapshot load failed:", err)
		return
	}
	data, err := json.Marshal(doc)
	if err != nil {
		log.Println("[CRON] snapshot encode failed:", err)
		return
	}

	key, err := m.uploader.UploadSnapshot(ctx, data)
	if err != nil {
		log.Println("[CRON] snapshot upload failed:", err)
		return
	}
	log.Println("[CRON] snapshot uploaded:", key)
}
