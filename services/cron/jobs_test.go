package cron

import (
	"context"
	"testing"

	"github.com/reelflip/jeeprep-api/database"
	"github.com/reelflip/jeeprep-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSampleMetricsAppendsPoint(t *testing.T) {
	store := database.NewStore(database.NewMemoryKV())
	manager := NewManager(store, nil)
	ctx := context.Background()

	manager.SampleMetrics()

	doc, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, doc.SystemConfig.Metrics, 1)
	point := doc.SystemConfig.Metrics[0]
	assert.Equal(t, 2, point.ActiveUsers, "both seed users are active")
	assert.Equal(t, 0, point.TestsTaken)
	assert.False(t, point.At.IsZero())
}

func TestSampleMetricsSkipsBlockedUsers(t *testing.T) {
	store := database.NewStore(database.NewMemoryKV())
	manager := NewManager(store, nil)
	ctx := context.Background()

	_, err := store.Mutate(ctx, func(doc *model.Document) error {
		doc.UserByID(database.SeedStudentID).Status = model.StatusBlocked
		return nil
	})
	require.NoError(t, err)

	manager.SampleMetrics()

	doc, err := store.Load(ctx)
	require.NoError(t, err)
	require.Len(t, doc.SystemConfig.Metrics, 1)
	assert.Equal(t, 1, doc.SystemConfig.Metrics[0].ActiveUsers)
}
