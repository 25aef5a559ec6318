package database

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/reelflip/jeeprep-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(NewMemoryKV())
}

func TestLoadSeedsFreshBackend(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc, err := store.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, model.SchemaVersion, doc.Version)
	assert.Len(t, doc.Users, 2)
	assert.NotNil(t, doc.UserByEmail(SeedAdminEmail))
	assert.NotNil(t, doc.UserByEmail(SeedStudentEmail))
	assert.Len(t, doc.GlobalChapters, 12)
	assert.NotEmpty(t, doc.GlobalQuestions)
	assert.Len(t, doc.MasterMocks, 1)

	// The seeded student already has the catalog cloned
	assert.Len(t, doc.UserChapters, len(doc.GlobalChapters))
	for _, ch := range doc.UserChapters {
		assert.Equal(t, SeedStudentID, ch.UserID)
		assert.Equal(t, 0, ch.Confidence)
	}

	// The seed is persisted, not just returned
	again, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, doc.Users, again.Users)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	doc, err := store.Load(ctx)
	require.NoError(t, err)

	doc.AppendLog("round trip", "test", model.LogInfo)
	doc.Users[0].Name = "Renamed Admin"
	require.NoError(t, store.Save(ctx, doc))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Renamed Admin", got.Users[0].Name)
	require.NotEmpty(t, got.Logs)
	assert.Equal(t, "round trip", got.Logs[0].Action)
}

func TestLoadMigratesStaleDocument(t *testing.T) {
	kv := NewMemoryKV()
	store := NewStore(kv)
	ctx := context.Background()

	// A document written by an older deployment: stale version tag, missing
	// collections and no system config.
	stale := map[string]any{
		"version": "1.0",
		"users": []model.User{
			{ID: "u-old", Email: "old@example.com", Role: model.RoleStudent, Status: model.StatusActive},
		},
	}
	data, err := json.Marshal(stale)
	require.NoError(t, err)
	require.NoError(t, kv.Set(ctx, StorageKey, data))

	doc, err := store.Load(ctx)
	require.NoError(t, err)

	assert.Equal(t, model.SchemaVersion, doc.Version)
	// Populated fields survive
	require.Len(t, doc.Users, 1)
	assert.Equal(t, "old@example.com", doc.Users[0].Email)
	// Missing fields are backfilled with defaults, not reseeded
	assert.NotNil(t, doc.GlobalChapters)
	assert.Empty(t, doc.GlobalChapters)
	assert.NotNil(t, doc.Tests)
	assert.Equal(t, model.DefaultSystemConfig().ActiveModel, doc.SystemConfig.ActiveModel)

	// Migration is persisted
	raw, ok, err := kv.Get(ctx, StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	var stored model.Document
	require.NoError(t, json.Unmarshal(raw, &stored))
	assert.Equal(t, model.SchemaVersion, stored.Version)
}

func TestMutateDiscardsOnError(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, err := store.Load(ctx)
	require.NoError(t, err)

	boom := errors.New("boom")
	_, err = store.Mutate(ctx, func(doc *model.Document) error {
		doc.Users = nil
		return boom
	})
	require.ErrorIs(t, err, boom)

	doc, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, doc.Users, 2, "failed mutation must not be persisted")
}

func TestFileKVRoundTrip(t *testing.T) {
	kv, err := NewFileKV(t.TempDir())
	require.NoError(t, err)
	defer kv.Close()
	ctx := context.Background()

	_, ok, err := kv.Get(ctx, StorageKey)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, kv.Set(ctx, StorageKey, []byte(`{"version":"2.1"}`)))

	data, ok, err := kv.Get(ctx, StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	assert.JSONEq(t, `{"version":"2.1"}`, string(data))
}
