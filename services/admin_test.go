package services

import (
	"context"
	"testing"

	"github.com/reelflip/jeeprep-api/database"
	"github.com/reelflip/jeeprep-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminEndpointsRequireAdmin(t *testing.T) {
	store := newTestStore(t)
	svc := NewAdminService(store)
	cfg := NewConfigService(store)
	ctx := context.Background()

	_, err := svc.ListUsers(ctx, studentSession())
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Logs(ctx, studentSession())
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.Stats(ctx, studentSession())
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = cfg.Get(ctx, studentSession())
	assert.ErrorIs(t, err, ErrForbidden)

	err = svc.DeleteUser(ctx, studentSession(), database.SeedAdminID)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestCreateUserClonesCatalogForStudents(t *testing.T) {
	store := newTestStore(t)
	svc := NewAdminService(store)
	ctx := context.Background()

	student, err := svc.CreateUser(ctx, adminSession(), UserInput{
		Name: "Priya", Email: "priya@example.com", Password: "secret1", Role: model.RoleStudent,
	})
	require.NoError(t, err)

	secondAdmin, err := svc.CreateUser(ctx, adminSession(), UserInput{
		Name: "Ops", Email: "ops@jeeprep.in", Password: "secret2", Role: model.RoleAdmin,
	})
	require.NoError(t, err)

	doc, err := store.Load(ctx)
	require.NoError(t, err)

	counts := map[string]int{}
	for _, ch := range doc.UserChapters {
		counts[ch.UserID]++
	}
	assert.Equal(t, len(doc.GlobalChapters), counts[student.ID])
	assert.Zero(t, counts[secondAdmin.ID], "admins get no chapter instances")
}

func TestCreateUserValidatesRoleAndEmail(t *testing.T) {
	svc := NewAdminService(newTestStore(t))
	ctx := context.Background()

	_, err := svc.CreateUser(ctx, adminSession(), UserInput{
		Name: "X", Email: "x@example.com", Password: "p", Role: "superuser",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.CreateUser(ctx, adminSession(), UserInput{
		Name: "X", Email: database.SeedStudentEmail, Password: "p", Role: model.RoleStudent,
	})
	assert.ErrorIs(t, err, ErrDuplicateEmail)
}

func TestUpdateUserStatusChangeIsLogged(t *testing.T) {
	store := newTestStore(t)
	svc := NewAdminService(store)
	ctx := context.Background()

	blocked := model.StatusBlocked
	user, err := svc.UpdateUser(ctx, adminSession(), database.SeedStudentID, UserUpdate{Status: &blocked})
	require.NoError(t, err)
	assert.Equal(t, model.StatusBlocked, user.Status)

	doc, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, doc.Logs)
	assert.Contains(t, doc.Logs[0].Action, database.SeedStudentEmail)
	assert.Equal(t, model.LogWarning, doc.Logs[0].Level)
}

func TestUpdateUserRejectsTakenEmail(t *testing.T) {
	svc := NewAdminService(newTestStore(t))
	ctx := context.Background()

	taken := database.SeedAdminEmail
	_, err := svc.UpdateUser(ctx, adminSession(), database.SeedStudentID, UserUpdate{Email: &taken})
	assert.ErrorIs(t, err, ErrDuplicateEmail)

	// Re-asserting the user's own email is not a conflict
	same := database.SeedStudentEmail
	_, err = svc.UpdateUser(ctx, adminSession(), database.SeedStudentID, UserUpdate{Email: &same})
	assert.NoError(t, err)
}

func TestDeleteUserCascadesButKeepsLogs(t *testing.T) {
	store := newTestStore(t)
	svc := NewAdminService(store)
	tests := NewMockTestService(store)
	ctx := context.Background()

	_, err := tests.Create(ctx, studentSession(), ResultInput{Name: "Allen Test 1", Score: 100, Total: 300})
	require.NoError(t, err)

	before, err := store.Load(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, before.UserChapters)
	require.NotEmpty(t, before.Tests)

	err = svc.DeleteUser(ctx, adminSession(), database.SeedStudentID)
	require.NoError(t, err)

	doc, err := store.Load(ctx)
	require.NoError(t, err)

	assert.Nil(t, doc.UserByID(database.SeedStudentID))
	for _, ch := range doc.UserChapters {
		assert.NotEqual(t, database.SeedStudentID, ch.UserID)
	}
	for _, r := range doc.Tests {
		assert.NotEqual(t, database.SeedStudentID, r.UserID)
	}
	// The audit trail survives the deletion of its subject
	require.NotEmpty(t, doc.Logs)
	assert.Contains(t, doc.Logs[0].Action, database.SeedStudentEmail)

	err = svc.DeleteUser(ctx, adminSession(), database.SeedStudentID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestStatsAreComputedOnDemand(t *testing.T) {
	store := newTestStore(t)
	svc := NewAdminService(store)
	tests := NewMockTestService(store)
	ctx := context.Background()

	stats, err := svc.Stats(ctx, adminSession())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Students)
	assert.Equal(t, 5, stats.Questions)
	assert.Equal(t, 0, stats.TestsTaken)
	assert.Equal(t, 1, stats.MasterMocks)
	assert.Positive(t, stats.StorageBytes)

	_, err = tests.Create(ctx, studentSession(), ResultInput{Name: "Allen Test 1", Score: 100, Total: 300})
	require.NoError(t, err)

	after, err := svc.Stats(ctx, adminSession())
	require.NoError(t, err)
	assert.Equal(t, 1, after.TestsTaken)
	assert.Greater(t, after.StorageBytes, stats.StorageBytes)
}

func TestConfigSetMergesAndLogs(t *testing.T) {
	store := newTestStore(t)
	svc := NewConfigService(store)
	ctx := context.Background()

	cfg, err := svc.Get(ctx, adminSession())
	require.NoError(t, err)
	assert.Equal(t, "gemini-2.5-flash", cfg.ActiveModel)

	next := "gemini-2.5-pro"
	updated, err := svc.Set(ctx, adminSession(), ConfigUpdate{ActiveModel: &next})
	require.NoError(t, err)
	assert.Equal(t, next, updated.ActiveModel)

	doc, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, next, doc.SystemConfig.ActiveModel)
	require.NotEmpty(t, doc.Logs)
	assert.Equal(t, "System config updated", doc.Logs[0].Action)

	// A no-field update still logs the write
	_, err = svc.Set(ctx, adminSession(), ConfigUpdate{})
	require.NoError(t, err)
	doc, err = store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, next, doc.SystemConfig.ActiveModel, "unset fields are left untouched")
}
