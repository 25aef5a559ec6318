package services

import (
	"context"
	"testing"

	"github.com/reelflip/jeeprep-api/database"
	"github.com/reelflip/jeeprep-api/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedInstanceID is the seed student's instance of the kinematics template.
var seedInstanceID = model.InstanceID(database.SeedStudentID, "ch-phy-kinematics")

func TestChapterListIsRoleScoped(t *testing.T) {
	svc := NewChapterService(newTestStore(t))
	ctx := context.Background()

	adminView, err := svc.List(ctx, adminSession())
	require.NoError(t, err)
	for _, ch := range adminView {
		assert.Empty(t, ch.UserID, "admins see catalog templates only")
	}

	studentView, err := svc.List(ctx, studentSession())
	require.NoError(t, err)
	require.Len(t, studentView, len(adminView))
	for _, ch := range studentView {
		assert.Equal(t, database.SeedStudentID, ch.UserID)
	}
}

func TestChapterListExcludesOtherStudents(t *testing.T) {
	store := newTestStore(t)
	svc := NewChapterService(store)
	auth := NewAuthService(store)
	ctx := context.Background()

	other, err := auth.Register(ctx, "Priya", "priya@example.com", "secret1", "")
	require.NoError(t, err)

	view, err := svc.List(ctx, studentSession())
	require.NoError(t, err)
	for _, ch := range view {
		assert.NotEqual(t, other.ID, ch.UserID)
	}
}

func TestChapterUpdateMergesTypedFields(t *testing.T) {
	svc := NewChapterService(newTestStore(t))
	ctx := context.Background()

	notes := "Focus on relative velocity problems."
	status := model.ChapterInProgress
	updated, err := svc.Update(ctx, studentSession(), seedInstanceID, ChapterUpdate{
		Notes:  &notes,
		Status: &status,
	})
	require.NoError(t, err)

	assert.Equal(t, notes, updated.Notes)
	assert.Equal(t, status, updated.Status)
	// Untouched fields survive the merge
	assert.Equal(t, "Kinematics", updated.Name)
	assert.Equal(t, "Physics", updated.Subject)
}

func TestChapterUpdateMissIsNotFound(t *testing.T) {
	svc := NewChapterService(newTestStore(t))
	ctx := context.Background()
	name := "renamed"

	// Unknown id
	_, err := svc.Update(ctx, studentSession(), "no-such-chapter", ChapterUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)

	// A student addressing a catalog template id misses their own collection
	_, err = svc.Update(ctx, studentSession(), "ch-phy-kinematics", ChapterUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)

	// An admin addressing a student instance misses the catalog
	_, err = svc.Update(ctx, adminSession(), seedInstanceID, ChapterUpdate{Name: &name})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChapterCreateIsRoleScoped(t *testing.T) {
	store := newTestStore(t)
	svc := NewChapterService(store)
	ctx := context.Background()

	tpl, err := svc.Create(ctx, adminSession(), ChapterInput{Name: "Waves", Subject: "Physics"})
	require.NoError(t, err)
	assert.Empty(t, tpl.UserID)

	own, err := svc.Create(ctx, studentSession(), ChapterInput{Name: "My Extra Revision", Subject: "Maths"})
	require.NoError(t, err)
	assert.Equal(t, database.SeedStudentID, own.UserID)

	doc, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Len(t, doc.GlobalChapters, 13)
	assert.Len(t, doc.UserChapters, 13)
}

func TestRecordQuizResultRaisesConfidence(t *testing.T) {
	svc := NewChapterService(newTestStore(t))
	ctx := context.Background()

	updated, err := svc.RecordQuizResult(ctx, studentSession(), seedInstanceID, 10, 10)
	require.NoError(t, err)
	assert.Equal(t, 20, updated.Confidence)
	require.Len(t, updated.Attempts, 1)

	// A bad quiz afterwards never lowers confidence
	updated, err = svc.RecordQuizResult(ctx, studentSession(), seedInstanceID, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 20, updated.Confidence)
	assert.Len(t, updated.Attempts, 2)
}

func TestRecordQuizResultValidatesInput(t *testing.T) {
	svc := NewChapterService(newTestStore(t))
	ctx := context.Background()

	for _, tc := range []struct{ score, total int }{
		{5, 0},
		{-1, 10},
		{11, 10},
	} {
		_, err := svc.RecordQuizResult(ctx, studentSession(), seedInstanceID, tc.score, tc.total)
		assert.ErrorIs(t, err, ErrValidation, "score=%d total=%d", tc.score, tc.total)
	}
}

func TestProgressCountersAreMonotonic(t *testing.T) {
	svc := NewChapterService(newTestStore(t))
	ctx := context.Background()

	ch, err := svc.AddStudyTime(ctx, studentSession(), seedInstanceID, 30)
	require.NoError(t, err)
	assert.Equal(t, 30, ch.TimeSpentMin)

	ch, err = svc.AddStudyTime(ctx, studentSession(), seedInstanceID, 15)
	require.NoError(t, err)
	assert.Equal(t, 45, ch.TimeSpentMin)

	_, err = svc.AddStudyTime(ctx, studentSession(), seedInstanceID, 0)
	assert.ErrorIs(t, err, ErrValidation)

	ch, err = svc.AddVideoWatched(ctx, studentSession(), seedInstanceID)
	require.NoError(t, err)
	assert.Equal(t, 1, ch.VideosWatched)
}

func TestProgressRequiresStudentCapability(t *testing.T) {
	svc := NewChapterService(newTestStore(t))
	ctx := context.Background()

	_, err := svc.RecordQuizResult(ctx, adminSession(), seedInstanceID, 5, 10)
	assert.ErrorIs(t, err, ErrForbidden)

	_, err = svc.AddStudyTime(ctx, adminSession(), seedInstanceID, 10)
	assert.ErrorIs(t, err, ErrForbidden)
}
