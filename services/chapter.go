package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/reelflip/jeeprep-api/database"
	"github.com/reelflip/jeeprep-api/model"
)

// ChapterService serves the global template catalog to admins and per-user
// chapter instances to students. The session's role decides which collection
// an operation addresses; a miss in the session's own collection is an
// explicit ErrNotFound, never a silent no-op.
type ChapterService struct {
	store *database.Store
}

// NewChapterService creates a new chapter service.
func NewChapterService(store *database.Store) *ChapterService {
	return &ChapterService{store: store}
}

// ChapterInput carries the fields of a new chapter.
type ChapterInput struct {
	Name        string
	Subject     string
	Description string
	Notes       string
	VideoLinks  []string
}

// ChapterUpdate names exactly the fields an update may change. Nil fields are
// left untouched.
type ChapterUpdate struct {
	Name        *string
	Subject     *string
	Description *string
	Notes       *string
	VideoLinks  []string
	Status      *model.ChapterStatus
}

// List returns the global catalog for admins and the session user's own
// instances for students. One student never sees another's chapters.
func (s *ChapterService) List(ctx context.Context, sess Session) ([]model.Chapter, error) {
	if err := sess.require(CapViewCatalog); err != nil {
		return nil, err
	}
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	if sess.IsAdmin() {
		return doc.GlobalChapters, nil
	}
	own := []model.Chapter{}
	for _, ch := range doc.UserChapters {
		if ch.UserID == sess.UserID {
			own = append(own, ch)
		}
	}
	return own, nil
}

// Create adds a chapter to the global catalog (admin) or to the session
// user's personal list (student), with a generated id.
func (s *ChapterService) Create(ctx context.Context, sess Session, input ChapterInput) (*model.Chapter, error) {
	if err := sess.require(CapViewCatalog); err != nil {
		return nil, err
	}
	chapter := model.Chapter{
		ID:          uuid.New().String(),
		Name:        input.Name,
		Subject:     input.Subject,
		Description: input.Description,
		Notes:       input.Notes,
		VideoLinks:  input.VideoLinks,
		Questions:   []model.Question{},
		Status:      model.ChapterNotStarted,
	}
	if chapter.VideoLinks == nil {
		chapter.VideoLinks = []string{}
	}

	_, err := s.store.Mutate(ctx, func(doc *model.Document) error {
		if sess.IsAdmin() {
			doc.GlobalChapters = append(doc.GlobalChapters, chapter)
			doc.AppendLog(fmt.Sprintf("Chapter template added: %s", chapter.Name), sess.Email, model.LogInfo)
			return nil
		}
		chapter.UserID = sess.UserID
		doc.UserChapters = append(doc.UserChapters, chapter)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

// Update merges a typed update command into the chapter in the session's own
// collection: the global catalog for admins, the user's instances otherwise.
func (s *ChapterService) Update(ctx context.Context, sess Session, id string, update ChapterUpdate) (*model.Chapter, error) {
	if err := sess.require(CapViewCatalog); err != nil {
		return nil, err
	}
	var updated model.Chapter
	_, err := s.store.Mutate(ctx, func(doc *model.Document) error {
		chapter := s.findFor(doc, sess, id)
		if chapter == nil {
			return ErrNotFound
		}
		applyChapterUpdate(chapter, update)
		updated = *chapter
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// RecordQuizResult appends to the chapter's attempt history and raises its
// confidence score, clamped to [0,100].
func (s *ChapterService) RecordQuizResult(ctx context.Context, sess Session, chapterID string, score, total int) (*model.Chapter, error) {
	if err := sess.require(CapTrackProgress); err != nil {
		return nil, err
	}
	if total <= 0 || score < 0 || score > total {
		return nil, ErrValidation
	}
	var updated model.Chapter
	_, err := s.store.Mutate(ctx, func(doc *model.Document) error {
		chapter := findOwnChapter(doc, sess.UserID, chapterID)
		if chapter == nil {
			return ErrNotFound
		}
		chapter.RecordAttempt(score, total, time.Now().UTC())
		updated = *chapter
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// AddStudyTime bumps the monotonically increasing time-spent counter.
func (s *ChapterService) AddStudyTime(ctx context.Context, sess Session, chapterID string, minutes int) (*model.Chapter, error) {
	if err := sess.require(CapTrackProgress); err != nil {
		return nil, err
	}
	if minutes <= 0 {
		return nil, ErrValidation
	}
	return s.mutateOwn(ctx, sess, chapterID, func(ch *model.Chapter) {
		ch.TimeSpentMin += minutes
	})
}

// AddVideoWatched bumps the monotonically increasing videos-watched counter.
func (s *ChapterService) AddVideoWatched(ctx context.Context, sess Session, chapterID string) (*model.Chapter, error) {
	if err := sess.require(CapTrackProgress); err != nil {
		return nil, err
	}
	return s.mutateOwn(ctx, sess, chapterID, func(ch *model.Chapter) {
		ch.VideosWatched++
	})
}

func (s *ChapterService) mutateOwn(ctx context.Context, sess Session, chapterID string, fn func(*model.Chapter)) (*model.Chapter, error) {
	var updated model.Chapter
	_, err := s.store.Mutate(ctx, func(doc *model.Document) error {
		chapter := findOwnChapter(doc, sess.UserID, chapterID)
		if chapter == nil {
			return ErrNotFound
		}
		fn(chapter)
		updated = *chapter
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *ChapterService) findFor(doc *model.Document, sess Session, id string) *model.Chapter {
	if sess.IsAdmin() {
		for i := range doc.GlobalChapters {
			if doc.GlobalChapters[i].ID == id {
				return &doc.GlobalChapters[i]
			}
		}
		return nil
	}
	return findOwnChapter(doc, sess.UserID, id)
}

func findOwnChapter(doc *model.Document, userID, id string) *model.Chapter {
	for i := range doc.UserChapters {
		if doc.UserChapters[i].ID == id && doc.UserChapters[i].UserID == userID {
			return &doc.UserChapters[i]
		}
	}
	return nil
}

func applyChapterUpdate(chapter *model.Chapter, update ChapterUpdate) {
	if update.Name != nil {
		chapter.Name = *update.Name
	}
	if update.Subject != nil {
		chapter.Subject = *update.Subject
	}
	if update.Description != nil {
		chapter.Description = *update.Description
	}
	if update.Notes != nil {
		chapter.Notes = *update.Notes
	}
	if update.VideoLinks != nil {
		chapter.VideoLinks = update.VideoLinks
	}
	if update.Status != nil {
		chapter.Status = *update.Status
	}
}
