package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/reelflip/jeeprep-api/database"
	"github.com/reelflip/jeeprep-api/model"
)

// QuestionService manages the global question pool. Reads are open to any
// session; mutation requires the question-management capability, enforced
// here rather than trusted to callers.
type QuestionService struct {
	store *database.Store
}

// NewQuestionService creates a new question service.
func NewQuestionService(store *database.Store) *QuestionService {
	return &QuestionService{store: store}
}

// QuestionInput carries the fields of a new question.
type QuestionInput struct {
	Text         string
	Options      []string
	CorrectIndex int
	Subject      string
	ChapterID    string
	ExamTag      string
}

// List returns the entire global pool, unfiltered by user.
func (s *QuestionService) List(ctx context.Context, sess Session) ([]model.Question, error) {
	if err := sess.require(CapViewCatalog); err != nil {
		return nil, err
	}
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.GlobalQuestions, nil
}

// Create appends a question to the global pool with a generated id.
func (s *QuestionService) Create(ctx context.Context, sess Session, input QuestionInput) (*model.Question, error) {
	if err := sess.require(CapManageQuestions); err != nil {
		return nil, err
	}
	if input.Text == "" || len(input.Options) < 2 ||
		input.CorrectIndex < 0 || input.CorrectIndex >= len(input.Options) {
		return nil, ErrValidation
	}
	question := model.Question{
		ID:           uuid.New().String(),
		Text:         input.Text,
		Options:      input.Options,
		CorrectIndex: input.CorrectIndex,
		Subject:      input.Subject,
		ChapterID:    input.ChapterID,
		ExamTag:      input.ExamTag,
	}
	_, err := s.store.Mutate(ctx, func(doc *model.Document) error {
		doc.GlobalQuestions = append(doc.GlobalQuestions, question)
		doc.AppendLog(fmt.Sprintf("Question added: %s", question.ID), sess.Email, model.LogInfo)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &question, nil
}

// Delete removes a question from the global pool by id.
func (s *QuestionService) Delete(ctx context.Context, sess Session, id string) error {
	if err := sess.require(CapManageQuestions); err != nil {
		return err
	}
	_, err := s.store.Mutate(ctx, func(doc *model.Document) error {
		for i := range doc.GlobalQuestions {
			if doc.GlobalQuestions[i].ID == id {
				doc.GlobalQuestions = append(doc.GlobalQuestions[:i], doc.GlobalQuestions[i+1:]...)
				doc.AppendLog(fmt.Sprintf("Question deleted: %s", id), sess.Email, model.LogWarning)
				return nil
			}
		}
		return ErrNotFound
	})
	return err
}
