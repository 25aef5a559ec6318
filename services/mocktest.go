package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/reelflip/jeeprep-api/database"
	"github.com/reelflip/jeeprep-api/model"
)

// Exam marking scheme: +4 for a correct answer, −1 for a wrong one, 0 for an
// unanswered question.
const (
	MarksCorrect   = 4
	MarksIncorrect = -1
)

// MockTestService manages per-user mock test results and the global list of
// admin-published master mocks.
type MockTestService struct {
	store *database.Store
}

// NewMockTestService creates a new mock test service.
func NewMockTestService(store *database.Store) *MockTestService {
	return &MockTestService{store: store}
}

// ResultInput carries a manually entered offline result.
type ResultInput struct {
	Name          string
	Score         int
	Total         int
	SubjectScores map[string]int
	TimeTakenSec  int
}

// MasterMockInput carries a new master mock definition.
type MasterMockInput struct {
	Name        string
	QuestionIDs []string
	DurationMin int
	TotalMarks  int
}

// ExamScore is the outcome of scoring one exam session.
type ExamScore struct {
	Total      int            `json:"total"`
	MaxMarks   int            `json:"max_marks"`
	BySubject  map[string]int `json:"by_subject"`
	Correct    int            `json:"correct"`
	Incorrect  int            `json:"incorrect"`
	Unanswered int            `json:"unanswered"`
}

// ScoreExam applies the marking scheme to a question set and an answer map
// (question id -> chosen option index; absent means unanswered). Per-subject
// totals sum only that subject's questions; the grand total is their sum.
func ScoreExam(questions []model.Question, answers map[string]int) ExamScore {
	score := ExamScore{BySubject: map[string]int{}}
	for _, q := range questions {
		score.MaxMarks += MarksCorrect
		chosen, answered := answers[q.ID]
		if !answered {
			score.Unanswered++
			continue
		}
		if chosen == q.CorrectIndex {
			score.Correct++
			score.Total += MarksCorrect
			score.BySubject[q.Subject] += MarksCorrect
		} else {
			score.Incorrect++
			score.Total += MarksIncorrect
			score.BySubject[q.Subject] += MarksIncorrect
		}
	}
	return score
}

// List returns only the session user's own results, newest first.
func (s *MockTestService) List(ctx context.Context, sess Session) ([]model.MockTestResult, error) {
	if err := sess.require(CapTakeTests); err != nil {
		return nil, err
	}
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	own := []model.MockTestResult{}
	for _, t := range doc.Tests {
		if t.UserID == sess.UserID {
			own = append(own, t)
		}
	}
	return own, nil
}

// Create records a manually entered offline result, stamped with the session
// user as owner and prepended so the newest result is first.
func (s *MockTestService) Create(ctx context.Context, sess Session, input ResultInput) (*model.MockTestResult, error) {
	if err := sess.require(CapTakeTests); err != nil {
		return nil, err
	}
	if input.Name == "" || input.Total <= 0 {
		return nil, ErrValidation
	}
	result := model.MockTestResult{
		ID:            uuid.New().String(),
		UserID:        sess.UserID,
		Name:          input.Name,
		Source:        model.ResultSourceManual,
		Score:         input.Score,
		Total:         input.Total,
		SubjectScores: input.SubjectScores,
		TimeTakenSec:  input.TimeTakenSec,
		TakenAt:       time.Now().UTC(),
	}
	if err := s.prepend(ctx, result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Submit scores a completed master mock session and persists the result. Time
// taken is wall-clock elapsed since the exam started, captured once here; an
// abandoned session simply never calls Submit and nothing is persisted.
func (s *MockTestService) Submit(ctx context.Context, sess Session, masterID string, answers map[string]int, startedAt time.Time) (*model.MockTestResult, *ExamScore, error) {
	if err := sess.require(CapTakeTests); err != nil {
		return nil, nil, err
	}

	var result model.MockTestResult
	var score ExamScore
	_, err := s.store.Mutate(ctx, func(doc *model.Document) error {
		var master *model.MasterMockTest
		for i := range doc.MasterMocks {
			if doc.MasterMocks[i].ID == masterID {
				master = &doc.MasterMocks[i]
				break
			}
		}
		if master == nil {
			return ErrNotFound
		}

		questions := make([]model.Question, 0, len(master.QuestionIDs))
		for _, qid := range master.QuestionIDs {
			if q := doc.QuestionByID(qid); q != nil {
				questions = append(questions, *q)
			}
		}

		score = ScoreExam(questions, answers)
		now := time.Now().UTC()
		elapsed := int(now.Sub(startedAt).Seconds())
		if elapsed < 0 {
			elapsed = 0
		}

		result = model.MockTestResult{
			ID:            uuid.New().String(),
			UserID:        sess.UserID,
			Name:          master.Name,
			Source:        model.ResultSourceExam,
			Score:         score.Total,
			Total:         score.MaxMarks,
			SubjectScores: score.BySubject,
			TimeTakenSec:  elapsed,
			TakenAt:       now,
		}
		doc.Tests = append([]model.MockTestResult{result}, doc.Tests...)
		doc.AppendLog(fmt.Sprintf("Mock test submitted: %s", master.Name), sess.Email, model.LogInfo)
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return &result, &score, nil
}

// Delete removes a result by id. Students may delete only their own results;
// admins may delete any.
func (s *MockTestService) Delete(ctx context.Context, sess Session, id string) error {
	if err := sess.require(CapTakeTests); err != nil {
		return err
	}
	_, err := s.store.Mutate(ctx, func(doc *model.Document) error {
		for i := range doc.Tests {
			if doc.Tests[i].ID != id {
				continue
			}
			if doc.Tests[i].UserID != sess.UserID && !sess.IsAdmin() {
				return ErrForbidden
			}
			doc.Tests = append(doc.Tests[:i], doc.Tests[i+1:]...)
			return nil
		}
		return ErrNotFound
	})
	return err
}

// ListMasterMocks returns the global published-mock list.
func (s *MockTestService) ListMasterMocks(ctx context.Context, sess Session) ([]model.MasterMockTest, error) {
	if err := sess.require(CapTakeTests); err != nil {
		return nil, err
	}
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	return doc.MasterMocks, nil
}

// CreateMasterMock publishes a master mock. Every referenced question id must
// exist in the global pool.
func (s *MockTestService) CreateMasterMock(ctx context.Context, sess Session, input MasterMockInput) (*model.MasterMockTest, error) {
	if err := sess.require(CapPublishMocks); err != nil {
		return nil, err
	}
	if input.Name == "" || len(input.QuestionIDs) == 0 || input.DurationMin <= 0 {
		return nil, ErrValidation
	}
	mock := model.MasterMockTest{
		ID:          uuid.New().String(),
		Name:        input.Name,
		QuestionIDs: input.QuestionIDs,
		DurationMin: input.DurationMin,
		TotalMarks:  input.TotalMarks,
		CreatedAt:   time.Now().UTC(),
	}
	if mock.TotalMarks == 0 {
		mock.TotalMarks = len(mock.QuestionIDs) * MarksCorrect
	}
	_, err := s.store.Mutate(ctx, func(doc *model.Document) error {
		for _, qid := range input.QuestionIDs {
			if doc.QuestionByID(qid) == nil {
				return fmt.Errorf("%w: unknown question %s", ErrValidation, qid)
			}
		}
		doc.MasterMocks = append(doc.MasterMocks, mock)
		doc.AppendLog(fmt.Sprintf("Master mock published: %s", mock.Name), sess.Email, model.LogInfo)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &mock, nil
}

func (s *MockTestService) prepend(ctx context.Context, result model.MockTestResult) error {
	_, err := s.store.Mutate(ctx, func(doc *model.Document) error {
		doc.Tests = append([]model.MockTestResult{result}, doc.Tests...)
		return nil
	})
	return err
}
