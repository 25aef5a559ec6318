package model

import "time"

// MasterMockTest is an admin-published exam definition: a fixed set of
// question ids, a duration and total marks.
type MasterMockTest struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	QuestionIDs []string  `json:"question_ids"`
	DurationMin int       `json:"duration_min"`
	TotalMarks  int       `json:"total_marks"`
	CreatedAt   time.Time `json:"created_at"`
}

// Result sources.
const (
	ResultSourceExam   = "exam"   // scored by the exam runner
	ResultSourceManual = "manual" // offline result entered by hand
)

// MockTestResult is one completed exam session or manually logged offline
// result. It is owned by the user who produced it and immutable once created
// except for deletion.
type MockTestResult struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id"`
	Name          string         `json:"name"`
	Source        string         `json:"source"`
	Score         int            `json:"score"`
	Total         int            `json:"total"`
	SubjectScores map[string]int `json:"subject_scores,omitempty"`
	TimeTakenSec  int            `json:"time_taken_sec"`
	TakenAt       time.Time      `json:"taken_at"`
}
