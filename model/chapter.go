package model

import "time"

// ChapterStatus enumerates the manual progress states of a chapter instance.
// Any state is reachable from any other; the cycle is not strictly ordered.
type ChapterStatus string

const (
	ChapterNotStarted     ChapterStatus = "Not Started"
	ChapterInProgress     ChapterStatus = "In Progress"
	ChapterCompleted      ChapterStatus = "Completed"
	ChapterRevisionNeeded ChapterStatus = "Revision Needed"
)

// Chapter is either a global template (UserID empty, part of the admin-owned
// catalog) or a per-user instance cloned from a template at registration time.
// Only instances carry progress state.
type Chapter struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id,omitempty"`
	Name        string     `json:"name"`
	Subject     string     `json:"subject"`
	Description string     `json:"description"`
	Notes       string     `json:"notes"`
	VideoLinks  []string   `json:"video_links"`
	Questions   []Question `json:"questions"`

	// Progress state, meaningful on per-user instances only.
	Status        ChapterStatus `json:"status"`
	Confidence    int           `json:"confidence"`
	TimeSpentMin  int           `json:"time_spent_min"`
	VideosWatched int           `json:"videos_watched"`
	Attempts      []Attempt     `json:"attempts"`
}

// Attempt is one entry of a chapter's append-only quiz history.
type Attempt struct {
	Date  time.Time `json:"date"`
	Score int       `json:"score"`
	Total int       `json:"total"`
}

// InstanceID derives the composite id of a per-user chapter instance from the
// owning user and the template it was cloned from.
func InstanceID(userID, templateID string) string {
	return userID + "_" + templateID
}

// Instance clones a template chapter into a fresh per-user instance with empty
// progress state and per-user question overrides.
func (c Chapter) Instance(userID string) Chapter {
	inst := c
	inst.ID = InstanceID(userID, c.ID)
	inst.UserID = userID
	inst.Questions = []Question{}
	inst.Status = ChapterNotStarted
	inst.Confidence = 0
	inst.TimeSpentMin = 0
	inst.VideosWatched = 0
	inst.Attempts = nil
	return inst
}

// RecordAttempt appends a quiz result to the attempt history and raises the
// confidence score. Confidence is clamped to [0,100] and never decremented
// automatically, however badly a quiz went.
func (c *Chapter) RecordAttempt(score, total int, at time.Time) {
	c.Attempts = append(c.Attempts, Attempt{Date: at, Score: score, Total: total})
	if total <= 0 {
		return
	}
	gain := (score * 20) / total
	if gain <= 0 {
		return
	}
	c.Confidence += gain
	if c.Confidence > 100 {
		c.Confidence = 100
	}
	if c.Confidence < 0 {
		c.Confidence = 0
	}
}
