package model

import "time"

const (
	// SchemaVersion is the current shape of the persisted document. Load
	// migrates any stored document whose version tag differs.
	SchemaVersion = "2.1"

	// MaxLogEntries caps the audit trail; the oldest entries are evicted.
	MaxLogEntries = 100
)

// Document is the root persisted state. The whole document is serialized and
// stored as a single value on every write; no operation persists a sub-tree.
type Document struct {
	Version         string           `json:"version"`
	Users           []User           `json:"users"`
	GlobalChapters  []Chapter        `json:"globalChapters"`
	GlobalQuestions []Question       `json:"globalQuestions"`
	UserChapters    []Chapter        `json:"userChapters"`
	Tests           []MockTestResult `json:"tests"`
	Logs            []SystemLog      `json:"logs"`
	MasterMocks     []MasterMockTest `json:"masterMocks"`
	SystemConfig    SystemConfig     `json:"systemConfig"`
}

// AppendLog prepends a log entry and enforces the retention cap. Logs are
// newest first and are never removed by user deletion.
func (d *Document) AppendLog(action, actor string, level LogLevel) {
	entry := SystemLog{
		Action:    action,
		Actor:     actor,
		Level:     level,
		Timestamp: time.Now().UTC(),
	}
	d.Logs = append([]SystemLog{entry}, d.Logs...)
	if len(d.Logs) > MaxLogEntries {
		d.Logs = d.Logs[:MaxLogEntries]
	}
}

// UserByEmail returns the user with the given email, matched exactly.
func (d *Document) UserByEmail(email string) *User {
	for i := range d.Users {
		if d.Users[i].Email == email {
			return &d.Users[i]
		}
	}
	return nil
}

// UserByID returns the user with the given id.
func (d *Document) UserByID(id string) *User {
	for i := range d.Users {
		if d.Users[i].ID == id {
			return &d.Users[i]
		}
	}
	return nil
}

// QuestionByID returns the question with the given id from the global pool.
func (d *Document) QuestionByID(id string) *Question {
	for i := range d.GlobalQuestions {
		if d.GlobalQuestions[i].ID == id {
			return &d.GlobalQuestions[i]
		}
	}
	return nil
}
