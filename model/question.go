package model

// Question belongs to the global pool. It may be tagged to one chapter and one
// free-text exam tag, and is referenced by id from master mock tests.
type Question struct {
	ID           string   `json:"id"`
	Text         string   `json:"text"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correct_index"`
	Subject      string   `json:"subject"`
	ChapterID    string   `json:"chapter_id,omitempty"`
	ExamTag      string   `json:"exam_tag,omitempty"`
}
