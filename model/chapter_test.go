package model

import (
	"testing"
	"time"
)

func TestInstanceClonesWithEmptyProgress(t *testing.T) {
	tpl := Chapter{
		ID:          "ch-phy-kinematics",
		Name:        "Kinematics",
		Subject:     "Physics",
		Description: "Motion in one and two dimensions.",
		VideoLinks:  []string{"https://example.com/v1"},
		Questions:   []Question{{ID: "q1"}},
		Confidence:  80,
		Status:      ChapterCompleted,
	}

	inst := tpl.Instance("u-42")

	if inst.ID != "u-42_ch-phy-kinematics" {
		t.Errorf("instance id = %q, want composite of user and template", inst.ID)
	}
	if inst.UserID != "u-42" {
		t.Errorf("instance user = %q, want u-42", inst.UserID)
	}
	if inst.Confidence != 0 || inst.TimeSpentMin != 0 || inst.VideosWatched != 0 || len(inst.Attempts) != 0 {
		t.Error("instance should start with empty progress state")
	}
	if inst.Status != ChapterNotStarted {
		t.Errorf("instance status = %q, want %q", inst.Status, ChapterNotStarted)
	}
	if len(inst.Questions) != 0 {
		t.Error("instance should not inherit template questions")
	}
	if inst.Name != tpl.Name || inst.Subject != tpl.Subject || inst.Description != tpl.Description {
		t.Error("instance should keep the template's content fields")
	}
}

func TestRecordAttemptRaisesConfidence(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name         string
		start        int
		score, total int
		want         int
	}{
		{"perfect quiz gains 20", 0, 10, 10, 20},
		{"half score gains 10", 0, 5, 10, 10},
		{"zero score gains nothing", 30, 0, 10, 30},
		{"clamped at 100", 95, 10, 10, 100},
		{"never decrements", 50, 0, 10, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ch := Chapter{Confidence: tt.start}
			ch.RecordAttempt(tt.score, tt.total, now)
			if ch.Confidence != tt.want {
				t.Errorf("confidence = %d, want %d", ch.Confidence, tt.want)
			}
			if len(ch.Attempts) != 1 {
				t.Fatalf("attempts = %d, want 1", len(ch.Attempts))
			}
			got := ch.Attempts[0]
			if got.Score != tt.score || got.Total != tt.total || !got.Date.Equal(now) {
				t.Errorf("attempt = %+v, want score=%d total=%d", got, tt.score, tt.total)
			}
		})
	}
}

func TestRecordAttemptHistoryIsAppendOnly(t *testing.T) {
	ch := Chapter{}
	for i := 0; i < 5; i++ {
		ch.RecordAttempt(i, 10, time.Now().UTC())
	}
	if len(ch.Attempts) != 5 {
		t.Errorf("attempts = %d, want 5", len(ch.Attempts))
	}
	for i, a := range ch.Attempts {
		if a.Score != i {
			t.Errorf("attempt %d score = %d, history order changed", i, a.Score)
		}
	}
}
