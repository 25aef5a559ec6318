package ai

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/reelflip/jeeprep-api/database"
	"github.com/reelflip/jeeprep-api/model"
)

// Insights is the structured-output shape of the performance analysis call.
type Insights struct {
	Persona         string   `json:"persona"`
	Accuracy        int      `json:"accuracy"`
	SpeedRating     string   `json:"speed_rating"`
	Insights        []string `json:"insights"`
	Recommendations []string `json:"recommendations"`
}

// Service exposes the three collaborator call shapes: prompt -> plan text,
// chat history + message -> reply text, and structured prompt -> Insights.
// Every external failure degrades to a deterministic fallback; callers never
// see an AI error.
type Service struct {
	client *Client
	store  *database.Store
}

// NewService creates the AI service. A nil client disables the external
// collaborator entirely and serves fallbacks.
func NewService(client *Client, store *database.Store) *Service {
	return &Service{client: client, store: store}
}

// StudyPlan generates a personalised study plan for the user from their
// chapter progress.
func (s *Service) StudyPlan(ctx context.Context, userID string) (string, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return "", err
	}
	chapters := userChapters(doc, userID)

	content, err := s.client.Complete(ctx, doc.SystemConfig.ActiveModel, []Message{
		{Role: "system", Content: plannerSystemPrompt},
		{Role: "user", Content: describeProgress(chapters)},
	})
	if err != nil {
		log.Println("AI plan generation failed, serving fallback:", err)
		return fallbackStudyPlan(chapters), nil
	}
	return content, nil
}

// Chat continues a conversation with the study assistant.
func (s *Service) Chat(ctx context.Context, userID string, history []Message, message string) (string, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return "", err
	}

	messages := make([]Message, 0, len(history)+2)
	messages = append(messages, Message{Role: "system", Content: chatSystemPrompt})
	messages = append(messages, history...)
	messages = append(messages, Message{Role: "user", Content: message})

	content, err := s.client.Complete(ctx, doc.SystemConfig.ActiveModel, messages)
	if err != nil {
		log.Println("AI chat failed, serving fallback:", err)
		return fallbackChatReply, nil
	}
	return content, nil
}

// PerformanceInsights analyses the user's mock test history into the fixed
// structured shape.
func (s *Service) PerformanceInsights(ctx context.Context, userID string) (*Insights, error) {
	doc, err := s.store.Load(ctx)
	if err != nil {
		return nil, err
	}
	results := userResults(doc, userID)

	var insights Insights
	err = s.client.CompleteJSON(ctx, doc.SystemConfig.ActiveModel, []Message{
		{Role: "system", Content: insightsSystemPrompt},
		{Role: "user", Content: describeResults(results)},
	}, &insights)
	if err != nil || insights.Persona == "" {
		if err != nil {
			log.Println("AI insights failed, serving fallback:", err)
		}
		fb := fallbackInsights(results)
		return &fb, nil
	}
	return &insights, nil
}

func userChapters(doc *model.Document, userID string) []model.Chapter {
	chapters := []model.Chapter{}
	for _, ch := range doc.UserChapters {
		if ch.UserID == userID {
			chapters = append(chapters, ch)
		}
	}
	return chapters
}

func userResults(doc *model.Document, userID string) []model.MockTestResult {
	results := []model.MockTestResult{}
	for _, t := range doc.Tests {
		if t.UserID == userID {
			results = append(results, t)
		}
	}
	return results
}

func describeProgress(chapters []model.Chapter) string {
	var b strings.Builder
	b.WriteString("Chapter-wise progress:\n")
	for _, ch := range chapters {
		fmt.Fprintf(&b, "- %s (%s): status %q, confidence %d%%, %d min studied, %d attempts\n",
			ch.Name, ch.Subject, ch.Status, ch.Confidence, ch.TimeSpentMin, len(ch.Attempts))
	}
	if len(chapters) == 0 {
		b.WriteString("(no chapters tracked yet)\n")
	}
	return b.String()
}

func describeResults(results []model.MockTestResult) string {
	var b strings.Builder
	b.WriteString("Mock test history, newest first:\n")
	for _, r := range results {
		fmt.Fprintf(&b, "- %s: %d/%d marks in %d seconds (%s)\n",
			r.Name, r.Score, r.Total, r.TimeTakenSec, r.Source)
	}
	if len(results) == 0 {
		b.WriteString("(no tests recorded yet)\n")
	}
	return b.String()
}
