package ai

import (
	"fmt"
	"sort"

	"github.com/reelflip/jeeprep-api/model"
)

// Canned fallbacks. Any failure of the external collaborator degrades to
// these deterministic outputs and is never surfaced as an error.

const fallbackChatReply = "I could not reach the study assistant right now. " +
	"Keep working through your weakest chapters and try again in a little while."

// fallbackStudyPlan builds a deterministic plan from the student's own
// chapters: the three lowest-confidence ones, one per day slot.
func fallbackStudyPlan(chapters []model.Chapter) string {
	weakest := append([]model.Chapter{}, chapters...)
	sort.SliceStable(weakest, func(i, j int) bool {
		return weakest[i].Confidence < weakest[j].Confidence
	})
	if len(weakest) > 3 {
		weakest = weakest[:3]
	}

	plan := "Study plan (offline):\n"
	if len(weakest) == 0 {
		return plan + "- Revise your strongest chapters and attempt one full mock test this week."
	}
	for i, ch := range weakest {
		plan += fmt.Sprintf("- Day %d-%d: %s (%s), currently at %d%% confidence. Revise notes, then take a chapter quiz.\n",
			i*2+1, i*2+2, ch.Name, ch.Subject, ch.Confidence)
	}
	plan += "- Day 7: one full-length mock test under exam conditions."
	return plan
}

// fallbackInsights derives the structured insight object from the student's
// recorded results so the shape is always present even with the API down.
func fallbackInsights(results []model.MockTestResult) Insights {
	if len(results) == 0 {
		return Insights{
			Persona:     "Getting Started",
			Accuracy:    0,
			SpeedRating: "steady",
			Insights:    []string{"No mock tests recorded yet."},
			Recommendations: []string{
				"Take your first master mock to establish a baseline.",
				"Complete chapter quizzes to build confidence data.",
			},
		}
	}

	scored, max := 0, 0
	for _, r := range results {
		scored += r.Score
		max += r.Total
	}
	accuracy := 0
	if max > 0 {
		accuracy = scored * 100 / max
	}
	if accuracy < 0 {
		accuracy = 0
	}
	// Manually entered results may claim more marks than their own total
	if accuracy > 100 {
		accuracy = 100
	}

	persona := "Steady Improver"
	if accuracy >= 75 {
		persona = "Confident Performer"
	} else if accuracy < 40 {
		persona = "Foundation Builder"
	}

	return Insights{
		Persona:     persona,
		Accuracy:    accuracy,
		SpeedRating: "steady",
		Insights: []string{
			fmt.Sprintf("You have recorded %d mock test(s).", len(results)),
			fmt.Sprintf("Overall scoring rate is %d%% of available marks.", accuracy),
		},
		Recommendations: []string{
			"Review negative-marked answers from your latest mock.",
			"Schedule chapter revision for your two weakest subjects.",
		},
	}
}
