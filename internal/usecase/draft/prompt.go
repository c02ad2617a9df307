package draft

import (
	"fmt"
	"strings"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/domain/entities"
)

const responseFormat = `Respond with ONLY valid JSON in this format:
{
  "summaryText": "2-3 paragraph executive summary of meeting health and key findings",
  "proposals": [
    {
      "type": "carry_forward_todo|carry_forward_issue|flag_stale_rock|flag_pattern|suggest_action",
      "entityId": "id if applicable",
      "description": "what should be done and why"
    }
  ],
  "warnings": ["list of concerns"],
  "confidence": 0.0 to 1.0
}`

// meetingPromptData bundles everything the meeting prompt references
type meetingPromptData struct {
	Meeting *entities.Meeting
	Todos   []*entities.Todo
	Issues  []*entities.Issue
	Rocks   []*entities.Rock
	Entries []*entities.ScorecardEntry
	Ratings []*entities.Rating
}

// buildMeetingPrompt renders the analyst prompt for one meeting
func buildMeetingPrompt(data meetingPromptData) string {
	var b strings.Builder

	b.WriteString("You are an EOS (Entrepreneurial Operating System) meeting analyst.\n")
	b.WriteString("Analyze this weekly meeting data and produce a structured JSON response.\n\n")
	fmt.Fprintf(&b, "Meeting: %s\n\n", data.Meeting.Title)

	fmt.Fprintf(&b, "Todos (%d):\n", len(data.Todos))
	for _, t := range data.Todos {
		due := "none"
		if t.DueDate != nil {
			due = t.DueDate.Format("2006-01-02")
		}
		owner := "unassigned"
		if t.Owner != nil {
			owner = t.Owner.Name
		}
		fmt.Fprintf(&b, "- [%s] %s (due: %s, owner: %s)\n", t.Status, t.Title, due, owner)
	}

	fmt.Fprintf(&b, "\nIDS Issues (%d):\n", len(data.Issues))
	for _, i := range data.Issues {
		fmt.Fprintf(&b, "- [%s] [%s] %s\n", i.Status, i.Priority, i.Title)
	}

	b.WriteString("\nRocks:\n")
	for _, r := range data.Rocks {
		owner := "unassigned"
		if r.Owner != nil {
			owner = r.Owner.Name
		}
		fmt.Fprintf(&b, "- [%s] %s (owner: %s)\n", r.Status, r.Title, owner)
	}

	b.WriteString("\nScorecard:\n")
	for _, e := range data.Entries {
		name := ""
		if e.Metric != nil {
			name = e.Metric.Name
		}
		fmt.Fprintf(&b, "- %s: actual=%g, status=%s\n", name, e.Actual, e.Status)
	}

	if len(data.Ratings) > 0 {
		sum := 0
		for _, r := range data.Ratings {
			sum += r.Score
		}
		avg := float64(sum) / float64(len(data.Ratings))
		fmt.Fprintf(&b, "\nRatings: avg %.1f/10\n\n", avg)
	} else {
		b.WriteString("\nRatings: none yet\n\n")
	}

	b.WriteString(responseFormat)
	return b.String()
}

// BoardCompanyData is one company's health metrics for the board prompt
type BoardCompanyData struct {
	Name              string
	AvgRating         *float64
	TodoCompletionPct *float64
	OpenIssueCount    int
	OffTrackRocks     int
	CarryForwardCount int
}

// buildBoardPrompt renders the board-level analyst prompt
func buildBoardPrompt(companies []BoardCompanyData) string {
	var b strings.Builder

	b.WriteString("You are a board-level strategic analyst for a group of companies running EOS.\n")
	b.WriteString("Analyze these company health metrics and produce a board summary.\n")

	for _, c := range companies {
		fmt.Fprintf(&b, "\nCompany: %s\n", c.Name)
		if c.AvgRating != nil {
			fmt.Fprintf(&b, "- Avg Meeting Rating: %.1f\n", *c.AvgRating)
		} else {
			b.WriteString("- Avg Meeting Rating: N/A\n")
		}
		if c.TodoCompletionPct != nil {
			fmt.Fprintf(&b, "- Todo Completion Rate: %.0f%%\n", *c.TodoCompletionPct)
		} else {
			b.WriteString("- Todo Completion Rate: N/A\n")
		}
		fmt.Fprintf(&b, "- Open Issues: %d\n", c.OpenIssueCount)
		fmt.Fprintf(&b, "- Off-Track Rocks: %d\n", c.OffTrackRocks)
		fmt.Fprintf(&b, "- Carry-Forward Items: %d\n", c.CarryForwardCount)
	}

	b.WriteString("\n")
	b.WriteString(responseFormat)
	return b.String()
}
