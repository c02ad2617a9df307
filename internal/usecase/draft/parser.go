package draft

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/domain/entities"
)

// Output is the structured payload the summarizer must produce
type Output struct {
	SummaryText string               `json:"summaryText"`
	Proposals   []entities.Proposal  `json:"proposals"`
	Warnings    []string             `json:"warnings"`
	Confidence  float64              `json:"confidence"`
}

// ParseOutput extracts and decodes the JSON object from a raw model
// reply. Models tend to wrap the payload in markdown fences or prose,
// so everything outside the outermost braces is discarded.
func ParseOutput(raw string) (*Output, error) {
	jsonStr := extractJSON(raw)
	if jsonStr == "" {
		return nil, fmt.Errorf("no JSON object in model reply")
	}

	var out Output
	if err := json.Unmarshal([]byte(jsonStr), &out); err != nil {
		return nil, fmt.Errorf("failed to parse model reply: %w", err)
	}
	if out.SummaryText == "" {
		return nil, fmt.Errorf("missing summaryText in model reply")
	}
	if out.Proposals == nil {
		out.Proposals = []entities.Proposal{}
	}
	if out.Warnings == nil {
		out.Warnings = []string{}
	}
	return &out, nil
}

// DegradedOutput is the fallback payload used when the summarizer
// fails or returns something unparseable. The draft is still created
// and still enters PENDING; only its content degrades.
func DegradedOutput(reason string) *Output {
	return &Output{
		SummaryText: "AI was unable to generate a structured summary.",
		Proposals:   []entities.Proposal{},
		Warnings:    []string{reason},
		Confidence:  0,
	}
}

// extractJSON returns the outermost brace-delimited region of s
func extractJSON(s string) string {
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end <= start {
		return ""
	}
	return s[start : end+1]
}
