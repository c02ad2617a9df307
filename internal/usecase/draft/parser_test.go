package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ismailchoudhry332-pixel/Ninety-Killer/internal/domain/entities"
)

func TestParseOutput_PlainJSON(t *testing.T) {
	raw := `{"summaryText":"A solid week.","proposals":[{"type":"suggest_action","description":"Follow up with finance"}],"warnings":["two todos slipped"],"confidence":0.82}`

	out, err := ParseOutput(raw)
	require.NoError(t, err)
	assert.Equal(t, "A solid week.", out.SummaryText)
	require.Len(t, out.Proposals, 1)
	assert.Equal(t, entities.ProposalSuggestAction, out.Proposals[0].Type)
	assert.Equal(t, []string{"two todos slipped"}, out.Warnings)
	assert.Equal(t, 0.82, out.Confidence)
}

func TestParseOutput_StripsMarkdownFences(t *testing.T) {
	raw := "Here is the summary you asked for:\n```json\n{\"summaryText\":\"Fenced.\",\"confidence\":0.5}\n```\nLet me know if you need anything else."

	out, err := ParseOutput(raw)
	require.NoError(t, err)
	assert.Equal(t, "Fenced.", out.SummaryText)
	assert.NotNil(t, out.Proposals)
	assert.NotNil(t, out.Warnings)
	assert.Empty(t, out.Proposals)
	assert.Empty(t, out.Warnings)
}

func TestParseOutput_Rejects(t *testing.T) {
	cases := map[string]string{
		"no json":             "the model rambled with no payload",
		"malformed":           `{"summaryText": "unterminated`,
		"missing summaryText": `{"confidence":0.9}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := ParseOutput(raw)
			assert.Error(t, err)
		})
	}
}

func TestDegradedOutput(t *testing.T) {
	out := DegradedOutput("summarizer unavailable: boom")
	assert.NotEmpty(t, out.SummaryText)
	assert.Empty(t, out.Proposals)
	assert.Equal(t, []string{"summarizer unavailable: boom"}, out.Warnings)
	assert.Zero(t, out.Confidence)
}

func TestExtractJSON(t *testing.T) {
	assert.Equal(t, `{"a":1}`, extractJSON("prefix {\"a\":1} suffix"))
	assert.Equal(t, `{"a":{"b":2}}`, extractJSON(`{"a":{"b":2}}`))
	assert.Equal(t, "", extractJSON("no braces here"))
	assert.Equal(t, "", extractJSON("} backwards {"))
}
