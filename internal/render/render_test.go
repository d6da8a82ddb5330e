package render

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/pondus/internal/types"
)

func sampleOutput() *types.Output {
	rank := 1
	fetched := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return &types.Output{
		Timestamp: fetched,
		RunID:     uuid.MustParse("4a3f1c2e-0000-0000-0000-000000000001"),
		Query:     types.QueryInfo{Type: "rank"},
		Sources: []types.SourceResult{
			{
				Source:    "arena",
				FetchedAt: &fetched,
				Status:    types.Ok(),
				Scores: []types.ModelScore{
					{
						Model:           "gpt-5",
						SourceModelName: "GPT-5",
						Metrics: map[string]types.MetricValue{
							"elo_score": types.Float(1350),
							"rank":      types.Int(1),
						},
						Rank: &rank,
					},
				},
			},
			{
				Source: "swebench",
				Status: types.Errorf("HTTP 503"),
				Scores: []types.ModelScore{},
			},
		},
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input    string
		expected Format
		wantErr  bool
	}{
		{"json", JSON, false},
		{"table", Table, false},
		{"markdown", Markdown, false},
		{"md", Markdown, false},
		{"yaml", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			format, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestRenderJSON(t *testing.T) {
	rendered, err := Render(sampleOutput(), JSON)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(rendered), &decoded))

	srcs, ok := decoded["sources"].([]any)
	require.True(t, ok)
	require.Len(t, srcs, 2)

	second := srcs[1].(map[string]any)
	status := second["status"].(map[string]any)
	assert.Equal(t, "HTTP 503", status["error"])
}

func TestRenderTable(t *testing.T) {
	rendered, err := Render(sampleOutput(), Table)
	require.NoError(t, err)

	assert.Contains(t, rendered, "arena  [ok]")
	assert.Contains(t, rendered, "GPT-5")
	assert.Contains(t, rendered, "elo_score=1350")
	assert.Contains(t, rendered, "swebench  [error: HTTP 503]")
	assert.Contains(t, rendered, "(no scores)")
}

func TestRenderMarkdown(t *testing.T) {
	rendered, err := Render(sampleOutput(), Markdown)
	require.NoError(t, err)

	assert.Contains(t, rendered, "## arena (ok)")
	assert.Contains(t, rendered, "| 1 | gpt-5 | GPT-5 |")
	assert.Contains(t, rendered, "_no scores_")

	// Header separator makes it a real markdown table.
	assert.True(t, strings.Contains(rendered, "|---|---|---|---|"))
}
