// Package render turns query output into its user-facing representations.
package render

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/pondus/internal/types"
)

// Format selects the output representation.
type Format int

const (
	// JSON is the default machine-readable format.
	JSON Format = iota
	// Table is an aligned plain-text table per source.
	Table
	// Markdown is a markdown table per source.
	Markdown
)

// ParseFormat maps a CLI selector to a Format. Unknown selectors are a
// user-facing fatal error.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "json":
		return JSON, nil
	case "table":
		return Table, nil
	case "markdown", "md":
		return Markdown, nil
	default:
		return 0, fmt.Errorf("unknown format %q: expected json, table, or markdown", s)
	}
}

// Render produces the string representation of output in the given format.
func Render(output *types.Output, format Format) (string, error) {
	switch format {
	case JSON:
		return renderJSON(output)
	case Table:
		return renderTable(output), nil
	case Markdown:
		return renderMarkdown(output), nil
	default:
		return "", fmt.Errorf("unknown format %d", format)
	}
}

func renderJSON(output *types.Output) (string, error) {
	data, err := json.MarshalIndent(output, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode output: %w", err)
	}
	return string(data), nil
}

func renderTable(output *types.Output) string {
	var sb strings.Builder

	for i, result := range output.Sources {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("%s  [%s]\n", result.Source, result.Status))
		if len(result.Scores) == 0 {
			sb.WriteString("  (no scores)\n")
			continue
		}

		rows := scoreRows(result.Scores)
		widths := columnWidths(rows)
		for _, row := range rows {
			sb.WriteString("  ")
			for col, cell := range row {
				sb.WriteString(fmt.Sprintf("%-*s", widths[col]+2, cell))
			}
			sb.WriteString("\n")
		}
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

func renderMarkdown(output *types.Output) string {
	var sb strings.Builder

	for i, result := range output.Sources {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(fmt.Sprintf("## %s (%s)\n\n", result.Source, result.Status))
		if len(result.Scores) == 0 {
			sb.WriteString("_no scores_\n")
			continue
		}

		sb.WriteString("| Rank | Model | Source Name | Metrics |\n")
		sb.WriteString("|---|---|---|---|\n")
		for _, row := range scoreRows(result.Scores) {
			sb.WriteString(fmt.Sprintf("| %s | %s | %s | %s |\n", row[0], row[1], row[2], row[3]))
		}
	}

	return strings.TrimSuffix(sb.String(), "\n")
}

// scoreRows flattens scores into rank/model/source-name/metrics cells with a
// header row. Metric keys render sorted so output is stable.
func scoreRows(scores []types.ModelScore) [][4]string {
	rows := make([][4]string, 0, len(scores)+1)
	rows = append(rows, [4]string{"RANK", "MODEL", "SOURCE NAME", "METRICS"})

	for _, score := range scores {
		rank := "-"
		if score.Rank != nil {
			rank = fmt.Sprintf("%d", *score.Rank)
		}

		keys := make([]string, 0, len(score.Metrics))
		for k := range score.Metrics {
			if k == "rank" {
				continue
			}
			keys = append(keys, k)
		}
		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%s", k, score.Metrics[k]))
		}

		rows = append(rows, [4]string{rank, score.Model, score.SourceModelName, strings.Join(parts, " ")})
	}
	return rows
}

func columnWidths(rows [][4]string) [4]int {
	var widths [4]int
	for _, row := range rows {
		for col, cell := range row {
			if len(cell) > widths[col] {
				widths[col] = len(cell)
			}
		}
	}
	return widths
}
