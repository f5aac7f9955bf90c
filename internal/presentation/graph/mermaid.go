package graph

import (
	"fmt"
	"strings"

	"github.com/dialbird/canvass/pkg/survey"
)

// completionID is the synthetic sink node every terminal transition points at.
const completionID = "__complete"

// Overlay contains session state to highlight on the graph.
type Overlay struct {
	AnsweredQuestions []string
	CurrentQuestion   string
}

// GenerateMermaid produces a Mermaid flowchart from a survey config.
// Question shapes follow type:
// - yes_no: {Diamond} (decision)
// - multiple_choice: [/Parallelogram/] (input)
// - rating: ([Stadium])
// - open_ended: [Rectangle]
// Branch edges are labeled (yes/no, option text, rating ranges); terminal
// transitions converge on a single completion circle. Overlay styles mark
// answered and current questions if provided.
func GenerateMermaid(cfg *survey.Config, overlay *Overlay) string {
	var sb strings.Builder
	sb.WriteString("graph TD\n")

	hasTerminal := false
	for i := range cfg.Questions {
		q := &cfg.Questions[i]
		safeID := sanitizeMermaidID(q.ID)

		opener, closer := "[", "]"
		switch q.Type {
		case survey.TypeYesNo:
			opener, closer = "{", "}"
		case survey.TypeMultipleChoice:
			opener, closer = "[/", "/]"
		case survey.TypeRating:
			opener, closer = "([", "])"
		}
		sb.WriteString(fmt.Sprintf("    %s%s\"%s\"%s\n", safeID, opener, escapeLabel(q.ID), closer))

		for _, e := range edges(cfg, q) {
			to := completionID
			if e.target.Defined() && !e.target.IsTerminal() {
				to = sanitizeMermaidID(e.target.ID())
			} else {
				hasTerminal = true
			}
			arrow := "-->"
			if e.label != "" {
				arrow = fmt.Sprintf("-- \"%s\" -->", escapeLabel(e.label))
			}
			sb.WriteString(fmt.Sprintf("    %s %s %s\n", safeID, arrow, to))
		}
	}

	if hasTerminal {
		sb.WriteString(fmt.Sprintf("    %s((\"complete\"))\n", completionID))
	}

	if overlay != nil {
		sb.WriteString("\n    %% Overlay Styles\n")
		sb.WriteString("    classDef answered fill:#e1f5fe,stroke:#01579b,stroke-width:2px,color:#000;\n")
		sb.WriteString("    classDef current fill:#ffeb3b,stroke:#fbc02d,stroke-width:4px,color:#000;\n")

		seen := make(map[string]bool)
		for _, id := range overlay.AnsweredQuestions {
			safeID := sanitizeMermaidID(id)
			if safeID != "" && !seen[safeID] {
				seen[safeID] = true
				sb.WriteString(fmt.Sprintf("    class %s answered;\n", safeID))
			}
		}
		if overlay.CurrentQuestion != "" {
			sb.WriteString(fmt.Sprintf("    class %s current;\n", sanitizeMermaidID(overlay.CurrentQuestion)))
		}
	}

	return sb.String()
}

type edge struct {
	label  string
	target survey.Target
}

// edges lists a question's outgoing transitions in a stable order: typed
// branches in declaration order, then the fallback.
func edges(cfg *survey.Config, q *survey.Question) []edge {
	var out []edge
	switch q.Type {
	case survey.TypeYesNo:
		out = append(out,
			edge{label: "yes", target: q.NextOnYes},
			edge{label: "no", target: q.NextOnNo},
		)
	case survey.TypeMultipleChoice:
		for _, opt := range q.Options {
			if next, ok := q.NextByOption[opt]; ok {
				out = append(out, edge{label: opt, target: survey.To(next)})
			}
		}
		out = append(out, edge{target: q.Next})
	case survey.TypeRating:
		for _, r := range q.NextByRange {
			out = append(out, edge{label: fmt.Sprintf("%d-%d", r.Min, r.Max), target: r.Next})
		}
		if len(q.NextByRange) == 0 {
			out = append(out, edge{target: q.Next})
		}
	default:
		out = append(out, edge{target: q.Next})
	}
	return out
}

func escapeLabel(s string) string {
	return strings.ReplaceAll(s, "\"", "'")
}

func sanitizeMermaidID(id string) string {
	s := strings.ReplaceAll(id, ".", "_")
	s = strings.ReplaceAll(s, "-", "_")
	s = strings.ReplaceAll(s, "/", "_")
	s = strings.ReplaceAll(s, "\\", "_")
	s = strings.ReplaceAll(s, " ", "_")
	return s
}
