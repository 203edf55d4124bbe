package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/ppiankov/corefsieve/internal/model"
)

// Renderer writes reports in human and machine readable formats
type Renderer struct {
	includeFooter  bool
	showSingletons bool
}

// NewRenderer creates a renderer
func NewRenderer(includeFooter, showSingletons bool) *Renderer {
	return &Renderer{
		includeFooter:  includeFooter,
		showSingletons: showSingletons,
	}
}

// RenderJSON writes the full report as indented JSON
func (r *Renderer) RenderJSON(report *model.Report, path string) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// RenderMarkdown writes a readable chain listing with the merge log
func (r *Renderer) RenderMarkdown(report *model.Report, path string) error {
	return os.WriteFile(path, []byte(r.Markdown(report)), 0644)
}

// Markdown formats report as Markdown
func (r *Renderer) Markdown(report *model.Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Coreference report: %s\n\n", report.DocumentID)
	fmt.Fprintf(&b, "- Mentions: %d\n", report.Mentions)
	fmt.Fprintf(&b, "- Chains: %d (%d with more than one mention)\n", len(report.Chains), len(report.NonSingletons()))
	fmt.Fprintf(&b, "- Merges: %d\n", len(report.Merges))
	if len(report.Failures) > 0 {
		fmt.Fprintf(&b, "- Failures: %d\n", len(report.Failures))
	}
	b.WriteString("\n## Chains\n\n")

	chains := report.Chains
	if !r.showSingletons {
		chains = report.NonSingletons()
	}
	if len(chains) == 0 {
		b.WriteString("_No coreference chains found._\n")
	}
	for _, c := range chains {
		quoted := make([]string, len(c.Texts))
		for i, t := range c.Texts {
			quoted[i] = fmt.Sprintf("%q (%d)", t, c.Mentions[i])
		}
		fmt.Fprintf(&b, "- **%d**: %s\n", c.ID, strings.Join(quoted, ", "))
	}

	if len(report.Merges) > 0 {
		b.WriteString("\n## Merges\n\n")
		b.WriteString("| # | Sieve | Mention | Antecedent | Distance | Chain |\n")
		b.WriteString("|---|---|---|---|---|---|\n")
		for _, m := range report.Merges {
			fmt.Fprintf(&b, "| %d | %s | %d | %d | %d | %d |\n",
				m.Sequence, m.Sieve, m.Mention, m.Antecedent, m.Distance, m.Chain)
		}
	}

	if len(report.Sieves) > 0 {
		b.WriteString("\n## Sieves\n\n")
		b.WriteString("| Sieve | Window | Visited | Skipped | Merges | Failures |\n")
		b.WriteString("|---|---|---|---|---|---|\n")
		for _, s := range report.Sieves {
			fmt.Fprintf(&b, "| %s | %s | %d | %d | %d | %d |\n",
				s.Sieve, window(s.Window), s.Visited, s.Skipped, s.Merges, s.Failures)
		}
	}

	if report.Score != nil {
		sc := report.Score
		b.WriteString("\n## Evaluation\n\n")
		b.WriteString("| Metric | Precision | Recall | F1 |\n")
		b.WriteString("|---|---|---|---|\n")
		fmt.Fprintf(&b, "| MUC | %.3f | %.3f | %.3f |\n", sc.MUC.Precision, sc.MUC.Recall, sc.MUC.F1)
		fmt.Fprintf(&b, "| B3 | %.3f | %.3f | %.3f |\n", sc.BCubed.Precision, sc.BCubed.Recall, sc.BCubed.F1)
		if len(sc.Signals) > 0 {
			b.WriteString("\n")
			for _, s := range sc.Signals {
				fmt.Fprintf(&b, "- **%s** (%s): %s\n", s.Type, s.Severity, s.Description)
			}
		}
	}

	if len(report.Failures) > 0 {
		b.WriteString("\n## Failures\n\n")
		for _, f := range report.Failures {
			fmt.Fprintf(&b, "- mention %d in %s: %s\n", f.Mention, f.Sieve, f.Error)
		}
	}

	if r.includeFooter {
		fmt.Fprintf(&b, "\n---\n_Generated by corefsieve, run %s at %s._\n",
			report.RunID, report.ResolvedAt.Format("2006-01-02 15:04:05 UTC"))
	}

	return b.String()
}

// RenderSummary prints a short summary
func (r *Renderer) RenderSummary(w io.Writer, report *model.Report) {
	fmt.Fprintf(w, "\n%s: %d mentions, %d chains, %d merges\n",
		report.DocumentID, report.Mentions, len(report.Chains), len(report.Merges))
	for _, c := range report.NonSingletons() {
		fmt.Fprintf(w, "  [%d] %s\n", c.ID, strings.Join(c.Texts, " | "))
	}
	if report.Score != nil {
		fmt.Fprintf(w, "  MUC F1 %.3f, B3 F1 %.3f\n", report.Score.MUC.F1, report.Score.BCubed.F1)
	}
	if len(report.Failures) > 0 {
		fmt.Fprintf(w, "  ⚠ %d mention(s) left unmatched by errors\n", len(report.Failures))
	}
}

func window(w int) string {
	if w == model.Unbounded {
		return "∞"
	}
	return fmt.Sprint(w)
}
