// Package render writes status reports for the terminal or for scripts.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/naka-gawa/pr-agent/internal/domain"
)

// Format selects how the status report is written.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// ParseFormat validates a --output value.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatTable, FormatJSON:
		return Format(s), nil
	default:
		return "", domain.NewConfigurationError(fmt.Sprintf("unknown output format %q (use table or json)", s), nil)
	}
}

// Report writes the report in the requested format.
func Report(w io.Writer, format Format, repo domain.RepositoryIdentity, rows []domain.ReportRow, summary domain.ReportSummary) error {
	if format == FormatJSON {
		return JSON(w, repo, rows, summary)
	}
	return Table(w, repo, rows, summary)
}

// tierColors mirrors a traffic light: green, yellow, red.
var tierColors = map[domain.Tier]lipgloss.Color{
	domain.TierRecent:    lipgloss.Color("2"),
	domain.TierAttention: lipgloss.Color("3"),
	domain.TierCritical:  lipgloss.Color("1"),
}

const (
	colID = iota
	colTitle
	colAuthor
	colWaiting
	colStatus
)

// Table renders the rows as a bordered table followed by a one-line summary.
func Table(w io.Writer, repo domain.RepositoryIdentity, rows []domain.ReportRow, summary domain.ReportSummary) error {
	r := lipgloss.NewRenderer(w)
	titleStyle := r.NewStyle().Bold(true).Foreground(lipgloss.Color("99"))
	headerStyle := r.NewStyle().Bold(true).Padding(0, 1)
	cellStyle := r.NewStyle().Padding(0, 1)
	dimStyle := r.NewStyle().Foreground(lipgloss.Color("241"))

	title := titleStyle.Render("PR status - " + repo.FullName())
	if len(rows) == 0 {
		_, err := fmt.Fprintf(w, "%s\n%s\n", title, dimStyle.Render("No open pull requests."))
		return err
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(dimStyle).
		Headers("ID", "Title", "Author", "Waiting", "Status").
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			style := cellStyle
			switch col {
			case colID:
				style = style.Foreground(lipgloss.Color("6")).Align(lipgloss.Right)
			case colAuthor:
				style = style.Foreground(lipgloss.Color("5"))
			case colWaiting:
				style = style.Align(lipgloss.Right)
				if row >= 0 && row < len(rows) {
					style = style.Bold(true).Foreground(tierColors[rows[row].Verdict.Tier])
				}
			case colStatus:
				style = style.Align(lipgloss.Center)
			}
			return style
		})

	for _, row := range rows {
		pr := row.PullRequest
		t.Row(
			strconv.Itoa(pr.Number),
			pr.Title,
			pr.AuthorLogin,
			row.Verdict.Waiting(),
			row.Verdict.Tier.Label(),
		)
	}

	footer := fmt.Sprintf("%d open · %d new · %d attention · %d critical · mean wait %s · median wait %s",
		summary.Total, summary.Recent, summary.Attention, summary.Critical,
		formatWait(summary.MeanWait), formatWait(summary.MedianWait))

	_, err := fmt.Fprintf(w, "%s\n%s\n%s\n", title, t.String(), dimStyle.Render(footer))
	return err
}

type jsonSummary struct {
	Total      int    `json:"total"`
	Recent     int    `json:"recent"`
	Attention  int    `json:"attention"`
	Critical   int    `json:"critical"`
	MeanWait   string `json:"mean_wait"`
	MedianWait string `json:"median_wait"`
}

type jsonReport struct {
	Repository string             `json:"repository"`
	Rows       []domain.ReportRow `json:"pull_requests"`
	Summary    jsonSummary        `json:"summary"`
}

// JSON writes the report as pretty-printed JSON.
func JSON(w io.Writer, repo domain.RepositoryIdentity, rows []domain.ReportRow, summary domain.ReportSummary) error {
	if rows == nil {
		rows = []domain.ReportRow{}
	}
	report := jsonReport{
		Repository: repo.FullName(),
		Rows:       rows,
		Summary: jsonSummary{
			Total:      summary.Total,
			Recent:     summary.Recent,
			Attention:  summary.Attention,
			Critical:   summary.Critical,
			MeanWait:   formatWait(summary.MeanWait),
			MedianWait: formatWait(summary.MedianWait),
		},
	}
	jsonData, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report to JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonData))
	return err
}

// formatWait uses the same "<days>d <hours>h" form as the table rows.
func formatWait(d time.Duration) string {
	days := int(d / (24 * time.Hour))
	hours := int((d % (24 * time.Hour)) / time.Hour)
	return fmt.Sprintf("%dd %dh", days, hours)
}
