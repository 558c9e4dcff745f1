package cmd

import (
	"github.com/naka-gawa/pr-agent/internal/render"
	"github.com/naka-gawa/pr-agent/internal/sla"
	"github.com/naka-gawa/pr-agent/internal/usecase"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Shows how long open pull requests have been waiting",
	Long: `Lists the open pull requests of the current repository, oldest first, with the
time each one has been waiting and its SLA status:

  🆕 New        less than 1 day
  ⚠️ Attention  1 day or more
  🔥 Critical   3 days or more

Thresholds can be changed with --attention-days/--critical-days or
PR_AGENT_ATTENTION_DAYS/PR_AGENT_CRITICAL_DAYS.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		output, _ := cmd.Flags().GetString("output")
		format, err := render.ParseFormat(output)
		if err != nil {
			return err
		}

		s, err := newSession(ctx, cmd)
		if err != nil {
			return err
		}

		// Inject dependencies and run the main business logic.
		reporter := usecase.NewReporter(s.fetcher, sla.NewClassifier(s.cfg.SLA), s.cfg.Timeout, s.logger)
		rows, err := reporter.Report(ctx, s.repo)
		if err != nil {
			return err
		}

		return render.Report(cmd.OutOrStdout(), format, s.repo, rows, usecase.Summarize(rows))
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
	statusCmd.Flags().StringP("output", "o", string(render.FormatTable), "Output format: table or json")
	statusCmd.Flags().Int("attention-days", sla.DefaultAttentionDays, "Days after which a pull request needs attention")
	statusCmd.Flags().Int("critical-days", sla.DefaultCriticalDays, "Days after which a pull request is critical")
}
