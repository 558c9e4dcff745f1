// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"log"
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/pr-agent/internal/domain"
	"github.com/naka-gawa/pr-agent/internal/gateway"
	"github.com/naka-gawa/pr-agent/internal/sla"
)

// Reporter is the use case for the open pull request status report.
// It fetches the open pull requests of one repository and classifies each of them.
type Reporter struct {
	fetcher    gateway.Fetcher
	classifier *sla.Classifier
	now        func() time.Time
	timeout    time.Duration
	logger     *log.Logger
}

// NewReporter creates a new Reporter instance. A zero timeout disables the deadline.
func NewReporter(fetcher gateway.Fetcher, classifier *sla.Classifier, timeout time.Duration, logger *log.Logger) *Reporter {
	return &Reporter{
		fetcher:    fetcher,
		classifier: classifier,
		now:        time.Now,
		timeout:    timeout,
		logger:     logger,
	}
}

// Report returns one row per open pull request, oldest first.
// The whole listing is fetched before anything is classified, so a failed fetch yields no rows.
// Every row is classified against the same instant.
func (r *Reporter) Report(ctx context.Context, repo domain.RepositoryIdentity) ([]domain.ReportRow, error) {
	r.logger.Printf("Usecase: Building status report for %s...", repo)

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	prs, err := r.fetcher.ListOpenPullRequests(ctx, repo)
	if err != nil {
		return nil, err
	}

	// Upstream is asked for ascending creation order, but the report must not depend on it.
	sort.SliceStable(prs, func(i, j int) bool {
		if prs[i].CreatedAt.Equal(prs[j].CreatedAt) {
			return prs[i].Number < prs[j].Number
		}
		return prs[i].CreatedAt.Before(prs[j].CreatedAt)
	})

	now := r.now().UTC()
	rows := make([]domain.ReportRow, 0, len(prs))
	for _, pr := range prs {
		rows = append(rows, domain.ReportRow{
			PullRequest: pr,
			Verdict:     r.classifier.Classify(pr.CreatedAt, now),
		})
	}

	r.logger.Printf("Usecase: Classified %d pull requests.", len(rows))
	return rows, nil
}

// Summarize counts rows per tier and computes the mean and median waiting time.
func Summarize(rows []domain.ReportRow) domain.ReportSummary {
	summary := domain.ReportSummary{Total: len(rows)}
	if len(rows) == 0 {
		return summary
	}

	waits := make(stats.Float64Data, 0, len(rows))
	for _, row := range rows {
		switch row.Verdict.Tier {
		case domain.TierCritical:
			summary.Critical++
		case domain.TierAttention:
			summary.Attention++
		default:
			summary.Recent++
		}
		wait := time.Duration(row.Verdict.ElapsedDays)*24*time.Hour + time.Duration(row.Verdict.ElapsedHours)*time.Hour
		waits = append(waits, wait.Hours())
	}

	// Both only fail on empty input, which is handled above.
	mean, _ := stats.Mean(waits)
	median, _ := stats.Median(waits)
	summary.MeanWait = hoursToDuration(mean)
	summary.MedianWait = hoursToDuration(median)
	return summary
}

func hoursToDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour)).Round(time.Minute)
}
