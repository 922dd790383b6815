package categorizer

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"fjacquet/expense-categorizer/internal/logging"
	"fjacquet/expense-categorizer/internal/models"
)

// parallelThreshold is the batch size below which fan-out is not worth it.
const parallelThreshold = 100

// CategorizeAll categorizes every transaction and returns the results in
// input order. Large batches are split across at most the configured number
// of workers; the output does not depend on the worker count.
func (c *Categorizer) CategorizeAll(ctx context.Context, transactions []models.Transaction) ([]models.CategorizedTransaction, error) {
	start := time.Now()
	out := make([]models.CategorizedTransaction, len(transactions))

	var stats models.CategorizationStats
	var err error
	if c.workers <= 1 || len(transactions) < parallelThreshold {
		stats, err = c.categorizeRange(ctx, transactions, out)
	} else {
		stats, err = c.categorizeParallel(ctx, transactions, out)
	}
	if err != nil {
		return nil, err
	}

	c.logger.Debug("Batch categorization finished",
		logging.Field{Key: logging.FieldCount, Value: len(transactions)},
		logging.Field{Key: logging.FieldWorkers, Value: c.workers},
		logging.Field{Key: logging.FieldDuration, Value: time.Since(start).Milliseconds()},
	)
	stats.LogSummary(c.logger)

	return out, nil
}

func (c *Categorizer) categorizeRange(ctx context.Context, in []models.Transaction, out []models.CategorizedTransaction) (models.CategorizationStats, error) {
	var stats models.CategorizationStats
	for i := range in {
		if i%parallelThreshold == 0 {
			if err := ctx.Err(); err != nil {
				return stats, err
			}
		}
		category, outcome := c.categorize(in[i].Description)
		out[i] = in[i].WithCategory(category)
		stats.Record(outcome)
	}
	return stats, nil
}

func (c *Categorizer) categorizeParallel(ctx context.Context, in []models.Transaction, out []models.CategorizedTransaction) (models.CategorizationStats, error) {
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	chunk := (len(in) + c.workers - 1) / c.workers
	partial := make([]models.CategorizationStats, (len(in)+chunk-1)/chunk)
	for idx := range partial {
		lo := idx * chunk
		hi := min(lo+chunk, len(in))
		g.Go(func() error {
			stats, err := c.categorizeRange(gctx, in[lo:hi], out[lo:hi])
			partial[idx] = stats
			return err
		})
	}

	var stats models.CategorizationStats
	if err := g.Wait(); err != nil {
		return stats, err
	}
	for _, p := range partial {
		stats.Merge(p)
	}
	return stats, nil
}
