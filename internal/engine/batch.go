package engine

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"unicode"

	"github.com/DavidHearl/boardgen/internal/model"
)

// BOMSource supplies part rows for board generation, one (job, colour)
// group at a time. Implementations enumerate only board-relevant
// colours; the engine re-validates parts through classification.
type BOMSource interface {
	// CustomerRef resolves the job's customer label. A missing
	// reference resolves to a placeholder without error; only a data
	// access failure returns one.
	CustomerRef(ctx context.Context, job int) (string, error)

	// Colours lists the job's board-relevant colour groups.
	Colours(ctx context.Context, job int) ([]string, error)

	// Parts returns the job's rows for one colour group, in a stable
	// order. The accumulator paths depend on that order.
	Parts(ctx context.Context, job int, colour string) ([]model.PartLine, error)
}

// BatchResult is the combined output of a multi-job run.
type BatchResult struct {
	Rows     []model.BoardRequirement
	Warnings []string
}

// Run processes the given jobs strictly in order. Customer lookup
// failures degrade to a placeholder label and the run continues; a
// failure reading BOM data aborts the remaining batch.
func (e *Engine) Run(ctx context.Context, src BOMSource, jobs []int) (BatchResult, error) {
	var res BatchResult
	for _, job := range jobs {
		customer, err := src.CustomerRef(ctx, job)
		if err != nil {
			customer = fmt.Sprintf("Error_%d", job)
			warning := fmt.Sprintf("job %d: customer lookup failed: %v", job, err)
			e.logger.Warn(warning)
			res.Warnings = append(res.Warnings, warning)
		}

		colours, err := src.Colours(ctx, job)
		if err != nil {
			return res, fmt.Errorf("job %d: list colours: %w", job, err)
		}
		if len(colours) == 0 {
			e.logger.Warn("no board-relevant colours for job", slog.Int("job", job))
		}

		for _, colour := range colours {
			parts, err := src.Parts(ctx, job, colour)
			if err != nil {
				return res, fmt.Errorf("job %d colour %q: read parts: %w", job, colour, err)
			}
			group := e.OptimizeGroup(job, colour, customer, parts)
			res.Rows = append(res.Rows, group.Rows...)
			res.Warnings = append(res.Warnings, group.Warnings...)
		}

		e.logger.Info("job processed",
			slog.Int("job", job), slog.String("customer", customer), slog.Int("colours", len(colours)))
	}
	return res, nil
}

// ParseJobList parses a comma, semicolon or whitespace separated list
// of job numbers. Non-numeric identifiers are rejected here, before
// any data access is attempted.
func ParseJobList(s string) ([]int, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ';' || unicode.IsSpace(r)
	})
	if len(fields) == 0 {
		return nil, fmt.Errorf("no job numbers supplied")
	}
	jobs := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("invalid job number %q", f)
		}
		jobs = append(jobs, n)
	}
	return jobs, nil
}
