// Package source supplies validated BOM part rows from backing stores:
// the production order database, or memory for imported files.
package source

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/DavidHearl/boardgen/internal/model"

	// SQLite driver (pure Go).
	_ "modernc.org/sqlite"
)

// SQLiteSource reads BOM rows from the production order database:
// DISTINTAT part rows, TORDINE/CUSTOMERID order headers and the
// articoli component master.
type SQLiteSource struct {
	db       *sql.DB
	settings model.SawSettings
	logger   *slog.Logger
}

// Open opens the order database read-only.
func Open(path string, settings model.SawSettings, logger *slog.Logger) (*SQLiteSource, error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	db, err := sql.Open("sqlite", path+"?mode=ro")
	if err != nil {
		return nil, fmt.Errorf("open order database: %w", err)
	}
	return &SQLiteSource{db: db, settings: settings, logger: logger}, nil
}

// OpenDB wraps an existing database handle, for tests and pooled
// connections.
func OpenDB(db *sql.DB, settings model.SawSettings, logger *slog.Logger) *SQLiteSource {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &SQLiteSource{db: db, settings: settings, logger: logger}
}

func (s *SQLiteSource) Close() error {
	return s.db.Close()
}

// CustomerRef resolves "CONTRACT CUSTOMER" for a job from the order
// header, falling back to the customer table, then to a placeholder.
// Only a data access failure returns an error.
func (s *SQLiteSource) CustomerRef(ctx context.Context, job int) (string, error) {
	var contract, customer sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT contract, customer FROM tordine WHERE numero = ?`, job).
		Scan(&contract, &customer)
	if errors.Is(err, sql.ErrNoRows) {
		err = s.db.QueryRowContext(ctx,
			`SELECT contract, custname FROM customerid WHERE numero = ?`, job).
			Scan(&contract, &customer)
		if errors.Is(err, sql.ErrNoRows) {
			s.logger.Warn("no customer reference found", slog.Int("job", job))
			return fmt.Sprintf("Unknown_%d", job), nil
		}
	}
	if err != nil {
		return "", fmt.Errorf("customer lookup for job %d: %w", job, err)
	}
	return strings.TrimSpace(contract.String + " " + customer.String), nil
}

// Colours lists the job's board-relevant colour groups: parts in the
// board department within the absolute thickness cap, skipping finishes
// never supplied as board stock.
func (s *SQLiteSource) Colours(ctx context.Context, job int) ([]string, error) {
	var sb strings.Builder
	args := []any{s.settings.Department, job, s.settings.MaxBoardThickness}

	sb.WriteString(`SELECT DISTINCT n3 FROM distintat
		WHERE (SELECT reparto FROM articoli WHERE cod LIKE distintat.codcomp) = ?
		AND numero = ? AND dimp <= ?`)
	appendNotIn(&sb, &args, "n3", s.settings.ExcludedColours)
	for _, p := range s.settings.ExcludedColourPrefix {
		sb.WriteString(" AND n3 NOT LIKE ?")
		args = append(args, p+"%")
	}
	appendNotIn(&sb, &args, "codcomp", s.settings.ColourScanExcludedComponents)
	sb.WriteString(" ORDER BY n3")

	rows, err := s.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list colours for job %d: %w", job, err)
	}
	defer rows.Close()

	var colours []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan colour for job %d: %w", job, err)
		}
		colours = append(colours, c)
	}
	return colours, rows.Err()
}

// Parts returns every department-relevant row of a (job, colour) group
// in stable insertion order. Classification happens in the engine, so
// no category filtering is applied here.
func (s *SQLiteSource) Parts(ctx context.Context, job int, colour string) ([]model.PartLine, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT codcomp, diml, dima, dimp, qtacomp, COALESCE(n6, ''), COALESCE(n5, ''), COALESCE(livello, 0),
			COALESCE((SELECT des FROM articoli WHERE cod LIKE distintat.codcomp), ''),
			COALESCE((SELECT reparto FROM articoli WHERE cod LIKE distintat.codcomp), '')
		FROM distintat
		WHERE numero = ? AND n3 = ?
		ORDER BY rowid`, job, colour)
	if err != nil {
		return nil, fmt.Errorf("read parts for job %d colour %q: %w", job, colour, err)
	}
	defer rows.Close()

	var parts []model.PartLine
	for rows.Next() {
		var (
			component, edging, unitLabel, description, department string
			length, width, thickness, qty                         float64
			level                                                 int
		)
		if err := rows.Scan(&component, &length, &width, &thickness, &qty,
			&edging, &unitLabel, &level, &description, &department); err != nil {
			return nil, fmt.Errorf("scan part for job %d colour %q: %w", job, colour, err)
		}

		part, err := model.NewPartLine(job, colour, component, length, width, thickness, int(qty), edging)
		if err != nil {
			// Malformed rows are dropped at the boundary, not deep in
			// the packing logic.
			s.logger.Warn("skipping malformed BOM row",
				slog.Int("job", job), slog.String("colour", colour), slog.Any("error", err))
			continue
		}
		part.Description = description
		part.Department = department
		part.Level = level
		part.UnitLabel = unitLabel
		parts = append(parts, part)
	}
	return parts, rows.Err()
}

// appendNotIn adds "AND col NOT IN (?, ...)" for a non-empty denylist.
func appendNotIn(sb *strings.Builder, args *[]any, col string, values []string) {
	if len(values) == 0 {
		return
	}
	sb.WriteString(" AND " + col + " NOT IN (")
	for i, v := range values {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString("?")
		*args = append(*args, v)
	}
	sb.WriteString(")")
}
