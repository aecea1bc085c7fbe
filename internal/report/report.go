// Package report renders evaluation data to xlsx workbooks for handover to
// dormitory management.
package report

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/xuri/excelize/v2"

	"conduct/internal/checklist"
	evalmodels "conduct/internal/evaluation/models"
	regmodels "conduct/internal/registry/models"
	id "conduct/pkg/domain"
	dErrors "conduct/pkg/domain-errors"
	"conduct/pkg/requestcontext"
)

// EvaluationSource supplies the rows to export.
type EvaluationSource interface {
	ListRange(ctx context.Context, start, end id.Day) ([]*evalmodels.Evaluation, error)
}

// ResidentDirectory resolves resident IDs to names and rooms.
type ResidentDirectory interface {
	ListResidents(ctx context.Context) ([]*regmodels.Resident, error)
}

const (
	dataSheet    = "Evaluations"
	summarySheet = "Summary"

	// maxColumnWidth caps auto-sizing so one long note cannot blow up the
	// layout.
	maxColumnWidth = 40
)

// Builder renders evaluation workbooks.
type Builder struct {
	evaluations EvaluationSource
	residents   ResidentDirectory
	logger      *slog.Logger
}

type Option func(b *Builder)

func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		b.logger = logger
	}
}

// New constructs a Builder.
func New(evaluations EvaluationSource, residents ResidentDirectory, opts ...Option) *Builder {
	b := &Builder{evaluations: evaluations, residents: residents, logger: slog.Default()}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build renders the workbook for the inclusive day range: a data sheet with
// one row per evaluation (deficient criteria marked X) and a summary sheet
// with range totals. Returns the serialized xlsx bytes.
func (b *Builder) Build(ctx context.Context, start, end id.Day) ([]byte, error) {
	evals, err := b.evaluations.ListRange(ctx, start, end)
	if err != nil {
		return nil, err
	}
	residents, err := b.residents.ListResidents(ctx)
	if err != nil {
		return nil, err
	}

	names := make(map[id.ResidentID]*regmodels.Resident, len(residents))
	for _, r := range residents {
		names[r.ID] = r
	}

	f := excelize.NewFile()
	defer f.Close()

	f.SetSheetName("Sheet1", dataSheet)
	if err := b.writeDataSheet(f, evals, names); err != nil {
		return nil, err
	}
	if err := b.writeSummarySheet(ctx, f, start, end, evals); err != nil {
		return nil, err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to serialize report workbook")
	}
	return buf.Bytes(), nil
}

func (b *Builder) writeDataSheet(f *excelize.File, evals []*evalmodels.Evaluation, names map[id.ResidentID]*regmodels.Resident) error {
	criteria := checklist.Criteria()

	header := []string{"Resident", "Room", "Day"}
	for _, c := range criteria {
		header = append(header, c.Label)
	}
	header = append(header, "Deficiencies", "Notes")

	widths := make([]int, len(header))
	writeRow := func(row int, values []string) error {
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to address report cell")
			}
			if err := f.SetCellValue(dataSheet, cell, value); err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to write report cell")
			}
			if len(value) > widths[col] {
				widths[col] = len(value)
			}
		}
		return nil
	}

	if err := writeRow(1, header); err != nil {
		return err
	}
	for i, eval := range evals {
		name := eval.ResidentID.String()
		room := ""
		if resident, ok := names[eval.ResidentID]; ok {
			name = resident.Name
			room = resident.Room
		}
		values := []string{name, room, eval.Day.String()}
		for _, c := range criteria {
			mark := ""
			answer := eval.Answers[c.Key]
			if (c.Polarity == checklist.Positive && !answer) || (c.Polarity == checklist.Negative && answer) {
				mark = "X"
			}
			values = append(values, mark)
		}
		values = append(values, fmt.Sprintf("%d", eval.Score), eval.Notes)
		if err := writeRow(i+2, values); err != nil {
			return err
		}
	}

	for col, width := range widths {
		colName, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to name report column")
		}
		w := float64(width + 2)
		if w > maxColumnWidth {
			w = maxColumnWidth
		}
		if err := f.SetColWidth(dataSheet, colName, colName, w); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to size report column")
		}
	}
	return nil
}

func (b *Builder) writeSummarySheet(ctx context.Context, f *excelize.File, start, end id.Day, evals []*evalmodels.Evaluation) error {
	if _, err := f.NewSheet(summarySheet); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create summary sheet")
	}

	totalDeficiencies := 0
	for _, eval := range evals {
		totalDeficiencies += eval.Score
	}

	rows := [][2]any{
		{"From", start.String()},
		{"To", end.String()},
		{"Evaluations", len(evals)},
		{"Total deficiencies", totalDeficiencies},
		{"Generated at", requestcontext.Now(ctx).Format("2006-01-02 15:04:05")},
	}
	for i, row := range rows {
		labelCell := fmt.Sprintf("A%d", i+1)
		valueCell := fmt.Sprintf("B%d", i+1)
		if err := f.SetCellValue(summarySheet, labelCell, row[0]); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to write summary cell")
		}
		if err := f.SetCellValue(summarySheet, valueCell, row[1]); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to write summary cell")
		}
	}
	if err := f.SetColWidth(summarySheet, "A", "A", 20); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to size summary column")
	}
	return nil
}
