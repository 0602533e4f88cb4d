// Package loader reads cohort snapshot files into domain records. It only
// shapes raw rows; parsing of dates and percentages and all classification
// happen in the segmentation engine.
package loader

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/techania/learner-segmentation-dashboard/internal/common"
	"github.com/techania/learner-segmentation-dashboard/internal/model"
)

// coreColumn describes one required snapshot column and the header
// spellings accepted for it.
type coreColumn struct {
	canonical string
	synonyms  []string
}

var coreColumns = []coreColumn{
	{canonical: "First Name", synonyms: []string{"first_name", "firstname", "first", "given_name"}},
	{canonical: "Last Name", synonyms: []string{"last_name", "lastname", "last", "surname", "family_name"}},
	{canonical: "Last Seen", synonyms: []string{"last_seen", "last_active", "last_login", "last_seen_date"}},
	{canonical: "Progress", synonyms: []string{"progress", "progress_pct", "completion", "completion_pct", "percent_complete"}},
	{canonical: "Average Grade", synonyms: []string{"average_grade", "avg_grade", "grade", "average_score", "avg_score"}},
	{canonical: "Barriers", synonyms: []string{"barriers", "barrier", "blockers", "obstacles"}},
	{canonical: "Training Stage", synonyms: []string{"training_stage", "stage", "training_phase", "phase"}},
}

// Parser reads delimited cohort snapshots.
type Parser struct{}

// NewParser creates a new cohort snapshot parser.
func NewParser() *Parser {
	return &Parser{}
}

// ParseFile opens and parses a cohort snapshot file.
func (p *Parser) ParseFile(ctx context.Context, path string) (model.Cohort, error) {
	file, err := os.Open(path)
	if err != nil {
		return model.Cohort{}, fmt.Errorf("failed to open cohort file: %w", err)
	}
	defer file.Close()

	cohort, err := p.Parse(ctx, file)
	if err != nil {
		return model.Cohort{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return cohort, nil
}

// Parse reads one UTF-8 delimited snapshot with a header row. The seven core
// columns must be present under some accepted spelling; any other column is
// carried through verbatim. Empty cells are fine and flow downstream as
// unknown values. Fully blank rows are skipped and counted.
func (p *Parser) Parse(_ context.Context, r io.Reader) (model.Cohort, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return model.Cohort{}, common.ErrEmptyCohort
		}
		return model.Cohort{}, fmt.Errorf("unable to read header: %w", err)
	}
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], "\uFEFF")
	}

	colMap := normalizeHeaders(headers)

	coreIdx := make([]int, len(coreColumns))
	coreSet := make(map[int]bool, len(coreColumns))
	for i, col := range coreColumns {
		idx, ok := findColumn(colMap, append([]string{col.canonical}, col.synonyms...))
		if !ok {
			return model.Cohort{}, fmt.Errorf("missing %s column: %w", col.canonical, common.ErrMissingColumn)
		}
		coreIdx[i] = idx
		coreSet[idx] = true
	}

	var extraColumns []string
	extraIdx := make(map[string]int)
	for idx, header := range headers {
		if coreSet[idx] {
			continue
		}
		name := strings.TrimSpace(header)
		if name == "" {
			continue
		}
		if _, seen := extraIdx[name]; seen {
			continue
		}
		extraIdx[name] = idx
		extraColumns = append(extraColumns, name)
	}

	cohort := model.Cohort{ExtraColumns: extraColumns}

	for {
		row, err := reader.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return model.Cohort{}, fmt.Errorf("unable to read row: %w", err)
		}
		if isBlankRow(row) {
			cohort.SkippedRows++
			continue
		}

		record := model.LearnerRecord{
			FirstName:     getValue(row, coreIdx[0]),
			LastName:      getValue(row, coreIdx[1]),
			LastSeen:      getValue(row, coreIdx[2]),
			Progress:      getValue(row, coreIdx[3]),
			AverageGrade:  getValue(row, coreIdx[4]),
			Barriers:      getValue(row, coreIdx[5]),
			TrainingStage: getValue(row, coreIdx[6]),
		}
		if len(extraColumns) > 0 {
			record.Extra = make(map[string]string, len(extraColumns))
			for _, name := range extraColumns {
				record.Extra[name] = getValue(row, extraIdx[name])
			}
		}
		cohort.Records = append(cohort.Records, record)
	}

	slog.Info("Parsed cohort snapshot",
		"learners", len(cohort.Records),
		"extra_columns", len(cohort.ExtraColumns),
		"skipped_rows", cohort.SkippedRows)

	return cohort, nil
}

func normalizeHeaders(headers []string) map[string]int {
	result := make(map[string]int, len(headers))
	for idx, header := range headers {
		normalized := normalizeHeader(header)
		if _, exists := result[normalized]; !exists {
			result[normalized] = idx
		}
	}
	return result
}

func normalizeHeader(value string) string {
	value = strings.ToLower(strings.TrimSpace(value))
	value = strings.ReplaceAll(value, " ", "")
	value = strings.ReplaceAll(value, "_", "")
	value = strings.ReplaceAll(value, "-", "")
	return value
}

func findColumn(headers map[string]int, names []string) (int, bool) {
	for _, name := range names {
		if idx, ok := headers[normalizeHeader(name)]; ok {
			return idx, true
		}
	}
	return -1, false
}

// getValue returns the cell at idx without trimming; values are preserved
// verbatim for passthrough and normalized later where it matters.
func getValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
