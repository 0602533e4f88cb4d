// Package export writes segmentation results to delimited files. Layouts
// mirror the dashboard's downloadable dataset: source columns first with
// cleaned values in place, derived columns appended. Unknown values export
// as empty cells, never as zeros.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/techania/learner-segmentation-dashboard/internal/model"
)

// coreColumns is the canonical source column order.
var coreColumns = []string{
	"First Name",
	"Last Name",
	"Last Seen",
	"Progress",
	"Average Grade",
	"Barriers",
	"Training Stage",
}

// derivedColumns are appended after the source columns in the order the
// enrichment pipeline adds them.
var derivedColumns = []string{
	"Name",
	"Days_Since_Last_Seen",
	"Engagement_Segment",
	"Progress_Segment",
	"Barriers_Flag",
	"Composite_Segment",
	"Barriers_Display",
}

// worklistColumns is the logical column order for ranked lists: derived
// first for scanning urgency, source detail trailing.
var worklistColumns = []string{
	"No.",
	"Name",
	"Days_Since_Last_Seen",
	"Progress",
	"Average Grade",
	"Barriers_Flag",
	"Engagement_Segment",
	"Progress_Segment",
	"Composite_Segment",
	"Last Seen",
	"Barriers",
	"Training Stage",
}

// WriteCohortCSV writes the full enriched dataset, one row per learner in
// source order.
func WriteCohortCSV(w io.Writer, snapshot *model.Snapshot) error {
	writer := csv.NewWriter(w)

	header := make([]string, 0, len(coreColumns)+len(snapshot.ExtraColumns)+len(derivedColumns))
	header = append(header, coreColumns...)
	header = append(header, snapshot.ExtraColumns...)
	header = append(header, derivedColumns...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range snapshot.Learners {
		l := &snapshot.Learners[i]
		row := make([]string, 0, len(header))
		row = append(row,
			l.Record.FirstName,
			l.Record.LastName,
			csvDate(l.LastSeen),
			csvFloat(l.Progress),
			csvFloat(l.AverageGrade),
			l.Record.Barriers,
			l.Record.TrainingStage,
		)
		for _, name := range snapshot.ExtraColumns {
			row = append(row, l.Record.Extra[name])
		}
		row = append(row,
			l.Name,
			csvInt(l.DaysSinceLastSeen),
			l.Engagement.ShortLabel(),
			l.ProgressBand.ShortLabel(),
			l.BarrierFlag(),
			l.Composite.Label(),
			l.BarrierDisplay(),
		)
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write learner row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteWorklistCSV writes the priority worklist in rank order.
func WriteWorklistCSV(w io.Writer, snapshot *model.Snapshot) error {
	return writeRankedCSV(w, snapshot.Worklist, snapshot.ExtraColumns)
}

// WriteSegmentCSV writes the members of one composite segment with their
// partition numbering.
func WriteSegmentCSV(w io.Writer, snapshot *model.Snapshot, seg model.Segment) error {
	partition, ok := snapshot.PartitionFor(seg)
	if !ok {
		return fmt.Errorf("no partition for segment %q", seg)
	}
	return writeRankedCSV(w, partition.Learners, snapshot.ExtraColumns)
}

// WriteCohortFile writes the full enriched dataset to a file.
func WriteCohortFile(path string, snapshot *model.Snapshot) error {
	return writeFile(path, snapshot, WriteCohortCSV)
}

// WriteWorklistFile writes the priority worklist to a file.
func WriteWorklistFile(path string, snapshot *model.Snapshot) error {
	return writeFile(path, snapshot, WriteWorklistCSV)
}

func writeFile(path string, snapshot *model.Snapshot, write func(io.Writer, *model.Snapshot) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	if err := write(file, snapshot); err != nil {
		return err
	}
	return file.Sync()
}

func writeRankedCSV(w io.Writer, learners []model.RankedLearner, extraColumns []string) error {
	writer := csv.NewWriter(w)

	header := make([]string, 0, len(worklistColumns)+len(extraColumns))
	header = append(header, worklistColumns...)
	header = append(header, extraColumns...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i := range learners {
		l := &learners[i]
		row := make([]string, 0, len(header))
		row = append(row,
			strconv.Itoa(l.Rank),
			l.Name,
			csvInt(l.DaysSinceLastSeen),
			csvFloat(l.Progress),
			csvFloat(l.AverageGrade),
			l.BarrierFlag(),
			l.Engagement.ShortLabel(),
			l.ProgressBand.ShortLabel(),
			l.Composite.Label(),
			csvDate(l.LastSeen),
			l.Record.Barriers,
			l.Record.TrainingStage,
		)
		for _, name := range extraColumns {
			row = append(row, l.Record.Extra[name])
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

func csvFloat(value *float64) string {
	if value == nil {
		return ""
	}
	return strconv.FormatFloat(*value, 'f', -1, 64)
}

func csvInt(value *int) string {
	if value == nil {
		return ""
	}
	return strconv.Itoa(*value)
}

func csvDate(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.Format("2006-01-02")
}
