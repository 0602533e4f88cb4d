package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"github.com/techania/learner-segmentation-dashboard/internal/model"
)

const worklistTabTitle = "Worklist"

// writeWorklistTab writes the priority worklist to its own tab so outreach
// staff get a clean, shareable list without the surrounding report.
func (w *Writer) writeWorklistTab(ctx context.Context, spreadsheetID string, snapshot *model.Snapshot) error {
	sheetID, err := w.ensureWorklistTab(ctx, spreadsheetID)
	if err != nil {
		return err
	}

	values := [][]any{worklistHeader()}
	for _, l := range snapshot.Worklist {
		values = append(values, worklistRow(l))
	}

	clearRange := fmt.Sprintf("%s!A:Z", worklistTabTitle)
	if _, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, clearRange, &sheets.ClearValuesRequest{}).Context(ctx).Do(); err != nil {
		return fmt.Errorf("failed to clear worklist tab: %w", err)
	}

	valueRange := &sheets.ValueRange{Values: values}
	rangeStr := fmt.Sprintf("%s!A1", worklistTabTitle)
	_, err = w.service.Spreadsheets.Values.Update(spreadsheetID, rangeStr, valueRange).
		ValueInputOption("USER_ENTERED").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("failed to write worklist tab: %w", err)
	}

	if w.config.EnableFormatting {
		if err := w.formatWorklistTab(ctx, spreadsheetID, sheetID); err != nil {
			w.logger.Warn("failed to format worklist tab", "error", err)
		}
	}

	return nil
}

// ensureWorklistTab returns the worklist tab's sheet id, creating the tab
// when it does not exist yet.
func (w *Writer) ensureWorklistTab(ctx context.Context, spreadsheetID string) (int64, error) {
	spreadsheet, err := w.service.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("unable to inspect spreadsheet: %w", err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == worklistTabTitle {
			return sheet.Properties.SheetId, nil
		}
	}

	batchUpdate := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{
						Title: worklistTabTitle,
					},
				},
			},
		},
	}

	resp, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, batchUpdate).Context(ctx).Do()
	if err != nil {
		return 0, fmt.Errorf("unable to create worklist tab: %w", err)
	}

	for _, reply := range resp.Replies {
		if reply.AddSheet != nil && reply.AddSheet.Properties != nil {
			return reply.AddSheet.Properties.SheetId, nil
		}
	}
	return 0, fmt.Errorf("worklist tab created but no sheet id returned")
}

// formatWorklistTab bolds the header row and freezes it.
func (w *Writer) formatWorklistTab(ctx context.Context, spreadsheetID string, sheetID int64) error {
	requests := []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:       sheetID,
					StartRowIndex: 0,
					EndRowIndex:   1,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{
							Bold: true,
						},
						BackgroundColor: &sheets.Color{
							Red:   0.9,
							Green: 0.9,
							Blue:  0.9,
							Alpha: 1.0,
						},
					},
				},
				Fields: "userEnteredFormat.textFormat,userEnteredFormat.backgroundColor",
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId: sheetID,
					GridProperties: &sheets.GridProperties{
						FrozenRowCount: 1,
					},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	}

	batchUpdate := &sheets.BatchUpdateSpreadsheetRequest{Requests: requests}
	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, batchUpdate).Context(ctx).Do()
	return err
}

func worklistHeader() []any {
	return []any{
		"No.",
		"Name",
		"Days Since Last Seen",
		"Progress %",
		"Average Grade %",
		"Barriers",
		"Training Stage",
		"Engagement",
		"Progress Segment",
		"Composite",
	}
}

func worklistRow(l model.RankedLearner) []any {
	return []any{
		l.Rank,
		l.Name,
		cellInt(l.DaysSinceLastSeen),
		cellFloat(l.Progress),
		cellFloat(l.AverageGrade),
		l.BarrierDisplay(),
		l.Record.TrainingStage,
		l.Engagement.ShortLabel(),
		l.ProgressBand.ShortLabel(),
		l.Composite.Label(),
	}
}
