package sheets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"github.com/techania/learner-segmentation-dashboard/internal/common"
	"github.com/techania/learner-segmentation-dashboard/internal/model"
	"github.com/techania/learner-segmentation-dashboard/internal/service"
)

// Writer publishes a segmentation snapshot to Google Sheets. It implements
// the service.ReportWriter interface.
type Writer struct {
	service *sheets.Service
	logger  *slog.Logger
	config  Config

	// Progress, when set, is invoked after each written batch with the
	// number of rows written so far and the total row count.
	Progress func(written, total int)
}

// NewWriter creates a Google Sheets report writer.
func NewWriter(ctx context.Context, config Config, logger *slog.Logger) (*Writer, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	svc, err := createSheetsService(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheets service: %w", err)
	}

	return &Writer{
		config:  config,
		service: svc,
		logger:  logger,
	}, nil
}

// Write publishes the snapshot: a report sheet with summary, worklist, and
// full cohort sections, plus a dedicated Worklist tab.
func (w *Writer) Write(ctx context.Context, snapshot *model.Snapshot) error {
	w.logger.Info("starting report upload",
		"learners", len(snapshot.Learners),
		"worklist", len(snapshot.Worklist),
		"as_of", snapshot.ReferenceDate.Format("2006-01-02"))

	spreadsheetID, err := w.getOrCreateSpreadsheet(ctx)
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet: %w", err)
	}

	if clearErr := w.clearSheet(ctx, spreadsheetID); clearErr != nil {
		return fmt.Errorf("failed to clear sheet: %w", clearErr)
	}

	values := w.prepareReportData(snapshot)

	retryOpts := service.RetryOptions{
		MaxAttempts:  w.config.RetryAttempts,
		InitialDelay: w.config.RetryDelay,
		MaxDelay:     30 * time.Second,
		Multiplier:   2.0,
	}

	err = common.WithRetry(ctx, func() error {
		return w.writeData(ctx, spreadsheetID, values)
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	err = common.WithRetry(ctx, func() error {
		return w.writeWorklistTab(ctx, spreadsheetID, snapshot)
	}, retryOpts)
	if err != nil {
		return fmt.Errorf("failed to write worklist tab: %w", err)
	}

	if w.config.EnableFormatting {
		err = common.WithRetry(ctx, func() error {
			return w.applyFormatting(ctx, spreadsheetID, len(values))
		}, retryOpts)
		if err != nil {
			// Formatting is cosmetic; the data is already in place.
			w.logger.Warn("failed to apply formatting", "error", err)
		}
	}

	w.logger.Info("report upload completed",
		"spreadsheet_id", spreadsheetID,
		"rows_written", len(values))

	return nil
}

// createSheetsService builds the API client from whichever auth method the
// config carries: a service account key, a configured refresh token, or a
// token file from a previous interactive login.
func createSheetsService(ctx context.Context, config Config) (*sheets.Service, error) {
	var tokenSource oauth2.TokenSource

	switch {
	case config.ServiceAccountPath != "":
		jsonKey, err := os.ReadFile(config.ServiceAccountPath) // #nosec G304
		if err != nil {
			return nil, fmt.Errorf("unable to read service account key file: %w", err)
		}

		jwtConfig, err := google.JWTConfigFromJSON(jsonKey, sheets.SpreadsheetsScope)
		if err != nil {
			return nil, fmt.Errorf("unable to parse service account key: %w", err)
		}

		tokenSource = jwtConfig.TokenSource(ctx)

	case config.RefreshToken != "":
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}
		token := &oauth2.Token{
			RefreshToken: config.RefreshToken,
			TokenType:    "Bearer",
		}
		tokenSource = oauthConfig.TokenSource(ctx, token)

	default:
		token, err := GetOrCreateToken(ctx, OAuth2Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			TokenFile:    config.TokenFile,
		})
		if err != nil {
			return nil, fmt.Errorf("unable to obtain OAuth2 token: %w", err)
		}
		oauthConfig := &oauth2.Config{
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{sheets.SpreadsheetsScope},
		}
		tokenSource = oauthConfig.TokenSource(ctx, token)
	}

	httpClient := oauth2.NewClient(ctx, tokenSource)
	srv, err := sheets.NewService(ctx, option.WithHTTPClient(httpClient))
	if err != nil {
		return nil, fmt.Errorf("unable to create sheets service: %w", err)
	}

	return srv, nil
}

// getOrCreateSpreadsheet verifies the configured spreadsheet or creates a
// new one named after the config.
func (w *Writer) getOrCreateSpreadsheet(ctx context.Context) (string, error) {
	if w.config.SpreadsheetID != "" {
		_, err := w.service.Spreadsheets.Get(w.config.SpreadsheetID).Context(ctx).Do()
		if err != nil {
			return "", fmt.Errorf("unable to access spreadsheet %s: %w", w.config.SpreadsheetID, err)
		}
		return w.config.SpreadsheetID, nil
	}

	spreadsheet := &sheets.Spreadsheet{
		Properties: &sheets.SpreadsheetProperties{
			Title:    w.config.SpreadsheetName,
			TimeZone: w.config.TimeZone,
		},
		Sheets: []*sheets.Sheet{
			{
				Properties: &sheets.SheetProperties{
					Title: "Report",
				},
			},
		},
	}

	created, err := w.service.Spreadsheets.Create(spreadsheet).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("unable to create spreadsheet: %w", err)
	}

	w.logger.Info("created new spreadsheet",
		"id", created.SpreadsheetId,
		"url", created.SpreadsheetUrl)

	return created.SpreadsheetId, nil
}

// clearSheet clears the report sheet before a fresh write.
func (w *Writer) clearSheet(ctx context.Context, spreadsheetID string) error {
	_, err := w.service.Spreadsheets.Values.Clear(spreadsheetID, "A:Z", &sheets.ClearValuesRequest{}).Context(ctx).Do()
	return err
}

// prepareReportData lays out the report sheet: title, summary, segment
// breakdown, priority worklist, and the full cohort. Unknown values become
// empty cells.
func (w *Writer) prepareReportData(snapshot *model.Snapshot) [][]any {
	// Title(2) + summary(5) + breakdown header(2) + segments + worklist
	// header(4) + worklist + cohort header(4) + learners.
	estimatedRows := 17 + len(snapshot.Summary.Segments) + len(snapshot.Worklist) + len(snapshot.Learners)
	values := make([][]any, 0, estimatedRows)

	values = append(values,
		[]any{
			"Learner Risk Report",
			fmt.Sprintf("As of %s", snapshot.ReferenceDate.Format("Jan 2, 2006")),
		},
		[]any{},
		[]any{"Summary"},
		[]any{"Total Learners", snapshot.Summary.Total},
		[]any{"On Worklist", len(snapshot.Worklist)},
		[]any{},
		[]any{"Segment Breakdown"},
		[]any{"Segment", "Count", "Share %"},
	)

	for _, stat := range snapshot.Summary.Segments {
		values = append(values, []any{
			stat.Segment.Label(),
			stat.Count,
			stat.Share,
		})
	}

	values = append(values,
		[]any{},
		[]any{},
		[]any{"Priority Worklist"},
		worklistHeader(),
	)
	for _, l := range snapshot.Worklist {
		values = append(values, worklistRow(l))
	}

	values = append(values,
		[]any{},
		[]any{},
		[]any{"Cohort Detail"},
		[]any{
			"Name",
			"Last Seen",
			"Days Since Last Seen",
			"Progress %",
			"Average Grade %",
			"Barriers",
			"Training Stage",
			"Engagement",
			"Progress Segment",
			"Composite",
		})

	for i := range snapshot.Learners {
		l := &snapshot.Learners[i]
		values = append(values, []any{
			l.Name,
			cellDate(l.LastSeen),
			cellInt(l.DaysSinceLastSeen),
			cellFloat(l.Progress),
			cellFloat(l.AverageGrade),
			l.BarrierDisplay(),
			l.Record.TrainingStage,
			l.Engagement.ShortLabel(),
			l.ProgressBand.ShortLabel(),
			l.Composite.Label(),
		})
	}

	return values
}

// writeData writes the rows in batches to stay under API limits.
func (w *Writer) writeData(ctx context.Context, spreadsheetID string, values [][]any) error {
	for i := 0; i < len(values); i += w.config.BatchSize {
		end := i + w.config.BatchSize
		if end > len(values) {
			end = len(values)
		}

		batch := values[i:end]
		valueRange := &sheets.ValueRange{
			Values: batch,
		}

		rangeStr := fmt.Sprintf("A%d", i+1)
		_, err := w.service.Spreadsheets.Values.Update(spreadsheetID, rangeStr, valueRange).
			ValueInputOption("USER_ENTERED").
			Context(ctx).
			Do()
		if err != nil {
			return fmt.Errorf("failed to write batch starting at row %d: %w", i+1, err)
		}

		w.logger.Debug("wrote batch", "start_row", i+1, "rows", len(batch))
		if w.Progress != nil {
			w.Progress(end, len(values))
		}
	}

	return nil
}

// applyFormatting styles the report sheet: large title, bold section labels,
// sized columns, frozen header rows.
func (w *Writer) applyFormatting(ctx context.Context, spreadsheetID string, totalRows int) error {
	requests := []*sheets.Request{
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          0,
					StartRowIndex:    0,
					EndRowIndex:      1,
					StartColumnIndex: 0,
					EndColumnIndex:   2,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{
							Bold:     true,
							FontSize: 16,
						},
					},
				},
				Fields: "userEnteredFormat.textFormat",
			},
		},
		{
			RepeatCell: &sheets.RepeatCellRequest{
				Range: &sheets.GridRange{
					SheetId:          0,
					StartRowIndex:    2,
					EndRowIndex:      int64(totalRows),
					StartColumnIndex: 0,
					EndColumnIndex:   1,
				},
				Cell: &sheets.CellData{
					UserEnteredFormat: &sheets.CellFormat{
						TextFormat: &sheets.TextFormat{
							Bold: true,
						},
					},
				},
				Fields: "userEnteredFormat.textFormat",
			},
		},
		{
			AutoResizeDimensions: &sheets.AutoResizeDimensionsRequest{
				Dimensions: &sheets.DimensionRange{
					SheetId:    0,
					Dimension:  "COLUMNS",
					StartIndex: 0,
					EndIndex:   10,
				},
			},
		},
		{
			UpdateSheetProperties: &sheets.UpdateSheetPropertiesRequest{
				Properties: &sheets.SheetProperties{
					SheetId: 0,
					GridProperties: &sheets.GridProperties{
						FrozenRowCount: 2,
					},
				},
				Fields: "gridProperties.frozenRowCount",
			},
		},
	}

	batchUpdate := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: requests,
	}

	_, err := w.service.Spreadsheets.BatchUpdate(spreadsheetID, batchUpdate).Context(ctx).Do()
	return err
}

func cellInt(v *int) any {
	if v == nil {
		return ""
	}
	return *v
}

func cellFloat(v *float64) any {
	if v == nil {
		return ""
	}
	return *v
}

func cellDate(v *time.Time) any {
	if v == nil {
		return ""
	}
	return v.Format("2006-01-02")
}
