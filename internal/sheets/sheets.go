// Package sheets mirrors monthly statements to a Google spreadsheet so
// users can keep working in a familiar surface.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"uangku/internal/core"
)

type Client struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewFromEnv builds a Sheets client from environment variables.
// Required: GOOGLE_SPREADSHEET_ID. Auth comes from
// GOOGLE_SERVICE_ACCOUNT_JSON, GOOGLE_SERVICE_ACCOUNT_FILE, or the
// standard GOOGLE_APPLICATION_CREDENTIALS path.
func NewFromEnv(ctx context.Context) (*Client, error) {
	spreadsheetID := strings.TrimSpace(os.Getenv("GOOGLE_SPREADSHEET_ID"))
	if spreadsheetID == "" {
		return nil, errors.New("missing GOOGLE_SPREADSHEET_ID")
	}
	sheetName := strings.TrimSpace(os.Getenv("GOOGLE_SHEET_NAME"))
	if sheetName == "" {
		sheetName = "Statement"
	}

	svc, err := newSheetsService(ctx)
	if err != nil {
		return nil, fmt.Errorf("sheets service: %w", err)
	}

	return &Client{svc: svc, spreadsheetID: spreadsheetID, sheetName: sheetName}, nil
}

func newSheetsService(ctx context.Context) (*gsheet.Service, error) {
	saJSON := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_JSON"))
	saFile := strings.TrimSpace(os.Getenv("GOOGLE_SERVICE_ACCOUNT_FILE"))
	if saJSON == "" && saFile == "" {
		saFile = strings.TrimSpace(os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"))
	}

	switch {
	case saJSON != "":
		return gsheet.NewService(ctx,
			goption.WithCredentialsJSON([]byte(saJSON)),
			goption.WithScopes(gsheet.SpreadsheetsScope))
	case saFile != "":
		return gsheet.NewService(ctx,
			goption.WithCredentialsFile(saFile),
			goption.WithScopes(gsheet.SpreadsheetsScope))
	default:
		// Application default credentials as a last resort.
		return gsheet.NewService(ctx, goption.WithScopes(gsheet.SpreadsheetsScope))
	}
}

// AppendStatement appends one row per transaction of the month. Rows are
// keyed by user and month so re-exports of the same month are easy to
// spot and clean up in the sheet.
func (c *Client) AppendStatement(ctx context.Context, userID, month string, txns []core.Transaction) error {
	values := make([][]any, 0, len(txns))
	for _, t := range txns {
		if !strings.HasPrefix(t.Date, month) {
			continue
		}
		values = append(values, []any{
			userID, month, t.ID, t.Date, t.Amount.Decimal(), string(t.Type), t.AccountID, t.Category, t.Note,
		})
	}
	if len(values) == 0 {
		return nil
	}

	vr := &gsheet.ValueRange{Values: values}
	_, err := c.svc.Spreadsheets.Values.
		Append(c.spreadsheetID, c.sheetName+"!A:I", vr).
		ValueInputOption("RAW").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("append statement rows: %w", err)
	}

	slog.InfoContext(ctx, "Mirrored statement to sheet",
		"user_id", userID, "month", month, "rows", len(values),
		"spreadsheet_id", c.spreadsheetID, "sheet", c.sheetName)
	return nil
}
