package services

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"
)

// GoogleSheetWriter implements SheetWriter on the Sheets API v4.
type GoogleSheetWriter struct {
	svc *sheets.Service
}

var _ SheetWriter = (*GoogleSheetWriter)(nil)

func NewGoogleSheetWriter(svc *sheets.Service) *GoogleSheetWriter {
	return &GoogleSheetWriter{svc: svc}
}

func (w *GoogleSheetWriter) EnsureWorksheet(ctx context.Context, spreadsheetID, title string) error {
	spreadsheet, err := w.svc.Spreadsheets.Get(spreadsheetID).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("open spreadsheet %s: %w", spreadsheetID, err)
	}

	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties != nil && sheet.Properties.Title == title {
			_, err := w.svc.Spreadsheets.Values.
				Clear(spreadsheetID, title, &sheets.ClearValuesRequest{}).
				Context(ctx).Do()
			if err != nil {
				return fmt.Errorf("clear worksheet %s: %w", title, err)
			}
			return nil
		}
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{{
			AddSheet: &sheets.AddSheetRequest{
				Properties: &sheets.SheetProperties{Title: title},
			},
		}},
	}
	if _, err := w.svc.Spreadsheets.BatchUpdate(spreadsheetID, req).Context(ctx).Do(); err != nil {
		return fmt.Errorf("add worksheet %s: %w", title, err)
	}
	return nil
}

func (w *GoogleSheetWriter) WriteWorksheet(ctx context.Context, spreadsheetID, title string, values [][]interface{}) error {
	vr := &sheets.ValueRange{Values: values}
	_, err := w.svc.Spreadsheets.Values.
		Update(spreadsheetID, title+"!A1", vr).
		ValueInputOption("RAW").
		Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("write worksheet %s: %w", title, err)
	}
	return nil
}
