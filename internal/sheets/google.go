package sheets

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

const spreadsheetMimeType = "application/vnd.google-apps.spreadsheet"

// GoogleClient writes to Google Sheets using a service account.
type GoogleClient struct {
	sheets *sheetsapi.Service
	drive  *drive.Service
}

// NewGoogleClient authenticates with a service-account key file.
func NewGoogleClient(ctx context.Context, credentialsFile string) (*GoogleClient, error) {
	opts := []option.ClientOption{
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(sheetsapi.SpreadsheetsScope, drive.DriveMetadataReadonlyScope),
	}
	return newGoogleClient(ctx, opts, opts)
}

func newGoogleClient(ctx context.Context, sheetsOpts, driveOpts []option.ClientOption) (*GoogleClient, error) {
	sh, err := sheetsapi.NewService(ctx, sheetsOpts...)
	if err != nil {
		return nil, externalError("authenticate", fmt.Errorf("sheets service: %w", err))
	}
	dr, err := drive.NewService(ctx, driveOpts...)
	if err != nil {
		return nil, externalError("authenticate", fmt.Errorf("drive service: %w", err))
	}
	return &GoogleClient{sheets: sh, drive: dr}, nil
}

// BatchWrite resolves the spreadsheet by name and applies all writes in one
// values.batchUpdate request.
func (c *GoogleClient) BatchWrite(ctx context.Context, target Target, writes []CellWrite) error {
	id, err := c.spreadsheetID(ctx, target.Spreadsheet)
	if err != nil {
		return err
	}

	data := make([]*sheetsapi.ValueRange, 0, len(writes))
	for _, w := range writes {
		data = append(data, &sheetsapi.ValueRange{
			Range:  A1(target.Worksheet, w.Cell),
			Values: [][]interface{}{{w.Value.Interface()}},
		})
	}
	req := &sheetsapi.BatchUpdateValuesRequest{
		ValueInputOption: "USER_ENTERED",
		Data:             data,
	}
	if _, err := c.sheets.Spreadsheets.Values.BatchUpdate(id, req).Context(ctx).Do(); err != nil {
		return externalError("write", err)
	}
	return nil
}

// spreadsheetID finds the spreadsheet the service account can see by exact name.
func (c *GoogleClient) spreadsheetID(ctx context.Context, name string) (string, error) {
	q := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false", escapeQuery(name), spreadsheetMimeType)
	list, err := c.drive.Files.List().
		Q(q).
		Fields("files(id, name)").
		PageSize(10).
		SupportsAllDrives(true).
		IncludeItemsFromAllDrives(true).
		Context(ctx).
		Do()
	if err != nil {
		return "", externalError("lookup", err)
	}
	if len(list.Files) == 0 {
		return "", externalError("lookup", fmt.Errorf("spreadsheet %q not found or not shared with the service account", name))
	}
	return list.Files[0].Id, nil
}

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}
