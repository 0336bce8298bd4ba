package sheetsclient

import (
	"fmt"
	"time"

	"google.golang.org/api/sheets/v4"
)

// PublishedOutingRow represents a single outing in a published week
type PublishedOutingRow struct {
	Date   string // Format: "Mon Jan 02 2006"
	Time   string // Format: "15:04"
	Boat   string
	Coach  string
	Seats  []string // One cell per seat, in the order of PublishedWeek.SeatNames
	Covers string
	Notes  string
}

// PublishedWeek represents one week of outings
type PublishedWeek struct {
	WeekStart time.Time
	SeatNames []string
	Rows      []PublishedOutingRow
}

// TabTitle returns the tab name for the week, e.g. "Week of Mon May 06 2024"
func (w *PublishedWeek) TabTitle() string {
	return "Week of " + w.WeekStart.Format("Mon Jan 02 2006")
}

// PublishOutings writes a week of outings to its own tab, creating the tab if needed.
// An existing tab is cleared and rewritten.
func (c *Client) PublishOutings(spreadsheetID string, week *PublishedWeek) error {
	tabTitle := week.TabTitle()

	// Get spreadsheet metadata to check if the week's tab already exists
	spreadsheet, err := c.service.Spreadsheets.Get(spreadsheetID).Do()
	if err != nil {
		return fmt.Errorf("failed to get spreadsheet metadata: %w", err)
	}

	exists := false
	for _, sheet := range spreadsheet.Sheets {
		if sheet.Properties.Title == tabTitle {
			exists = true
			break
		}
	}

	// Republishing a week replaces its contents rather than appending
	if exists {
		_, err := c.service.Spreadsheets.Values.Clear(spreadsheetID, tabTitle, &sheets.ClearValuesRequest{}).Do()
		if err != nil {
			return fmt.Errorf("failed to clear existing tab: %w", err)
		}
	} else if _, err := c.CreateSheet(spreadsheetID, tabTitle); err != nil {
		return fmt.Errorf("failed to create tab: %w", err)
	}

	// Write the header and outing rows starting at A1
	valueRange := &sheets.ValueRange{
		Values: buildWeekValues(week),
	}

	_, err = c.service.Spreadsheets.Values.Update(
		spreadsheetID,
		fmt.Sprintf("%s!A1", tabTitle),
		valueRange,
	).ValueInputOption("RAW").Do()
	if err != nil {
		return fmt.Errorf("failed to write outings to tab: %w", err)
	}

	return nil
}

// buildWeekValues lays out the header row followed by one row per outing
func buildWeekValues(week *PublishedWeek) [][]interface{} {
	header := []interface{}{"Date", "Time", "Boat", "Coach"}
	for _, seat := range week.SeatNames {
		header = append(header, seat)
	}
	header = append(header, "Covers", "Notes")

	values := [][]interface{}{header}
	for _, row := range week.Rows {
		sheetRow := []interface{}{row.Date, row.Time, row.Boat, row.Coach}
		// pad short crews so Covers and Notes stay in their columns
		for i := range week.SeatNames {
			if i < len(row.Seats) {
				sheetRow = append(sheetRow, row.Seats[i])
			} else {
				sheetRow = append(sheetRow, "")
			}
		}
		sheetRow = append(sheetRow, row.Covers, row.Notes)
		values = append(values, sheetRow)
	}
	return values
}
