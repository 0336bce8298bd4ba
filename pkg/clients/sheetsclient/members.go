package sheetsclient

import (
	"fmt"
	"strings"

	"github.com/dcbc/crewboard/pkg/core/model"
)

// Expected column names in the member roster sheet
var memberFields = []string{
	"Member ID",
	"First name",
	"Last name",
	"Preferred name",
	"Squad",
	"Tags",
}

// ListMembers retrieves and parses the member roster from a spreadsheet tab.
// Boat memberships are not read; they follow from boat seat maps.
func (c *Client) ListMembers(spreadsheetID, tab string) ([]model.Member, error) {
	values, err := c.GetValues(spreadsheetID, tab)
	if err != nil {
		return nil, fmt.Errorf("failed to get member data: %w", err)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("spreadsheet is empty")
	}

	members, err := parseMembers(values)
	if err != nil {
		return nil, fmt.Errorf("failed to parse members: %w", err)
	}

	return members, nil
}

// parseMembers converts raw spreadsheet data into members. Tags are comma separated.
func parseMembers(raw [][]interface{}) ([]model.Member, error) {
	if len(raw) < 1 {
		return nil, fmt.Errorf("no header row found")
	}

	fieldIndexes := make(map[string]int)
	headerRow := raw[0]

	for _, field := range memberFields {
		index := findColumnIndex(headerRow, field)
		if index == -1 {
			return nil, fmt.Errorf("missing required field in header: %s", field)
		}
		fieldIndexes[field] = index
	}

	getField := func(field string, row []interface{}) string {
		index := fieldIndexes[field]
		if index >= len(row) {
			return ""
		}
		if str, ok := row[index].(string); ok {
			return strings.TrimSpace(str)
		}
		return ""
	}

	members := make([]model.Member, 0, len(raw)-1)
	seen := make(map[string]int)
	for i := 1; i < len(raw); i++ {
		row := raw[i]

		id := getField("Member ID", row)
		// Skip rows without an id
		if id == "" {
			continue
		}
		if previous, ok := seen[id]; ok {
			return nil, fmt.Errorf("member id %s appears in rows %d and %d", id, previous+1, i+1)
		}
		seen[id] = i

		members = append(members, model.Member{
			ID:            id,
			FirstName:     getField("First name", row),
			LastName:      getField("Last name", row),
			PreferredName: getField("Preferred name", row),
			Squad:         getField("Squad", row),
			Tags:          model.NewSet(strings.Split(getField("Tags", row), ",")...),
		})
	}

	return members, nil
}

// findColumnIndex returns the index of the named header cell, or -1
func findColumnIndex(header []interface{}, columnName string) int {
	for i, cell := range header {
		if cellStr, ok := cell.(string); ok && strings.TrimSpace(cellStr) == columnName {
			return i
		}
	}
	return -1
}
