package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dcbc/crewboard/pkg/clients/sheetsclient"
	"github.com/dcbc/crewboard/pkg/core/crew"
	"github.com/dcbc/crewboard/pkg/core/model"
	"github.com/dcbc/crewboard/pkg/core/outings"
	"github.com/dcbc/crewboard/pkg/db"
)

// PublishStore defines the database operations needed to publish a week of outings
type PublishStore interface {
	GetMembers(ctx context.Context) ([]db.MemberRecord, error)
	GetBoats(ctx context.Context) ([]db.BoatRecord, error)
	GetOutingsBetween(ctx context.Context, from, to time.Time) ([]db.OutingRecord, error)
}

// OutingsPublisher writes a week of outings to a spreadsheet
type OutingsPublisher interface {
	PublishOutings(spreadsheetID string, week *sheetsclient.PublishedWeek) error
}

// PublishOutings publishes every outing in the week containing day to its own tab
func PublishOutings(ctx context.Context, store PublishStore, publisher OutingsPublisher, logger *zap.Logger, spreadsheetID string, day time.Time) (*sheetsclient.PublishedWeek, error) {
	if spreadsheetID == "" {
		return nil, fmt.Errorf("outingsSheetID must be configured to publish outings")
	}

	from, to := outings.WeekOf(day)
	logger.Debug("Publishing outings", zap.Time("week_start", from))

	dir, err := loadDirectory(ctx, store)
	if err != nil {
		return nil, err
	}

	boats, err := loadBoats(ctx, store)
	if err != nil {
		return nil, err
	}

	records, err := store.GetOutingsBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch outings: %w", err)
	}

	week := &sheetsclient.PublishedWeek{WeekStart: from}
	for _, seat := range model.Seats {
		week.SeatNames = append(week.SeatNames, seatTitle(seat))
	}

	for _, d := range decodeOutings(records, logger) {
		var boat *model.Boat
		if b, ok := boats[d.BoatName]; ok {
			boat = &b
		}
		v := resolveView(d, boat, dir, logger)
		week.Rows = append(week.Rows, publishedRow(v))
	}

	if err := publisher.PublishOutings(spreadsheetID, week); err != nil {
		return nil, fmt.Errorf("failed to publish outings: %w", err)
	}

	logger.Info("Outings published",
		zap.String("tab", week.TabTitle()),
		zap.Int("outings", len(week.Rows)))

	return week, nil
}

func publishedRow(v OutingView) sheetsclient.PublishedOutingRow {
	o := v.Outing
	row := sheetsclient.PublishedOutingRow{
		Date:  o.DateTime.Format("Mon Jan 02 2006"),
		Time:  o.DateTime.Format("15:04"),
		Boat:  o.BoatName,
		Coach: o.Coach,
		Notes: o.Notes,
		Seats: make([]string, len(model.Seats)),
	}

	if v.Crew == nil {
		row.Notes = strings.TrimSpace(row.Notes + " (crew unavailable)")
		return row
	}

	index := make(map[model.Seat]int, len(model.Seats))
	for i, seat := range model.Seats {
		index[seat] = i
	}
	for _, line := range v.Crew.Lines {
		row.Seats[index[line.Seat]] = seatCell(line)
	}
	row.Covers = strings.Join(v.Crew.UnseatedCoverNames(), ", ")
	return row
}

// seatCell shows the rostered member, annotated with their substitute
func seatCell(line crew.SeatLine) string {
	if line.SubstituteID == "" {
		return line.MemberName
	}
	return fmt.Sprintf("%s (sub: %s)", line.MemberName, line.SubstituteName)
}

func seatTitle(s model.Seat) string {
	name := string(s)
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}
