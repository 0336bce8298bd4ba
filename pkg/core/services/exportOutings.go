package services

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/dcbc/crewboard/pkg/ics"
)

// DefaultOutingLength is the duration given to exported outings
const DefaultOutingLength = 90 * time.Minute

// ExportOutings writes the viewer's own and covering outings in [from, to] to w as iCalendar
func ExportOutings(ctx context.Context, store ViewOutingsStore, logger *zap.Logger, viewerID string, from, to time.Time, w io.Writer) (int, error) {
	view, err := ViewOutings(ctx, store, logger, viewerID, from, to)
	if err != nil {
		return 0, err
	}

	var entries []ics.Entry
	for _, v := range view.Mine {
		entries = append(entries, icsEntry(v, ""))
	}
	for _, v := range view.Covering {
		entries = append(entries, icsEntry(v, " (covering)"))
	}

	name := fmt.Sprintf("%s outings", view.Viewer.DisplayName)
	if err := ics.Write(w, name, entries, time.Now()); err != nil {
		return 0, err
	}

	logger.Info("Outings exported",
		zap.String("viewer_id", viewerID),
		zap.Int("mine", len(view.Mine)),
		zap.Int("covering", len(view.Covering)))

	return len(entries), nil
}

func icsEntry(v OutingView, suffix string) ics.Entry {
	o := v.Outing
	entry := ics.Entry{
		UID:     o.ID + "@crewboard",
		Start:   o.DateTime,
		End:     o.DateTime.Add(DefaultOutingLength),
		Summary: o.BoatName + " outing" + suffix,
	}

	var lines []string
	if o.Shell != "" {
		lines = append(lines, "Shell: "+o.Shell)
	}
	if o.Coach != "" {
		lines = append(lines, "Coach: "+o.Coach)
	}
	if v.Crew != nil {
		for _, line := range v.Crew.Lines {
			lines = append(lines, fmt.Sprintf("%s: %s", seatTitle(line.Seat), seatCell(line)))
		}
		if covers := v.Crew.UnseatedCoverNames(); len(covers) > 0 {
			lines = append(lines, "Covers: "+strings.Join(covers, ", "))
		}
	}
	if o.Notes != "" {
		lines = append(lines, o.Notes)
	}
	entry.Description = strings.Join(lines, "\n")
	return entry
}
