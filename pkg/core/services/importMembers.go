package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/dcbc/crewboard/pkg/core/model"
	"github.com/dcbc/crewboard/pkg/db"
)

// MemberSource lists the club roster from an external sheet
type MemberSource interface {
	ListMembers(spreadsheetID, tab string) ([]model.Member, error)
}

// ImportStore defines the database operations needed to import the roster
type ImportStore interface {
	GetMember(ctx context.Context, id string) (*db.MemberRecord, error)
	UpsertMember(ctx context.Context, member *db.MemberRecord) error
}

// ImportResult counts the members written by an import
type ImportResult struct {
	Created int
	Updated int
}

// ImportMembers upserts every member of the roster sheet.
// Names, squad and tags come from the sheet; boats, logbook id and colour are kept.
func ImportMembers(ctx context.Context, store ImportStore, source MemberSource, logger *zap.Logger, spreadsheetID, tab string) (*ImportResult, error) {
	if spreadsheetID == "" || tab == "" {
		return nil, fmt.Errorf("membersSheetID and membersTab must be configured to import members")
	}

	members, err := source.ListMembers(spreadsheetID, tab)
	if err != nil {
		return nil, fmt.Errorf("failed to list members: %w", err)
	}
	logger.Debug("Fetched roster", zap.Int("count", len(members)))

	result := &ImportResult{}
	for _, incoming := range members {
		m := incoming
		existing, err := store.GetMember(ctx, incoming.ID)
		switch {
		case err == nil:
			current := existing.ToModel()
			m.Boats = current.Boats
			m.LogbookID = current.LogbookID
			m.Color = current.Color
			result.Updated++
		case isNotFound(err):
			m.Boats = nil
			result.Created++
		default:
			return nil, fmt.Errorf("failed to fetch member %s: %w", incoming.ID, err)
		}

		record := db.MemberRecordFrom(m)
		if err := store.UpsertMember(ctx, &record); err != nil {
			return nil, fmt.Errorf("failed to save member %s: %w", m.ID, err)
		}
	}

	logger.Info("Members imported", zap.Int("created", result.Created), zap.Int("updated", result.Updated))
	return result, nil
}
