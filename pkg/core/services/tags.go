package services

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/dcbc/crewboard/pkg/core/model"
	"github.com/dcbc/crewboard/pkg/db"
)

// TagStore defines the database operations needed to manage member tags
type TagStore interface {
	GetMember(ctx context.Context, id string) (*db.MemberRecord, error)
	UpsertMember(ctx context.Context, member *db.MemberRecord) error
}

// SetMemberTags replaces a member's tags
func SetMemberTags(ctx context.Context, store TagStore, logger *zap.Logger, memberID string, tags []string) (*model.Member, error) {
	record, err := store.GetMember(ctx, memberID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch member: %w", err)
	}

	m := record.ToModel()
	m.Tags = model.NewSet(tags...)

	updated := db.MemberRecordFrom(m)
	if err := store.UpsertMember(ctx, &updated); err != nil {
		return nil, fmt.Errorf("failed to save member tags: %w", err)
	}

	logger.Info("Member tags updated", zap.String("member_id", memberID), zap.Strings("tags", m.Tags))
	return &m, nil
}

// ListTags returns every distinct member tag in use, sorted, with the number of members holding it
func ListTags(ctx context.Context, store MemberLister, logger *zap.Logger) ([]TagCount, error) {
	members, err := loadMembers(ctx, store)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, m := range members {
		for _, tag := range m.Tags {
			counts[tag]++
		}
	}

	tags := make([]TagCount, 0, len(counts))
	for tag, n := range counts {
		tags = append(tags, TagCount{Tag: tag, Members: n})
	}
	sort.Slice(tags, func(i, j int) bool { return tags[i].Tag < tags[j].Tag })

	logger.Debug("Listed tags", zap.Int("count", len(tags)))
	return tags, nil
}

// TagCount is a tag with the number of members holding it
type TagCount struct {
	Tag     string
	Members int
}
