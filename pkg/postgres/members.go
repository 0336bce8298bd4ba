package postgres

import (
	"context"
	"fmt"

	"github.com/dcbc/crewboard/pkg/db"
)

const memberColumns = `id, first_name, last_name, preferred_name, squad, tags, boats, logbook_id, color`

func scanMember(row interface{ Scan(dest ...any) error }, m *db.MemberRecord) error {
	return row.Scan(&m.ID, &m.FirstName, &m.LastName, &m.PreferredName, &m.Squad, &m.Tags, &m.Boats, &m.LogbookID, &m.Color)
}

// GetMember retrieves a member by id
func (d *DB) GetMember(ctx context.Context, id string) (*db.MemberRecord, error) {
	var m db.MemberRecord
	row := d.pool.QueryRow(ctx, `SELECT `+memberColumns+` FROM member WHERE id = $1`, id)
	if err := scanMember(row, &m); err != nil {
		return nil, notFound(err, "member", id)
	}
	return &m, nil
}

// GetMembers retrieves all members ordered by id
func (d *DB) GetMembers(ctx context.Context) ([]db.MemberRecord, error) {
	rows, err := d.pool.Query(ctx, `SELECT `+memberColumns+` FROM member ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query members: %w", err)
	}
	defer rows.Close()

	var members []db.MemberRecord
	for rows.Next() {
		var m db.MemberRecord
		if err := scanMember(rows, &m); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		members = append(members, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating members: %w", err)
	}

	return members, nil
}

// UpsertMember inserts a member or replaces the existing record with the same id
func (d *DB) UpsertMember(ctx context.Context, m *db.MemberRecord) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO member (`+memberColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			first_name = EXCLUDED.first_name,
			last_name = EXCLUDED.last_name,
			preferred_name = EXCLUDED.preferred_name,
			squad = EXCLUDED.squad,
			tags = EXCLUDED.tags,
			boats = EXCLUDED.boats,
			logbook_id = EXCLUDED.logbook_id,
			color = EXCLUDED.color
	`, m.ID, m.FirstName, m.LastName, m.PreferredName, m.Squad, m.Tags, m.Boats, m.LogbookID, m.Color)
	if err != nil {
		return fmt.Errorf("failed to upsert member %s: %w", m.ID, err)
	}
	return nil
}
