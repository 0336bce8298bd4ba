package postgres

import (
	"context"
	"fmt"

	"github.com/dcbc/crewboard/pkg/db"
)

const eventColumns = `id, name, date::text, type, crews`

func scanEvent(row interface{ Scan(dest ...any) error }, e *db.EventRecord) error {
	return row.Scan(&e.ID, &e.Name, &e.Date, &e.Type, &e.Crews)
}

// GetEvent retrieves a race or event by id
func (d *DB) GetEvent(ctx context.Context, id string) (*db.EventRecord, error) {
	var e db.EventRecord
	row := d.pool.QueryRow(ctx, `SELECT `+eventColumns+` FROM event WHERE id = $1`, id)
	if err := scanEvent(row, &e); err != nil {
		return nil, notFound(err, "event", id)
	}
	return &e, nil
}

// GetEvents retrieves all races and events ordered by date then name
func (d *DB) GetEvents(ctx context.Context) ([]db.EventRecord, error) {
	rows, err := d.pool.Query(ctx, `SELECT `+eventColumns+` FROM event ORDER BY date, name, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query events: %w", err)
	}
	defer rows.Close()

	var events []db.EventRecord
	for rows.Next() {
		var e db.EventRecord
		if err := scanEvent(rows, &e); err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating events: %w", err)
	}

	return events, nil
}

// UpsertEvent inserts an event or replaces the existing record with the same id
func (d *DB) UpsertEvent(ctx context.Context, e *db.EventRecord) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO event (id, name, date, type, crews)
		VALUES ($1, $2, $3::date, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			date = EXCLUDED.date,
			type = EXCLUDED.type,
			crews = EXCLUDED.crews
	`, e.ID, e.Name, e.Date, e.Type, e.Crews)
	if err != nil {
		return fmt.Errorf("failed to upsert event %s: %w", e.ID, err)
	}
	return nil
}

// DeleteEvent removes an event, returning db.ErrNotFound if it does not exist
func (d *DB) DeleteEvent(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM event WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("event %q: %w", id, db.ErrNotFound)
	}
	return nil
}
