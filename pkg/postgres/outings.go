package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dcbc/crewboard/pkg/db"
)

const outingColumns = `id, date_time, boat_name, scratch, set_crew, subs, shell, coach, time_type, notes`

func scanOuting(row interface{ Scan(dest ...any) error }, o *db.OutingRecord) error {
	if err := row.Scan(&o.ID, &o.DateTime, &o.BoatName, &o.Scratch, &o.SetCrew, &o.Subs, &o.Shell, &o.Coach, &o.TimeType, &o.Notes); err != nil {
		return err
	}
	o.DateTime = o.DateTime.UTC()
	return nil
}

// GetOuting retrieves an outing by id
func (d *DB) GetOuting(ctx context.Context, id string) (*db.OutingRecord, error) {
	var o db.OutingRecord
	row := d.pool.QueryRow(ctx, `SELECT `+outingColumns+` FROM outing WHERE id = $1`, id)
	if err := scanOuting(row, &o); err != nil {
		return nil, notFound(err, "outing", id)
	}
	return &o, nil
}

// GetOutingsBetween retrieves outings dated within [from, to], ordered by date-time
func (d *DB) GetOutingsBetween(ctx context.Context, from, to time.Time) ([]db.OutingRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+outingColumns+`
		FROM outing
		WHERE date_time >= $1 AND date_time <= $2
		ORDER BY date_time, id
	`, from.UTC(), to.UTC())
	if err != nil {
		return nil, fmt.Errorf("failed to query outings: %w", err)
	}
	defer rows.Close()

	var outings []db.OutingRecord
	for rows.Next() {
		var o db.OutingRecord
		if err := scanOuting(rows, &o); err != nil {
			return nil, fmt.Errorf("failed to scan outing: %w", err)
		}
		outings = append(outings, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating outings: %w", err)
	}

	return outings, nil
}

// UpsertOuting inserts an outing or replaces the existing record with the same id
func (d *DB) UpsertOuting(ctx context.Context, o *db.OutingRecord) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO outing (`+outingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			date_time = EXCLUDED.date_time,
			boat_name = EXCLUDED.boat_name,
			scratch = EXCLUDED.scratch,
			set_crew = EXCLUDED.set_crew,
			subs = EXCLUDED.subs,
			shell = EXCLUDED.shell,
			coach = EXCLUDED.coach,
			time_type = EXCLUDED.time_type,
			notes = EXCLUDED.notes
	`, o.ID, o.DateTime.UTC(), o.BoatName, o.Scratch, o.SetCrew, o.Subs, o.Shell, o.Coach, o.TimeType, o.Notes)
	if err != nil {
		return fmt.Errorf("failed to upsert outing %s: %w", o.ID, err)
	}
	return nil
}

// DeleteOuting removes an outing, returning db.ErrNotFound if it does not exist
func (d *DB) DeleteOuting(ctx context.Context, id string) error {
	tag, err := d.pool.Exec(ctx, `DELETE FROM outing WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete outing %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("outing %q: %w", id, db.ErrNotFound)
	}
	return nil
}
