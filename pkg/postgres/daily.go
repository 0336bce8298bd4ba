package postgres

import (
	"context"
	"fmt"

	"github.com/dcbc/crewboard/pkg/db"
)

// Dates are scanned back as YYYY-MM-DD text
const dailyColumns = `date::text, user_data, races, events`

func scanDaily(row interface{ Scan(dest ...any) error }, r *db.DailyRecord) error {
	return row.Scan(&r.Date, &r.UserData, &r.Races, &r.Events)
}

// GetDaily retrieves the daily record for a YYYY-MM-DD date
func (d *DB) GetDaily(ctx context.Context, date string) (*db.DailyRecord, error) {
	var r db.DailyRecord
	row := d.pool.QueryRow(ctx, `SELECT `+dailyColumns+` FROM daily WHERE date = $1::date`, date)
	if err := scanDaily(row, &r); err != nil {
		return nil, notFound(err, "daily", date)
	}
	return &r, nil
}

// GetDailiesBetween retrieves daily records within [from, to], ordered by date
func (d *DB) GetDailiesBetween(ctx context.Context, from, to string) ([]db.DailyRecord, error) {
	rows, err := d.pool.Query(ctx, `
		SELECT `+dailyColumns+`
		FROM daily
		WHERE date >= $1::date AND date <= $2::date
		ORDER BY date
	`, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to query dailies: %w", err)
	}
	defer rows.Close()

	var dailies []db.DailyRecord
	for rows.Next() {
		var r db.DailyRecord
		if err := scanDaily(rows, &r); err != nil {
			return nil, fmt.Errorf("failed to scan daily: %w", err)
		}
		dailies = append(dailies, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating dailies: %w", err)
	}

	return dailies, nil
}

// UpsertDaily inserts a daily record or replaces the existing record for the same date
func (d *DB) UpsertDaily(ctx context.Context, r *db.DailyRecord) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO daily (date, user_data, races, events)
		VALUES ($1::date, $2, $3, $4)
		ON CONFLICT (date) DO UPDATE SET
			user_data = EXCLUDED.user_data,
			races = EXCLUDED.races,
			events = EXCLUDED.events
	`, r.Date, r.UserData, r.Races, r.Events)
	if err != nil {
		return fmt.Errorf("failed to upsert daily %s: %w", r.Date, err)
	}
	return nil
}
