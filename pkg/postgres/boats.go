package postgres

import (
	"context"
	"fmt"

	"github.com/dcbc/crewboard/pkg/db"
)

const boatColumns = `name, cox, stroke, seven, six, five, four, three, two, bow, crew_type, shell, active, tags`

func scanBoat(row interface{ Scan(dest ...any) error }, b *db.BoatRecord) error {
	return row.Scan(&b.Name, &b.Cox, &b.Stroke, &b.Seven, &b.Six, &b.Five, &b.Four, &b.Three, &b.Two, &b.Bow,
		&b.CrewType, &b.Shell, &b.Active, &b.Tags)
}

// GetBoat retrieves a boat by name
func (d *DB) GetBoat(ctx context.Context, name string) (*db.BoatRecord, error) {
	var b db.BoatRecord
	row := d.pool.QueryRow(ctx, `SELECT `+boatColumns+` FROM boat WHERE name = $1`, name)
	if err := scanBoat(row, &b); err != nil {
		return nil, notFound(err, "boat", name)
	}
	return &b, nil
}

// GetBoats retrieves all boats, active and inactive, ordered by name
func (d *DB) GetBoats(ctx context.Context) ([]db.BoatRecord, error) {
	rows, err := d.pool.Query(ctx, `SELECT `+boatColumns+` FROM boat ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query boats: %w", err)
	}
	defer rows.Close()

	var boats []db.BoatRecord
	for rows.Next() {
		var b db.BoatRecord
		if err := scanBoat(rows, &b); err != nil {
			return nil, fmt.Errorf("failed to scan boat: %w", err)
		}
		boats = append(boats, b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating boats: %w", err)
	}

	return boats, nil
}

// UpsertBoat inserts a boat or replaces the existing record with the same name
func (d *DB) UpsertBoat(ctx context.Context, b *db.BoatRecord) error {
	_, err := d.pool.Exec(ctx, `
		INSERT INTO boat (`+boatColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		ON CONFLICT (name) DO UPDATE SET
			cox = EXCLUDED.cox,
			stroke = EXCLUDED.stroke,
			seven = EXCLUDED.seven,
			six = EXCLUDED.six,
			five = EXCLUDED.five,
			four = EXCLUDED.four,
			three = EXCLUDED.three,
			two = EXCLUDED.two,
			bow = EXCLUDED.bow,
			crew_type = EXCLUDED.crew_type,
			shell = EXCLUDED.shell,
			active = EXCLUDED.active,
			tags = EXCLUDED.tags
	`, b.Name, b.Cox, b.Stroke, b.Seven, b.Six, b.Five, b.Four, b.Three, b.Two, b.Bow, b.CrewType, b.Shell, b.Active, b.Tags)
	if err != nil {
		return fmt.Errorf("failed to upsert boat %s: %w", b.Name, err)
	}
	return nil
}
