package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/dcbc/crewboard/pkg/db"
)

const (
	memberColumns = `id, first_name, last_name, preferred_name, squad, tags, boats, logbook_id, color`
	boatColumns   = `name, cox, stroke, seven, six, five, four, three, two, bow, crew_type, shell, active, tags`
	outingColumns = `id, date_time, boat_name, scratch, set_crew, subs, shell, coach, time_type, notes`
	dailyColumns  = `date, user_data, races, events`
	eventColumns  = `id, name, date, type, crews`
)

func scanMember(row scanner, m *db.MemberRecord) error {
	return row.Scan(&m.ID, &m.FirstName, &m.LastName, &m.PreferredName, &m.Squad, &m.Tags, &m.Boats, &m.LogbookID, &m.Color)
}

func (d *DB) GetMember(ctx context.Context, id string) (*db.MemberRecord, error) {
	var m db.MemberRecord
	row := d.sql.QueryRowContext(ctx, `SELECT `+memberColumns+` FROM member WHERE id = ?`, id)
	if err := scanMember(row, &m); err != nil {
		return nil, notFound(err, "member", id)
	}
	return &m, nil
}

func (d *DB) GetMembers(ctx context.Context) ([]db.MemberRecord, error) {
	rows, err := d.sql.QueryContext(ctx, `SELECT `+memberColumns+` FROM member ORDER BY id`)
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
	return members, rows.Err()
}

func (d *DB) UpsertMember(ctx context.Context, m *db.MemberRecord) error {
	_, err := d.sql.ExecContext(ctx, `
		INSERT INTO member (`+memberColumns+`)
		VALUES (?,?,?,?,?,?,?,?,?)
		ON CONFLICT (id) DO UPDATE SET
			first_name = excluded.first_name,
			last_name = excluded.last_name,
			preferred_name = excluded.preferred_name,
			squad = excluded.squad,
			tags = excluded.tags,
			boats = excluded.boats,
			logbook_id = excluded.logbook_id,
			color = excluded.color
	`, m.ID, m.FirstName, m.LastName, m.PreferredName, m.Squad, m.Tags, m.Boats, m.LogbookID, m.Color)
	if err != nil {
		return fmt.Errorf("failed to upsert member %s: %w", m.ID, err)
	}
	return nil
}

func scanBoat(row scanner, b *db.BoatRecord) error {
	return row.Scan(&b.Name, &b.Cox, &b.Stroke, &b.Seven, &b.Six, &b.Five, &b.Four, &b.Three, &b.Two, &b.Bow,
		&b.CrewType, &b.Shell, &b.Active, &b.Tags)
}

func (d *DB) GetBoat(ctx context.Context, name string) (*db.BoatRecord, error) {
	var b db.BoatRecord
	row := d.sql.QueryRowContext(ctx, `SELECT `+boatColumns+` FROM boat WHERE name = ?`, name)
	if err := scanBoat(row, &b); err != nil {
		return nil, notFound(err, "boat", name)
	}
	return &b, nil
}

func (d *DB) GetBoats(ctx context.Context) ([]db.BoatRecord, error) {
	rows, err := d.sql.QueryContext(ctx, `SELECT `+boatColumns+` FROM boat ORDER BY name`)
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
	return boats, rows.Err()
}

func (d *DB) UpsertBoat(ctx context.Context, b *db.BoatRecord) error {
	_, err := d.sql.ExecContext(ctx, `
		INSERT INTO boat (`+boatColumns+`)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT (name) DO UPDATE SET
			cox = excluded.cox,
			stroke = excluded.stroke,
			seven = excluded.seven,
			six = excluded.six,
			five = excluded.five,
			four = excluded.four,
			three = excluded.three,
			two = excluded.two,
			bow = excluded.bow,
			crew_type = excluded.crew_type,
			shell = excluded.shell,
			active = excluded.active,
			tags = excluded.tags
	`, b.Name, b.Cox, b.Stroke, b.Seven, b.Six, b.Five, b.Four, b.Three, b.Two, b.Bow, b.CrewType, b.Shell, b.Active, b.Tags)
	if err != nil {
		return fmt.Errorf("failed to upsert boat %s: %w", b.Name, err)
	}
	return nil
}

func scanOuting(row scanner, o *db.OutingRecord) error {
	var unix int64
	if err := row.Scan(&o.ID, &unix, &o.BoatName, &o.Scratch, &o.SetCrew, &o.Subs, &o.Shell, &o.Coach, &o.TimeType, &o.Notes); err != nil {
		return err
	}
	o.DateTime = time.Unix(unix, 0).UTC()
	return nil
}

func (d *DB) GetOuting(ctx context.Context, id string) (*db.OutingRecord, error) {
	var o db.OutingRecord
	row := d.sql.QueryRowContext(ctx, `SELECT `+outingColumns+` FROM outing WHERE id = ?`, id)
	if err := scanOuting(row, &o); err != nil {
		return nil, notFound(err, "outing", id)
	}
	return &o, nil
}

func (d *DB) GetOutingsBetween(ctx context.Context, from, to time.Time) ([]db.OutingRecord, error) {
	rows, err := d.sql.QueryContext(ctx, `
		SELECT `+outingColumns+`
		FROM outing
		WHERE date_time >= ? AND date_time <= ?
		ORDER BY date_time, id
	`, from.Unix(), to.Unix())
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
	return outings, rows.Err()
}

func (d *DB) UpsertOuting(ctx context.Context, o *db.OutingRecord) error {
	_, err := d.sql.ExecContext(ctx, `
		INSERT INTO outing (`+outingColumns+`)
		VALUES (?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT (id) DO UPDATE SET
			date_time = excluded.date_time,
			boat_name = excluded.boat_name,
			scratch = excluded.scratch,
			set_crew = excluded.set_crew,
			subs = excluded.subs,
			shell = excluded.shell,
			coach = excluded.coach,
			time_type = excluded.time_type,
			notes = excluded.notes
	`, o.ID, o.DateTime.Unix(), o.BoatName, o.Scratch, o.SetCrew, o.Subs, o.Shell, o.Coach, o.TimeType, o.Notes)
	if err != nil {
		return fmt.Errorf("failed to upsert outing %s: %w", o.ID, err)
	}
	return nil
}

func (d *DB) DeleteOuting(ctx context.Context, id string) error {
	res, err := d.sql.ExecContext(ctx, `DELETE FROM outing WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete outing %s: %w", id, err)
	}
	return deleted(res, "outing", id)
}

func scanDaily(row scanner, r *db.DailyRecord) error {
	return row.Scan(&r.Date, &r.UserData, &r.Races, &r.Events)
}

func (d *DB) GetDaily(ctx context.Context, date string) (*db.DailyRecord, error) {
	var r db.DailyRecord
	row := d.sql.QueryRowContext(ctx, `SELECT `+dailyColumns+` FROM daily WHERE date = ?`, date)
	if err := scanDaily(row, &r); err != nil {
		return nil, notFound(err, "daily", date)
	}
	return &r, nil
}

// GetDailiesBetween relies on YYYY-MM-DD text sorting chronologically
func (d *DB) GetDailiesBetween(ctx context.Context, from, to string) ([]db.DailyRecord, error) {
	rows, err := d.sql.QueryContext(ctx, `
		SELECT `+dailyColumns+`
		FROM daily
		WHERE date >= ? AND date <= ?
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
	return dailies, rows.Err()
}

func (d *DB) UpsertDaily(ctx context.Context, r *db.DailyRecord) error {
	_, err := d.sql.ExecContext(ctx, `
		INSERT INTO daily (`+dailyColumns+`)
		VALUES (?,?,?,?)
		ON CONFLICT (date) DO UPDATE SET
			user_data = excluded.user_data,
			races = excluded.races,
			events = excluded.events
	`, r.Date, r.UserData, r.Races, r.Events)
	if err != nil {
		return fmt.Errorf("failed to upsert daily %s: %w", r.Date, err)
	}
	return nil
}

func scanEvent(row scanner, e *db.EventRecord) error {
	return row.Scan(&e.ID, &e.Name, &e.Date, &e.Type, &e.Crews)
}

func (d *DB) GetEvent(ctx context.Context, id string) (*db.EventRecord, error) {
	var e db.EventRecord
	row := d.sql.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM event WHERE id = ?`, id)
	if err := scanEvent(row, &e); err != nil {
		return nil, notFound(err, "event", id)
	}
	return &e, nil
}

func (d *DB) GetEvents(ctx context.Context) ([]db.EventRecord, error) {
	rows, err := d.sql.QueryContext(ctx, `SELECT `+eventColumns+` FROM event ORDER BY date, name, id`)
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
	return events, rows.Err()
}

func (d *DB) UpsertEvent(ctx context.Context, e *db.EventRecord) error {
	_, err := d.sql.ExecContext(ctx, `
		INSERT INTO event (`+eventColumns+`)
		VALUES (?,?,?,?,?)
		ON CONFLICT (id) DO UPDATE SET
			name = excluded.name,
			date = excluded.date,
			type = excluded.type,
			crews = excluded.crews
	`, e.ID, e.Name, e.Date, e.Type, e.Crews)
	if err != nil {
		return fmt.Errorf("failed to upsert event %s: %w", e.ID, err)
	}
	return nil
}

func (d *DB) DeleteEvent(ctx context.Context, id string) error {
	res, err := d.sql.ExecContext(ctx, `DELETE FROM event WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete event %s: %w", id, err)
	}
	return deleted(res, "event", id)
}
