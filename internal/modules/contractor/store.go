// README: Contractor store backed by PostgreSQL rows and a Redis GEO index.
package contractor

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"fieldops/internal/types"
)

const contractorGeoKey = "contractors:geo"

type Store struct {
	db    *pgxpool.Pool
	redis *redis.Client
}

func NewStore(db *pgxpool.Pool, rdb *redis.Client) *Store {
	return &Store{db: db, redis: rdb}
}

func (s *Store) Get(ctx context.Context, id types.ID) (*Contractor, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, display_id, name, job_type_id, base_lat, base_lng, base_address, rating, active
		FROM contractors
		WHERE id = $1`, string(id),
	)

	var c Contractor
	err := row.Scan(
		&c.ID, &c.DisplayID, &c.Name, &c.JobTypeID,
		&c.Base.Lat, &c.Base.Lng, &c.Base.Address,
		&c.Rating, &c.Active,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	schedules, err := s.loadSchedules(ctx, []types.ID{c.ID})
	if err != nil {
		return nil, err
	}
	c.WeeklySchedule = schedules[c.ID]
	return &c, nil
}

func (s *Store) ListActiveByJobType(ctx context.Context, jobTypeID types.ID) ([]Contractor, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, display_id, name, job_type_id, base_lat, base_lng, base_address, rating, active
		FROM contractors
		WHERE active = TRUE AND job_type_id = $1
		ORDER BY id`, string(jobTypeID),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Contractor
	var ids []types.ID
	for rows.Next() {
		var c Contractor
		if err := rows.Scan(
			&c.ID, &c.DisplayID, &c.Name, &c.JobTypeID,
			&c.Base.Lat, &c.Base.Lng, &c.Base.Address,
			&c.Rating, &c.Active,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
		ids = append(ids, c.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	schedules, err := s.loadSchedules(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range out {
		out[i].WeeklySchedule = schedules[out[i].ID]
	}
	return out, nil
}

func (s *Store) ListActive(ctx context.Context) ([]Contractor, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, display_id, name, job_type_id, base_lat, base_lng, base_address, rating, active
		FROM contractors
		WHERE active = TRUE
		ORDER BY id`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Contractor
	for rows.Next() {
		var c Contractor
		if err := rows.Scan(
			&c.ID, &c.DisplayID, &c.Name, &c.JobTypeID,
			&c.Base.Lat, &c.Base.Lng, &c.Base.Address,
			&c.Rating, &c.Active,
		); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// Upsert writes the contractor row, replaces its schedule rows, and
// refreshes the Redis GEO index entry for its base location.
func (s *Store) Upsert(ctx context.Context, c *Contractor) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	_, err = tx.Exec(ctx, `
		INSERT INTO contractors (id, display_id, name, job_type_id, base_lat, base_lng, base_address, rating, active, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO UPDATE SET
			display_id = EXCLUDED.display_id,
			name = EXCLUDED.name,
			job_type_id = EXCLUDED.job_type_id,
			base_lat = EXCLUDED.base_lat,
			base_lng = EXCLUDED.base_lng,
			base_address = EXCLUDED.base_address,
			rating = EXCLUDED.rating,
			active = EXCLUDED.active,
			updated_at = EXCLUDED.updated_at`,
		string(c.ID), c.DisplayID, c.Name, string(c.JobTypeID),
		c.Base.Lat, c.Base.Lng, c.Base.Address,
		c.Rating, c.Active, time.Now().UTC(),
	)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM contractor_schedules WHERE contractor_id = $1`, string(c.ID)); err != nil {
		return err
	}
	for _, entry := range c.WeeklySchedule {
		for _, slot := range entry.Slots {
			if _, err := tx.Exec(ctx, `
				INSERT INTO contractor_schedules (contractor_id, weekday, start_min, end_min)
				VALUES ($1, $2, $3, $4)`,
				string(c.ID), int(entry.Weekday), slot.StartMin, slot.EndMin,
			); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return err
	}

	return s.redis.GeoAdd(ctx, contractorGeoKey, &redis.GeoLocation{
		Name:      string(c.ID),
		Longitude: c.Base.Lng,
		Latitude:  c.Base.Lat,
	}).Err()
}

// Nearby returns contractor ids within radiusMiles of p, closest first.
func (s *Store) Nearby(ctx context.Context, p types.Point, radiusMiles float64) ([]types.ID, error) {
	results, err := s.redis.GeoSearch(ctx, contractorGeoKey, &redis.GeoSearchQuery{
		Longitude:  p.Lng,
		Latitude:   p.Lat,
		Radius:     radiusMiles,
		RadiusUnit: "mi",
		Sort:       "ASC",
	}).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]types.ID, len(results))
	for i, r := range results {
		ids[i] = types.ID(r)
	}
	return ids, nil
}

func (s *Store) loadSchedules(ctx context.Context, ids []types.ID) (map[types.ID][]ScheduleEntry, error) {
	out := make(map[types.ID][]ScheduleEntry, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	raw := make([]string, len(ids))
	for i, id := range ids {
		raw[i] = string(id)
	}
	rows, err := s.db.Query(ctx, `
		SELECT contractor_id, weekday, start_min, end_min
		FROM contractor_schedules
		WHERE contractor_id = ANY($1)
		ORDER BY contractor_id, weekday, start_min`, raw,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var weekday, startMin, endMin int
		if err := rows.Scan(&id, &weekday, &startMin, &endMin); err != nil {
			return nil, err
		}
		cid := types.ID(id)
		entries := out[cid]
		slot := TimeSlot{StartMin: startMin, EndMin: endMin}
		if n := len(entries); n > 0 && entries[n-1].Weekday == time.Weekday(weekday) {
			entries[n-1].Slots = append(entries[n-1].Slots, slot)
		} else {
			entries = append(entries, ScheduleEntry{Weekday: time.Weekday(weekday), Slots: []TimeSlot{slot}})
		}
		out[cid] = entries
	}
	return out, rows.Err()
}
