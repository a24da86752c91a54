package smarthouse

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// humidityMinReadings is the number of above-baseline readings an hour must
// exceed to be reported by HoursWithHumidityAbove.
const humidityMinReadings = 3

// AverageTemperatures returns the mean °C reading of every calendar day on
// which the room has temperature measurements, in ascending date order.
//
// Parameters:
//   - room: a room of a loaded house, or any room whose name exists in the store
//   - from, until: inclusive YYYY-MM-DD bounds; empty means unbounded
//
// Returns:
//   - []DailyAverage: one entry per day; empty when there is no data
//   - error: ErrInvalidDate for a malformed bound, ErrStoreUnavailable if
//     the query fails
func (r *SQLiteRepository) AverageTemperatures(ctx context.Context, room *Room, from, until string) ([]DailyAverage, error) {
	if err := parseDate(from); err != nil {
		return nil, err
	}
	if err := parseDate(until); err != nil {
		return nil, err
	}

	roomID, found, err := r.resolveRoomID(ctx, room)
	if err != nil {
		return nil, err
	}
	if !found {
		return []DailyAverage{}, nil
	}

	var query strings.Builder
	query.WriteString(`SELECT DATE(m.ts) AS day, AVG(m.value)
		FROM measurements m
		JOIN devices d ON m.device = d.id
		WHERE d.room = ? AND m.unit = ? AND DATE(m.ts) IS NOT NULL`)
	args := []any{roomID, UnitCelsius}
	if from != "" {
		query.WriteString(` AND DATE(m.ts) >= ?`)
		args = append(args, from)
	}
	if until != "" {
		query.WriteString(` AND DATE(m.ts) <= ?`)
		args = append(args, until)
	}
	query.WriteString(` GROUP BY day ORDER BY day`)

	rows, err := r.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying daily temperatures: %w", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	averages := []DailyAverage{}
	for rows.Next() {
		var avg DailyAverage
		if err := rows.Scan(&avg.Date, &avg.Celsius); err != nil {
			return nil, fmt.Errorf("%w: scanning daily temperature: %w", ErrMalformedRow, err)
		}
		averages = append(averages, avg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating daily temperatures: %w", ErrStoreUnavailable, err)
	}
	return averages, nil
}

// AverageTemperatureMap is AverageTemperatures keyed by date.
func (r *SQLiteRepository) AverageTemperatureMap(ctx context.Context, room *Room, from, until string) (map[string]float64, error) {
	averages, err := r.AverageTemperatures(ctx, room, from, until)
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(averages))
	for _, avg := range averages {
		out[avg.Date] = avg.Celsius
	}
	return out, nil
}

// HoursWithHumidityAbove returns the hours (0-23) of the given date in which
// the room recorded more than three humidity readings above the room's mean
// humidity for that date. Hours are in ascending order.
//
// Returns:
//   - []int: qualifying hours; empty, never nil, when none qualify
//   - error: ErrInvalidDate if date is empty or malformed,
//     ErrStoreUnavailable if the query fails
func (r *SQLiteRepository) HoursWithHumidityAbove(ctx context.Context, room *Room, date string) ([]int, error) {
	if date == "" {
		return nil, fmt.Errorf("%w: date is required", ErrInvalidDate)
	}
	if err := parseDate(date); err != nil {
		return nil, err
	}

	roomID, found, err := r.resolveRoomID(ctx, room)
	if err != nil {
		return nil, err
	}
	if !found {
		return []int{}, nil
	}

	const query = `WITH readings AS (
			SELECT CAST(strftime('%H', m.ts) AS INTEGER) AS hour, m.value AS value
			FROM measurements m
			JOIN devices d ON m.device = d.id
			WHERE d.room = ? AND m.unit = ? AND DATE(m.ts) = ?
		)
		SELECT hour
		FROM readings
		WHERE value > (SELECT AVG(value) FROM readings)
		GROUP BY hour
		HAVING COUNT(*) > ?
		ORDER BY hour`

	rows, err := r.db.QueryContext(ctx, query, roomID, UnitHumidity, date, humidityMinReadings)
	if err != nil {
		return nil, fmt.Errorf("%w: querying humidity hours: %w", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	hours := []int{}
	for rows.Next() {
		var hour sql.NullInt64
		if err := rows.Scan(&hour); err != nil {
			return nil, fmt.Errorf("%w: scanning humidity hour: %w", ErrMalformedRow, err)
		}
		if hour.Valid {
			hours = append(hours, int(hour.Int64))
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating humidity hours: %w", ErrStoreUnavailable, err)
	}
	return hours, nil
}

// resolveRoomID returns the store primary key of room. Rooms loaded from the
// store carry it already; other rooms are looked up by name.
func (r *SQLiteRepository) resolveRoomID(ctx context.Context, room *Room) (int64, bool, error) {
	if room == nil {
		return 0, false, fmt.Errorf("%w: room is nil", ErrRoomNotFound)
	}
	if room.ID != 0 {
		return room.ID, true, nil
	}

	const query = `SELECT id FROM rooms WHERE name = ? ORDER BY id LIMIT 2`

	rows, err := r.db.QueryContext(ctx, query, room.Name)
	if err != nil {
		return 0, false, fmt.Errorf("%w: looking up room %q: %w", ErrStoreUnavailable, room.Name, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return 0, false, fmt.Errorf("%w: scanning room id: %w", ErrMalformedRow, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return 0, false, fmt.Errorf("%w: looking up room %q: %w", ErrStoreUnavailable, room.Name, err)
	}

	switch len(ids) {
	case 0:
		return 0, false, nil
	case 1:
		return ids[0], true, nil
	default:
		return 0, false, fmt.Errorf("%w: room name %q is not unique", ErrMalformedRow, room.Name)
	}
}
