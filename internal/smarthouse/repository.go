package smarthouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/nerrad567/smarthouse-core/internal/infrastructure/database"
)

// Repository defines the persistence and statistics operations on a house.
type Repository interface {
	LoadHouse(ctx context.Context) (*House, error)
	LatestReading(ctx context.Context, sensor *Sensor) (Measurement, bool, error)
	LoadHistory(ctx context.Context, sensor *Sensor) (int, error)
	UpdateActuatorState(ctx context.Context, actuator *Actuator) error

	AverageTemperatures(ctx context.Context, room *Room, from, until string) ([]DailyAverage, error)
	HoursWithHumidityAbove(ctx context.Context, room *Room, date string) ([]int, error)
}

// Logger defines the logging interface used by the repository.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// noopLogger is a logger that does nothing.
type noopLogger struct{}

func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}

// SQLiteRepository implements Repository on a single SQLite connection.
//
// The repository owns the connection it is given: Close and Reconnect act
// on it directly.
type SQLiteRepository struct {
	db     *database.DB
	logger Logger
}

// NewSQLiteRepository creates a repository over an open database.
func NewSQLiteRepository(db *database.DB) *SQLiteRepository {
	return &SQLiteRepository{
		db:     db,
		logger: noopLogger{},
	}
}

// OpenSQLiteRepository opens the database, creates any missing tables and
// returns a repository that owns the connection.
//
// Returns:
//   - *SQLiteRepository: ready for use; call Close when done
//   - error: wrapping ErrStoreUnavailable if the store cannot be opened
func OpenSQLiteRepository(ctx context.Context, cfg database.Config) (*SQLiteRepository, error) {
	db, err := database.Open(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	if err := db.EnsureSchema(ctx); err != nil {
		db.Close() //nolint:errcheck // Best effort cleanup on error path
		return nil, fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	return NewSQLiteRepository(db), nil
}

// SetLogger sets the logger for the repository.
func (r *SQLiteRepository) SetLogger(logger Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	r.logger = logger
}

// Close releases the store connection.
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// Reconnect closes the store connection and opens it again. It must not be
// called while another repository operation is running.
func (r *SQLiteRepository) Reconnect(ctx context.Context) error {
	if err := r.db.Reconnect(ctx); err != nil {
		return fmt.Errorf("%w: %w", ErrStoreUnavailable, err)
	}
	r.logger.Info("store reconnected", "path", r.db.Path())
	return nil
}

// LoadHouse reconstructs the complete house from the store.
//
// Floors are registered in ascending level order, then rooms, then devices.
// Devices are attached to their room by the room primary key. Rows with an
// unknown category are skipped and logged. Actuators get their persisted
// state from actuator_state, or off if none was stored.
//
// Returns:
//   - *House: a fully connected house; never a partial one
//   - error: ErrStoreUnavailable if a query fails, ErrMalformedRow if a row
//     cannot be mapped onto the model
func (r *SQLiteRepository) LoadHouse(ctx context.Context) (*House, error) {
	house := NewHouse("")

	levels, err := r.queryFloorLevels(ctx)
	if err != nil {
		return nil, err
	}
	for _, level := range levels {
		house.RegisterFloor(level)
	}

	roomsByID, err := r.loadRooms(ctx, house)
	if err != nil {
		return nil, err
	}

	skipped, err := r.loadDevices(ctx, house, roomsByID)
	if err != nil {
		return nil, err
	}

	r.logger.Info("house loaded",
		"floors", len(house.floors),
		"rooms", len(house.rooms),
		"devices", len(house.devices),
		"skipped_devices", skipped,
	)
	return house, nil
}

// queryFloorLevels returns the distinct floor levels in ascending order.
func (r *SQLiteRepository) queryFloorLevels(ctx context.Context) ([]int, error) {
	const query = `SELECT DISTINCT floor FROM rooms ORDER BY floor`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying floors: %w", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var levels []int
	for rows.Next() {
		var level sql.NullInt64
		if err := rows.Scan(&level); err != nil {
			return nil, fmt.Errorf("%w: scanning floor: %w", ErrMalformedRow, err)
		}
		if !level.Valid {
			return nil, fmt.Errorf("%w: room with NULL floor", ErrMalformedRow)
		}
		levels = append(levels, int(level.Int64))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating floors: %w", ErrStoreUnavailable, err)
	}
	return levels, nil
}

// roomRow is one row of the rooms table.
type roomRow struct {
	id    int64
	floor sql.NullInt64
	area  sql.NullFloat64
	name  sql.NullString
}

// loadRooms registers every room and returns them indexed by primary key.
func (r *SQLiteRepository) loadRooms(ctx context.Context, house *House) (map[int64]*Room, error) {
	const query = `SELECT id, floor, area, name FROM rooms ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: querying rooms: %w", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var roomRows []roomRow
	for rows.Next() {
		var row roomRow
		if err := rows.Scan(&row.id, &row.floor, &row.area, &row.name); err != nil {
			return nil, fmt.Errorf("%w: scanning room: %w", ErrMalformedRow, err)
		}
		roomRows = append(roomRows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating rooms: %w", ErrStoreUnavailable, err)
	}

	roomsByID := make(map[int64]*Room, len(roomRows))
	for _, row := range roomRows {
		if !row.floor.Valid || !row.name.Valid {
			return nil, fmt.Errorf("%w: room %d has NULL floor or name", ErrMalformedRow, row.id)
		}
		room, err := house.RegisterRoom(int(row.floor.Int64), row.area.Float64, row.name.String)
		if err != nil {
			return nil, fmt.Errorf("%w: room %d: %w", ErrMalformedRow, row.id, err)
		}
		room.ID = row.id
		roomsByID[row.id] = room
	}
	return roomsByID, nil
}

// deviceRow is one row of devices joined with actuator_state.
type deviceRow struct {
	id       sql.NullString
	room     sql.NullInt64
	kind     sql.NullString
	category sql.NullString
	supplier sql.NullString
	product  sql.NullString
	state    sql.NullInt64
}

// loadDevices builds and registers every device and returns the number of
// rows skipped because of an unknown category.
func (r *SQLiteRepository) loadDevices(ctx context.Context, house *House, roomsByID map[int64]*Room) (int, error) {
	const query = `SELECT d.id, d.room, d.kind, d.category, d.supplier, d.product, s.state
		FROM devices d
		LEFT JOIN actuator_state s ON s.id = d.id
		ORDER BY d.rowid`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("%w: querying devices: %w", ErrStoreUnavailable, err)
	}
	defer rows.Close()

	var deviceRows []deviceRow
	for rows.Next() {
		var row deviceRow
		if err := rows.Scan(&row.id, &row.room, &row.kind, &row.category,
			&row.supplier, &row.product, &row.state); err != nil {
			return 0, fmt.Errorf("%w: scanning device: %w", ErrMalformedRow, err)
		}
		deviceRows = append(deviceRows, row)
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("%w: iterating devices: %w", ErrStoreUnavailable, err)
	}

	skipped := 0
	for _, row := range deviceRows {
		if !row.id.Valid || row.id.String == "" {
			return 0, fmt.Errorf("%w: device with NULL id", ErrMalformedRow)
		}
		id := row.id.String
		if !row.room.Valid {
			return 0, fmt.Errorf("%w: device %s has no room", ErrMalformedRow, id)
		}
		room, ok := roomsByID[row.room.Int64]
		if !ok {
			return 0, fmt.Errorf("%w: device %s references unknown room %d", ErrMalformedRow, id, row.room.Int64)
		}
		if !row.category.Valid {
			return 0, fmt.Errorf("%w: device %s has NULL category", ErrMalformedRow, id)
		}

		var device Device
		switch Category(row.category.String) {
		case CategorySensor:
			device = NewSensor(id, row.supplier.String, row.product.String, row.kind.String)
		case CategoryActuator:
			actuator := NewActuator(id, row.supplier.String, row.product.String, row.kind.String)
			actuator.On = row.state.Valid && row.state.Int64 != 0
			device = actuator
		default:
			skipped++
			r.logger.Warn("skipping device with unknown category",
				"device_id", id,
				"category", row.category.String,
			)
			continue
		}

		if err := house.RegisterDevice(room, device); err != nil {
			return 0, fmt.Errorf("%w: %w", ErrMalformedRow, err)
		}
	}
	return skipped, nil
}

// LatestReading fetches the most recently inserted measurement of the sensor
// and appends it to the sensor's history unless an identical reading is
// already there. Calling it repeatedly does not grow the history.
//
// Returns:
//   - Measurement: the latest stored reading
//   - bool: false when the sensor has no stored readings
//   - error: ErrStoreUnavailable if the query fails
func (r *SQLiteRepository) LatestReading(ctx context.Context, sensor *Sensor) (Measurement, bool, error) {
	if sensor == nil {
		return Measurement{}, false, fmt.Errorf("%w: sensor is nil", ErrInvalidDevice)
	}

	const query = `SELECT ts, value, unit FROM measurements
		WHERE device = ?
		ORDER BY rowid DESC
		LIMIT 1`

	var ts, unit sql.NullString
	var value sql.NullFloat64
	err := r.db.QueryRowContext(ctx, query, sensor.ID).Scan(&ts, &value, &unit)
	if errors.Is(err, sql.ErrNoRows) {
		return Measurement{}, false, nil
	}
	if err != nil {
		return Measurement{}, false, fmt.Errorf("%w: querying latest reading of %s: %w", ErrStoreUnavailable, sensor.ID, err)
	}
	if !ts.Valid || !value.Valid || !unit.Valid {
		return Measurement{}, false, fmt.Errorf("%w: measurement of %s has NULL columns", ErrMalformedRow, sensor.ID)
	}

	m := Measurement{Value: value.Float64, Unit: unit.String, Timestamp: ts.String}
	if sensor.appendUnique(m) {
		r.logger.Debug("latest reading appended", "device_id", sensor.ID, "timestamp", m.Timestamp)
	}
	return m, true, nil
}

// LoadHistory appends every stored measurement of the sensor, in insertion
// order, that is not already in its history.
//
// Returns:
//   - int: number of readings appended
//   - error: ErrStoreUnavailable if the query fails
func (r *SQLiteRepository) LoadHistory(ctx context.Context, sensor *Sensor) (int, error) {
	if sensor == nil {
		return 0, fmt.Errorf("%w: sensor is nil", ErrInvalidDevice)
	}

	const query = `SELECT ts, value, unit FROM measurements WHERE device = ? ORDER BY rowid`

	rows, err := r.db.QueryContext(ctx, query, sensor.ID)
	if err != nil {
		return 0, fmt.Errorf("%w: querying history of %s: %w", ErrStoreUnavailable, sensor.ID, err)
	}
	defer rows.Close()

	var fetched []Measurement
	for rows.Next() {
		var ts, unit sql.NullString
		var value sql.NullFloat64
		if err := rows.Scan(&ts, &value, &unit); err != nil {
			return 0, fmt.Errorf("%w: scanning measurement of %s: %w", ErrMalformedRow, sensor.ID, err)
		}
		if !ts.Valid || !value.Valid || !unit.Valid {
			return 0, fmt.Errorf("%w: measurement of %s has NULL columns", ErrMalformedRow, sensor.ID)
		}
		fetched = append(fetched, Measurement{Value: value.Float64, Unit: unit.String, Timestamp: ts.String})
	}
	if err := rows.Err(); err != nil {
		return 0, fmt.Errorf("%w: iterating history of %s: %w", ErrStoreUnavailable, sensor.ID, err)
	}

	seen := make(map[Measurement]struct{}, len(sensor.measurements)+len(fetched))
	for _, m := range sensor.measurements {
		seen[m] = struct{}{}
	}
	appended := 0
	for _, m := range fetched {
		if _, dup := seen[m]; dup {
			continue
		}
		seen[m] = struct{}{}
		sensor.AddMeasurement(m.Value, m.Unit, m.Timestamp)
		appended++
	}

	r.logger.Debug("history loaded", "device_id", sensor.ID, "appended", appended)
	return appended, nil
}

// UpdateActuatorState persists the actuator's current state, creating the
// actuator_state row if it does not exist yet. The write is committed
// before returning.
//
// Returns:
//   - error: ErrPersistenceFailure if the store rejects the write, e.g. the
//     actuator id is not in the devices table or the connection is closed
func (r *SQLiteRepository) UpdateActuatorState(ctx context.Context, actuator *Actuator) error {
	if actuator == nil || actuator.ID == "" {
		return fmt.Errorf("%w: %w: actuator without id", ErrPersistenceFailure, ErrInvalidDevice)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistenceFailure, err)
	}
	defer tx.Rollback() //nolint:errcheck // Rollback is no-op after commit

	const query = `INSERT OR REPLACE INTO actuator_state (id, state) VALUES (?, ?)`
	if _, err := tx.ExecContext(ctx, query, actuator.ID, boolToInt(actuator.On)); err != nil {
		return fmt.Errorf("%w: writing state of %s: %w", ErrPersistenceFailure, actuator.ID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing state of %s: %w", ErrPersistenceFailure, actuator.ID, err)
	}

	r.logger.Info("actuator state persisted", "device_id", actuator.ID, "on", actuator.On)
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
