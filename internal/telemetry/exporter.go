package telemetry

import (
	"context"
	"fmt"
	"time"

	"github.com/nerrad567/smarthouse-core/internal/smarthouse"
)

// HistoryLoader fills a sensor's history from the store.
// Implemented by *smarthouse.SQLiteRepository.
type HistoryLoader interface {
	LoadHistory(ctx context.Context, sensor *smarthouse.Sensor) (int, error)
}

// MeasurementWriter receives readings and actuator states.
// Implemented by *influxdb.Client.
type MeasurementWriter interface {
	WriteReading(deviceID, room, unit string, value float64, ts time.Time)
	WriteActuatorState(deviceID, room string, on bool, ts time.Time)
	Flush()
}

// StatePublisher announces actuator states.
// Implemented by *mqtt.Client.
type StatePublisher interface {
	PublishActuatorState(deviceID, room string, on bool, ts time.Time) error
}

// Logger defines the logging interface used by the exporter.
// Compatible with logging.Logger and slog.Logger.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
}

type noopLogger struct{}

func (noopLogger) Info(string, ...any) {}
func (noopLogger) Warn(string, ...any) {}

// Result summarises one export run.
type Result struct {
	Sensors         int `json:"sensors"`
	Readings        int `json:"readings"`
	SkippedReadings int `json:"skipped_readings"`
	StatesWritten   int `json:"states_written"`
	StatesPublished int `json:"states_published"`
}

// Exporter copies a loaded house to the configured sinks. Either sink may
// be nil, in which case that part of the export is skipped.
type Exporter struct {
	loader    HistoryLoader
	writer    MeasurementWriter
	publisher StatePublisher
	logger    Logger

	// now stamps actuator states, which carry no timestamp of their own.
	now func() time.Time
}

// New creates an exporter.
func New(loader HistoryLoader, writer MeasurementWriter, publisher StatePublisher) *Exporter {
	return &Exporter{
		loader:    loader,
		writer:    writer,
		publisher: publisher,
		logger:    noopLogger{},
		now:       time.Now,
	}
}

// SetLogger sets the logger for the exporter.
func (e *Exporter) SetLogger(logger Logger) {
	if logger == nil {
		logger = noopLogger{}
	}
	e.logger = logger
}

// Export loads the full history of every sensor and writes it to the
// measurement writer, then writes and publishes the state of every actuator.
//
// Readings whose timestamp cannot be parsed are skipped and counted.
// The first store or publish error aborts the export.
func (e *Exporter) Export(ctx context.Context, house *smarthouse.House) (Result, error) {
	var res Result

	if e.writer != nil {
		for _, sensor := range house.Sensors() {
			if err := ctx.Err(); err != nil {
				return res, err
			}
			if _, err := e.loader.LoadHistory(ctx, sensor); err != nil {
				return res, fmt.Errorf("loading history of %s: %w", sensor.ID, err)
			}
			res.Sensors++
			e.writeHistory(sensor, &res)
		}
	}

	stamp := e.now()
	for _, actuator := range house.Actuators() {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		room := roomName(actuator.Room())

		if e.writer != nil {
			e.writer.WriteActuatorState(actuator.ID, room, actuator.IsActive(), stamp)
			res.StatesWritten++
		}
		if e.publisher != nil {
			if err := e.publisher.PublishActuatorState(actuator.ID, room, actuator.IsActive(), stamp); err != nil {
				return res, fmt.Errorf("publishing state of %s: %w", actuator.ID, err)
			}
			res.StatesPublished++
		}
	}

	if e.writer != nil {
		e.writer.Flush()
	}

	e.logger.Info("export complete",
		"sensors", res.Sensors,
		"readings", res.Readings,
		"skipped_readings", res.SkippedReadings,
		"states_written", res.StatesWritten,
		"states_published", res.StatesPublished,
	)
	return res, nil
}

func (e *Exporter) writeHistory(sensor *smarthouse.Sensor, res *Result) {
	room := roomName(sensor.Room())
	for _, m := range sensor.Measurements() {
		ts, err := m.Time()
		if err != nil {
			res.SkippedReadings++
			e.logger.Warn("skipping reading with unparseable timestamp",
				"device_id", sensor.ID,
				"timestamp", m.Timestamp,
			)
			continue
		}
		e.writer.WriteReading(sensor.ID, room, m.Unit, m.Value, ts)
		res.Readings++
	}
}

func roomName(room *smarthouse.Room) string {
	if room == nil {
		return ""
	}
	return room.Name
}
