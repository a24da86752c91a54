package telemetry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nerrad567/smarthouse-core/internal/smarthouse"
)

// fakeLoader appends a fixed history per sensor id.
type fakeLoader struct {
	history map[string][]smarthouse.Measurement
	err     error
}

func (f *fakeLoader) LoadHistory(_ context.Context, sensor *smarthouse.Sensor) (int, error) {
	if f.err != nil {
		return 0, f.err
	}
	for _, m := range f.history[sensor.ID] {
		sensor.AddMeasurement(m.Value, m.Unit, m.Timestamp)
	}
	return len(f.history[sensor.ID]), nil
}

type writtenReading struct {
	deviceID, room, unit string
	value                float64
	ts                   time.Time
}

type fakeWriter struct {
	readings []writtenReading
	states   map[string]bool
	flushed  int
}

func (f *fakeWriter) WriteReading(deviceID, room, unit string, value float64, ts time.Time) {
	f.readings = append(f.readings, writtenReading{deviceID, room, unit, value, ts})
}

func (f *fakeWriter) WriteActuatorState(deviceID, _ string, on bool, _ time.Time) {
	if f.states == nil {
		f.states = make(map[string]bool)
	}
	f.states[deviceID] = on
}

func (f *fakeWriter) Flush() {
	f.flushed++
}

type fakePublisher struct {
	published map[string]bool
	err       error
}

func (f *fakePublisher) PublishActuatorState(deviceID, _ string, on bool, _ time.Time) error {
	if f.err != nil {
		return f.err
	}
	if f.published == nil {
		f.published = make(map[string]bool)
	}
	f.published[deviceID] = on
	return nil
}

// testHouse builds a house with one sensor and two actuators.
func testHouse(t *testing.T) *smarthouse.House {
	t.Helper()

	h := smarthouse.NewHouse("Test House")
	h.RegisterFloor(0)
	kitchen, err := h.RegisterRoom(0, 14, "Kitchen")
	if err != nil {
		t.Fatalf("RegisterRoom() error = %v", err)
	}

	pump := smarthouse.NewActuator("heat-pump", "Nibe", "F2040", "Heat Pump")
	pump.TurnOn()
	devices := []smarthouse.Device{
		smarthouse.NewSensor("temp-kitchen", "Elko", "Thermo", "Temperature Sensor"),
		pump,
		smarthouse.NewActuator("plug-kitchen", "Shelly", "Plug S", "Smart Plug"),
	}
	for _, d := range devices {
		if err := h.RegisterDevice(kitchen, d); err != nil {
			t.Fatalf("RegisterDevice() error = %v", err)
		}
	}
	return h
}

func TestExport(t *testing.T) {
	loader := &fakeLoader{history: map[string][]smarthouse.Measurement{
		"temp-kitchen": {
			{Value: 20, Unit: smarthouse.UnitCelsius, Timestamp: "2024-01-27 08:00:00"},
			{Value: 21, Unit: smarthouse.UnitCelsius, Timestamp: "not a time"},
			{Value: 22, Unit: smarthouse.UnitCelsius, Timestamp: "2024-01-27T12:00:00"},
		},
	}}
	writer := &fakeWriter{}
	publisher := &fakePublisher{}

	exp := New(loader, writer, publisher)
	res, err := exp.Export(context.Background(), testHouse(t))
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	want := Result{Sensors: 1, Readings: 2, SkippedReadings: 1, StatesWritten: 2, StatesPublished: 2}
	if res != want {
		t.Errorf("Export() = %+v, want %+v", res, want)
	}

	if len(writer.readings) != 2 {
		t.Fatalf("wrote %d readings, want 2", len(writer.readings))
	}
	first := writer.readings[0]
	if first.deviceID != "temp-kitchen" || first.room != "Kitchen" || first.value != 20 {
		t.Errorf("first reading = %+v", first)
	}
	if !first.ts.Equal(time.Date(2024, 1, 27, 8, 0, 0, 0, time.UTC)) {
		t.Errorf("first reading time = %v", first.ts)
	}

	if !writer.states["heat-pump"] || writer.states["plug-kitchen"] {
		t.Errorf("written states = %v", writer.states)
	}
	if !publisher.published["heat-pump"] || publisher.published["plug-kitchen"] {
		t.Errorf("published states = %v", publisher.published)
	}
	if writer.flushed != 1 {
		t.Errorf("Flush() called %d times, want 1", writer.flushed)
	}
}

func TestExport_NoSinks(t *testing.T) {
	res, err := New(&fakeLoader{}, nil, nil).Export(context.Background(), testHouse(t))
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if res != (Result{}) {
		t.Errorf("Export() = %+v, want zero result", res)
	}
}

func TestExport_PublisherOnly(t *testing.T) {
	publisher := &fakePublisher{}
	loader := &fakeLoader{err: errors.New("must not be called")}

	res, err := New(loader, nil, publisher).Export(context.Background(), testHouse(t))
	if err != nil {
		t.Fatalf("Export() error = %v", err)
	}
	if res.StatesPublished != 2 || res.Sensors != 0 {
		t.Errorf("Export() = %+v", res)
	}
}

func TestExport_Errors(t *testing.T) {
	storeErr := errors.New("store closed")
	publishErr := errors.New("broker gone")

	tests := []struct {
		name      string
		loader    *fakeLoader
		publisher *fakePublisher
		wantErr   error
	}{
		{"history load fails", &fakeLoader{err: storeErr}, &fakePublisher{}, storeErr},
		{"publish fails", &fakeLoader{}, &fakePublisher{err: publishErr}, publishErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.loader, &fakeWriter{}, tt.publisher).Export(context.Background(), testHouse(t))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Export() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExport_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(&fakeLoader{}, &fakeWriter{}, &fakePublisher{}).Export(ctx, testHouse(t))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Export() error = %v, want context.Canceled", err)
	}
}
