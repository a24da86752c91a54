package smarthouse

// Category separates the two kinds of device stored in the devices table.
type Category string

// Device categories as stored in devices.category.
const (
	CategorySensor   Category = "sensor"
	CategoryActuator Category = "actuator"
)

// Device is implemented by *Sensor and *Actuator.
type Device interface {
	// Info returns the attributes shared by all devices.
	Info() *DeviceInfo

	// Category reports whether the device is a sensor or an actuator.
	Category() Category
}

// DeviceInfo holds the attributes common to every device.
type DeviceInfo struct {
	// ID is the primary key in the devices table and globally unique.
	ID       string `json:"id"`
	Supplier string `json:"supplier"`
	Product  string `json:"product"`

	// Kind is the free-form device type, e.g. "Temperature Sensor" or "Heat Pump".
	Kind string `json:"kind"`

	// room is set by House.RegisterDevice and does not own the room.
	room *Room
}

// Info implements Device.
func (d *DeviceInfo) Info() *DeviceInfo {
	return d
}

// Room returns the room the device is registered in, or nil.
func (d *DeviceInfo) Room() *Room {
	return d.room
}

// Sensor is a device that records measurements.
type Sensor struct {
	DeviceInfo
	measurements []Measurement
}

// NewSensor creates a sensor with an empty measurement history.
func NewSensor(id, supplier, product, kind string) *Sensor {
	return &Sensor{
		DeviceInfo: DeviceInfo{ID: id, Supplier: supplier, Product: product, Kind: kind},
	}
}

// Category implements Device.
func (s *Sensor) Category() Category {
	return CategorySensor
}

// AddMeasurement appends a reading to the sensor history.
func (s *Sensor) AddMeasurement(value float64, unit, timestamp string) {
	s.measurements = append(s.measurements, Measurement{
		Value:     value,
		Unit:      unit,
		Timestamp: timestamp,
	})
}

// LastMeasurement returns the most recently appended reading.
// The boolean is false when the sensor has no history.
func (s *Sensor) LastMeasurement() (Measurement, bool) {
	if len(s.measurements) == 0 {
		return Measurement{}, false
	}
	return s.measurements[len(s.measurements)-1], true
}

// HasMeasurement reports whether an identical reading (same timestamp,
// value and unit) is already in the history.
func (s *Sensor) HasMeasurement(m Measurement) bool {
	for _, existing := range s.measurements {
		if existing == m {
			return true
		}
	}
	return false
}

// Measurements returns a copy of the history in append order.
func (s *Sensor) Measurements() []Measurement {
	out := make([]Measurement, len(s.measurements))
	copy(out, s.measurements)
	return out
}

// appendUnique appends m unless it is already present and reports whether
// it was appended.
func (s *Sensor) appendUnique(m Measurement) bool {
	if s.HasMeasurement(m) {
		return false
	}
	s.AddMeasurement(m.Value, m.Unit, m.Timestamp)
	return true
}

// Actuator is a device with an on/off state.
type Actuator struct {
	DeviceInfo

	// On is the current state. Persist it with SQLiteRepository.UpdateActuatorState.
	On bool `json:"on"`
}

// NewActuator creates an actuator that is switched off.
func NewActuator(id, supplier, product, kind string) *Actuator {
	return &Actuator{
		DeviceInfo: DeviceInfo{ID: id, Supplier: supplier, Product: product, Kind: kind},
	}
}

// Category implements Device.
func (a *Actuator) Category() Category {
	return CategoryActuator
}

// TurnOn switches the actuator on.
func (a *Actuator) TurnOn() {
	a.On = true
}

// TurnOff switches the actuator off.
func (a *Actuator) TurnOff() {
	a.On = false
}

// IsActive reports whether the actuator is on.
func (a *Actuator) IsActive() bool {
	return a.On
}
