package influxdb

import (
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"
)

// InfluxDB measurement names written by this package.
const (
	measurementSensorReading = "sensor_reading"
	measurementActuatorState = "actuator_state"
)

// WriteReading writes one sensor reading with its original timestamp.
//
// The write is non-blocking; data is batched and sent asynchronously.
//
// Parameters:
//   - deviceID: Sensor id from the devices table (e.g., "temp-living")
//   - room: Room name, used as a tag for grouping
//   - unit: Measurement unit (e.g., "°C", "%")
//   - value: The reading
//   - ts: When the reading was taken
//
// Example:
//
//	client.WriteReading("temp-living", "Living Room", "°C", 21.5, ts)
func (c *Client) WriteReading(deviceID, room, unit string, value float64, ts time.Time) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(readingPoint(deviceID, room, unit, value, ts))
}

// WriteActuatorState writes the on/off state of an actuator.
//
// Parameters:
//   - deviceID: Actuator id from the devices table
//   - room: Room name
//   - on: Current state
//   - ts: Time of the export
func (c *Client) WriteActuatorState(deviceID, room string, on bool, ts time.Time) {
	if !c.IsConnected() {
		return
	}
	c.writeAPI.WritePoint(actuatorStatePoint(deviceID, room, on, ts))
}

func readingPoint(deviceID, room, unit string, value float64, ts time.Time) *write.Point {
	return write.NewPoint(
		measurementSensorReading,
		map[string]string{
			"device_id": deviceID,
			"room":      room,
			"unit":      unit,
		},
		map[string]interface{}{
			"value": value,
		},
		ts,
	)
}

func actuatorStatePoint(deviceID, room string, on bool, ts time.Time) *write.Point {
	return write.NewPoint(
		measurementActuatorState,
		map[string]string{
			"device_id": deviceID,
			"room":      room,
		},
		map[string]interface{}{
			"on": on,
		},
		ts,
	)
}
