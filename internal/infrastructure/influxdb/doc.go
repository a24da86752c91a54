// Package influxdb exports smart house readings to InfluxDB.
//
// It wraps the official influxdb-client-go v2 library with connection
// management, batched writes and health monitoring.
//
// # Purpose
//
// The relational store remains the system of record. This package is an
// optional sink used by the export command to copy:
//   - Sensor readings (measurement "sensor_reading", tags device_id, room, unit)
//   - Actuator states (measurement "actuator_state", tags device_id, room)
//
// # Usage
//
//	cfg := config.InfluxDBConfig{
//	    Enabled: true,
//	    URL:     "http://localhost:8086",
//	    Token:   "your-token",
//	    Org:     "smarthouse",
//	    Bucket:  "measurements",
//	}
//
//	client, err := influxdb.Connect(ctx, cfg)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	client.WriteReading("temp-living", "Living Room", "°C", 21.5, ts)
//
// # Thread Safety
//
// All methods are safe for concurrent use from multiple goroutines.
// The underlying write API uses non-blocking batched writes.
//
// # Error Handling
//
// Write operations are non-blocking and batch errors are reported via a
// callback (SetOnError). Connection and health check errors are returned
// directly.
package influxdb
