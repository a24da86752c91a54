// Package telemetry exports a loaded house to external sinks.
//
// Sensor histories and actuator states go to a MeasurementWriter
// (InfluxDB); actuator states are also announced through a StatePublisher
// (MQTT). The relational store is only read.
package telemetry
