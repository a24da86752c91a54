// Package mqtt announces smart house state over MQTT.
//
// This package manages:
//   - Connection to a broker with auto-reconnect after a drop
//   - Retained actuator state messages
//   - Last Will and Testament (LWT) for offline detection
//   - Connection health monitoring
//
// # Topics
//
//	smarthouse/actuator/{device_id}/state   retained, {"device_id","room","on","timestamp"}
//	smarthouse/system/status                retained, online/offline + LWT
//
// MQTT is an optional output. The relational store remains the only
// source of truth; nothing published here is read back.
//
// # Security Considerations
//
//   - Use TLS outside local development (cfg.Broker.TLS=true)
//   - Credentials are validated against the broker ACL
//   - Message payloads are not encrypted beyond TLS transport
//
// # Usage
//
//	client, err := mqtt.Connect(ctx, cfg.MQTT)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	err = client.PublishActuatorState("heat-pump", "Kitchen", true, time.Now())
package mqtt
