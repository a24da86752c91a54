package mqtt

import (
	"encoding/json"
	"fmt"
	"time"
)

// Maximum payload size for MQTT messages (1MB).
const maxPayloadSize = 1 << 20 // 1MB

// Publish sends a message to the specified MQTT topic.
//
// Parameters:
//   - topic: The topic to publish to (e.g., "smarthouse/actuator/heat-pump/state")
//   - payload: The message payload (typically JSON, max 1MB)
//   - qos: Quality of Service level (0, 1, or 2)
//   - retained: Whether the broker should retain the message for new subscribers
//
// Returns:
//   - error: nil on success, or wrapped error describing the failure
func (c *Client) Publish(topic string, payload []byte, qos byte, retained bool) error {
	if topic == "" {
		return ErrInvalidTopic
	}
	if qos > maxQoS {
		return ErrInvalidQoS
	}
	if len(payload) > maxPayloadSize {
		return fmt.Errorf("%w: payload size %d exceeds maximum %d bytes", ErrPublishFailed, len(payload), maxPayloadSize)
	}

	if !c.IsConnected() {
		return ErrNotConnected
	}

	token := c.client.Publish(topic, qos, retained, payload)
	if !token.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrPublishFailed, defaultPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrPublishFailed, err)
	}

	return nil
}

// PublishRetained publishes a retained message with the configured default QoS.
//
// Use for state updates where new subscribers should receive the current state.
func (c *Client) PublishRetained(topic string, payload []byte) error {
	return c.Publish(topic, payload, byte(c.cfg.QoS), true)
}

// ActuatorStatePayload is the JSON body published on an actuator state topic.
type ActuatorStatePayload struct {
	DeviceID  string `json:"device_id"`
	Room      string `json:"room,omitempty"`
	On        bool   `json:"on"`
	Timestamp string `json:"timestamp"`
}

// PublishActuatorState announces the state of one actuator as a retained
// message on smarthouse/actuator/{id}/state.
//
// Example:
//
//	err := client.PublishActuatorState("heat-pump", "Kitchen", true, time.Now())
func (c *Client) PublishActuatorState(deviceID, room string, on bool, ts time.Time) error {
	if deviceID == "" {
		return ErrInvalidTopic
	}

	payload, err := json.Marshal(ActuatorStatePayload{
		DeviceID:  deviceID,
		Room:      room,
		On:        on,
		Timestamp: ts.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return fmt.Errorf("%w: encoding payload: %w", ErrPublishFailed, err)
	}

	return c.PublishRetained(Topics{}.ActuatorState(deviceID), payload)
}
