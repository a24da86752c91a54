package mqtt

import "fmt"

// Topic prefixes for smart house MQTT messages.
const (
	// TopicPrefix is the root of every topic published by this package.
	TopicPrefix = "smarthouse"

	// TopicPrefixActuator is the base for actuator state topics.
	TopicPrefixActuator = "smarthouse/actuator"

	// TopicPrefixSystem is the base for system topics.
	TopicPrefixSystem = "smarthouse/system"
)

// Topics provides builders for smart house MQTT topics.
//
//	topics := mqtt.Topics{}
//	stateTopic := topics.ActuatorState("heat-pump")
//	// Returns: "smarthouse/actuator/heat-pump/state"
type Topics struct{}

// ActuatorState returns the retained state topic of an actuator.
//
// Example: smarthouse/actuator/heat-pump/state
func (Topics) ActuatorState(deviceID string) string {
	return fmt.Sprintf("%s/%s/state", TopicPrefixActuator, deviceID)
}

// AllActuatorStates returns a wildcard subscription for every actuator state.
//
// Example: smarthouse/actuator/+/state
func (Topics) AllActuatorStates() string {
	return fmt.Sprintf("%s/+/state", TopicPrefixActuator)
}

// SystemStatus returns the topic for online/offline status and the LWT.
//
// Example: smarthouse/system/status
func (Topics) SystemStatus() string {
	return fmt.Sprintf("%s/status", TopicPrefixSystem)
}
