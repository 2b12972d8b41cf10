package discovery

import "fmt"

const (
	// DefaultBaseTopic is the topic prefix every device topic is published under
	DefaultBaseTopic = "zigbee2mqtt"

	// DefaultFriendlyName stands in for the user-assigned device name in topic examples
	DefaultFriendlyName = "<FRIENDLY_NAME>"
)

// Topics builds the MQTT topics shown in discovery payloads.
//
//	topics := discovery.DefaultTopics()
//	topics.State()        // zigbee2mqtt/<FRIENDLY_NAME>
//	topics.Command("l1")  // zigbee2mqtt/<FRIENDLY_NAME>/l1/set
type Topics struct {
	BaseTopic    string
	FriendlyName string
}

// DefaultTopics returns the topics for the default base topic and friendly name placeholder
func DefaultTopics() Topics {
	return Topics{
		BaseTopic:    DefaultBaseTopic,
		FriendlyName: DefaultFriendlyName,
	}
}

// State returns the topic a device publishes its state on
func (t Topics) State() string {
	return fmt.Sprintf("%s/%s", t.BaseTopic, t.FriendlyName)
}

// Availability returns the bridge availability topic
func (t Topics) Availability() string {
	return fmt.Sprintf("%s/bridge/state", t.BaseTopic)
}

// Command returns the set topic of a device. An empty prefix addresses the
// device itself, otherwise the prefixed endpoint.
func (t Topics) Command(prefix string) string {
	if prefix == "" {
		return fmt.Sprintf("%s/%s/set", t.BaseTopic, t.FriendlyName)
	}
	return fmt.Sprintf("%s/%s/%s/set", t.BaseTopic, t.FriendlyName, prefix)
}
