package docgen

import (
	"bytes"
	"fmt"
	"text/template"
)

// proseContext is the data available to the static document text.
// Templates use [[ ]] delimiters so Home Assistant's {{ }} survives untouched.
type proseContext struct {
	BaseTopic    string
	StateTopic   string
	FriendlyName string
}

const generatedNotice = "*NOTE: Automatically generated by `z2m-docgen generate`*\n"

const catalogIntro = generatedNotice + `
In case you own a Zigbee device which is **NOT** listed here, please see [How to support new devices](https://github.com/Koenkk/zigbee2mqtt/wiki/How-to-support-new-devices).

`

const integrationIntro = generatedNotice + `
If you're hosting zigbee2mqtt using [this hassio addon-on](https://github.com/danielwelch/hassio-zigbee2mqtt) use their documentation on how to configure.

The easiest way to integrate zigbee2mqtt with Home Assistant is by using [MQTT discovery](https://www.home-assistant.io/docs/mqtt/discovery/).

To achieve the best possible integration (including MQTT discovery):
- In your **zigbee2mqtt** ` + "`configuration.yaml`" + ` set ` + "`homeassistant: true`" + `
- In your **Home Assistant** ` + "`configuration.yaml`" + `:
` + "```yaml" + `
mqtt:
  discovery: true
  broker: [YOUR MQTT BROKER]  # Remove if you want to use builtin-in MQTT broker
  birth_message:
    topic: 'hass/status'
    payload: 'online'
  will_message:
    topic: 'hass/status'
    payload: 'offline'
` + "```" + `

Zigbee2mqtt is expecting Home Assistant to send it's birth/will messages to ` + "`hass/status`" + `. Be sure to add this to your ` + "`configuration.yaml`" + ` if you want zigbee2mqtt to resend the cached values when Home Assistant restarts.

To respond to button clicks (e.g. WXKG01LM) you can use the following Home Assistant configuration:
` + "```yaml" + `
automation:
  - alias: Respond to button clicks
    trigger:
      platform: mqtt
      topic: '[[.StateTopic]]'
    condition:
      condition: template
      value_template: "{{ 'single' == trigger.payload_json.click }}"
    action:
      entity_id: light.bedroom
      service: light.toggle
` + "```" + `
**When changing a ` + "`friendly_name`" + ` for a device you first have to start zigbee2mqtt and after that restart Home Assistant in order to discover the new device ID.**

In case you **dont** want to use Home Assistant MQTT discovery you can use the configuration below.

`

// renderProse renders a static text template. Missing keys are errors.
func renderProse(text string, ctx proseContext) (string, error) {
	tmpl, err := template.New("prose").Delims("[[", "]]").Option("missingkey=error").Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse document template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return "", fmt.Errorf("failed to execute document template: %w", err)
	}

	return buf.String(), nil
}
