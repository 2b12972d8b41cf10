// Package docgen assembles the supported devices page and the Home Assistant
// integration guide from a device registry and its discovery mapping.
//
// Both bodies are pure functions of their inputs. The catalog lists every
// model once; the integration guide follows the raw registry, so a model
// listed twice gets two sections.
package docgen
