// Package services implements the core persistence logic: the key
// registry, the binding orchestrator, the mutation-observing live
// binding, and storage maintenance. Services orchestrate calls to driven
// ports (adapters) and implement the driving port interfaces.
package services
