// Package driving defines interfaces that external actors (CLI, embedding
// applications) use to interact with core services. These are the
// "driving" ports in hexagonal architecture terminology - they drive the
// application.
//
// Implementations of these interfaces live in internal/core/services.
//
// Binding itself has no driving interface: a live binding is a concrete
// stateful type (services.Live), and the orchestrator (services.Store)
// returns it directly - accept interfaces, return structs.
package driving
