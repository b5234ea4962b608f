// Package ports defines interfaces for the OS collaborators the engine
// consumes. These ports enable dependency inversion - the reconciler and
// supervisor depend on abstractions, and infrastructure adapters implement
// these interfaces.
package ports
