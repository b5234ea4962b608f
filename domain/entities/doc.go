// Package entities provides the core domain entities of the engine.
// These are plain value types shared by the reconciler, the supervisor
// and the infrastructure adapters; none of them touch the OS.
package entities
