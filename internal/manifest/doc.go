// Package manifest connects a loaded config.Model to the type registry.
//
// Apply creates the enumerations a manifest declares that no Go type
// provides. Validate performs a parity check between class declarations and
// the classes registered from Go code.
package manifest
