// Package app contains the core application logic of the dynrefl inspector.
// It defines the main App struct, its configuration, and the primary
// lifecycle: register the compiled-in modules, load and check manifests,
// then report the registry, decoupled from any specific entrypoint like a
// CLI.
package app
