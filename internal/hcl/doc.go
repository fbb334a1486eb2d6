// Package hcl provides the HCL implementation of the `config.Loader`
// interface. It parses manifest files, decodes their blocks and translates
// HCL type expressions into descriptor names.
package hcl
