// Package config defines the format-agnostic type manifest model and the
// Loader interface that fills it from a concrete source.
//
// A manifest declares enumerations and describes the expected shape of
// classes. The `manifest` package applies and checks a Model against the
// type registry; concrete loaders, such as for HCL, live in separate
// packages.
package config
