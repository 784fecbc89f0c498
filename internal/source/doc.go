// Package source produces configuration fragments for the resolver from the
// places build settings live: built-in defaults, the process environment,
// Gradle property files, a YAML/JSON build descriptor and literal command
// line overrides.
//
// Every function here does its I/O up front and returns immutable
// [models.Fragment] values; none of them merge or validate variants.
package source
