// Package resolver merges layered build-setting fragments into a single
// resolved configuration for a build variant.
//
// Resolution is pure: it performs no I/O and reads no global state. Callers
// read the environment, property files and descriptors themselves (see
// package source) and pass the results in as immutable [models.Fragment]
// values ordered from lowest to highest precedence.
//
// For every recognized key the highest-precedence present value wins and
// replaces lower values wholesale. After the merge the configuration is
// validated against the variant: missing signing credentials, missing
// required settings, unknown keys, mistyped values and inconsistent SDK
// bounds are all reported, each error listing every offending field.
package resolver
