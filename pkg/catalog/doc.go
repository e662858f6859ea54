// Package catalog holds the immutable decision catalogs: the interview
// topic registry, the program eligibility definitions, and the weighted
// risk domains with their keyword indicator tables.
//
// Catalogs are constructed once at process start (Default, or Default
// overridden by a YAML file via Load) and passed by shared read-only
// reference into the engines. They are never mutated at runtime; read-only
// sharing across concurrently processed cases is safe.
package catalog
