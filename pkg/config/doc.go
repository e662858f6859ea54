// Package config defines the triage service configuration.
//
// Configuration is loaded from a YAML file, filled in with defaults, and
// validated before use. Environment variables using the TRIAGE_SECTION_FIELD
// naming convention override file values (e.g. TRIAGE_CHECKPOINT_BACKEND).
//
// The loading sequence is:
//  1. Parse YAML from file
//  2. Apply default values
//  3. Apply environment variable overrides
//  4. Validate final configuration
//
// All validation errors are collected and returned together so a broken
// configuration file can be fixed in one pass.
package config
