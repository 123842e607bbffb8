// Package config assembles the family-sync client configuration from
// four sources, highest priority first: environment variables (with the
// FAMILY_SYNC_ prefix), command-line flags, an optional JSON file named
// by -c/-config, and built-in defaults.
//
// The merge is performed by a small builder on top of dario.cat/mergo:
// each source produces a partial [StructuredConfig], and merging fills
// only fields the higher-priority sources left at their zero value. The
// merged result is validated before use.
//
// Callers should not consume [StructuredConfig] directly; the client
// runtime uses the narrowed [ClientConfig] view built by
// [GetClientConfig].
package config
