// Package kv reads secrets from Vault key-value engines without requiring
// the caller to know which engine generation backs a path.
//
// The unversioned (v1) and versioned (v2) KV engines speak different wire
// dialects: v2 reads go to {mount}data/{key} and wrap the secret in a nested
// "data" envelope. kv.Client consults Vault's sys/internal/ui/mounts endpoint
// once per path to learn the owning mount and its engine options, caches the
// answer for the life of the process, and adapts reads accordingly so callers
// always see a flat secret map.
//
// Tokens that lack permission to introspect mounts degrade gracefully: the
// path is treated as unversioned and resolution is re-attempted on every
// call rather than cached.
package kv
