package kv

import "strconv"

// Backend identifies a key-value engine generation.
type Backend int

const (
	// BackendKV1 is the unversioned key-value engine.
	BackendKV1 Backend = 1
	// BackendKV2 is the versioned key-value engine with the data envelope.
	BackendKV2 Backend = 2
)

func (b Backend) String() string {
	switch b {
	case BackendKV1:
		return "kv"
	case BackendKV2:
		return "kv-v2"
	}
	return "unknown"
}

// MountInfo describes the secret engine mount owning a path, as reported by
// sys/internal/ui/mounts. Values are immutable once constructed; treat the
// Options map as read-only.
type MountInfo struct {
	// Path is the mount prefix, always terminated with a trailing "/".
	// Empty when the mount is unknown.
	Path string

	// Options holds engine options. The "version" entry distinguishes
	// engine generations ("1" or "2"). Nil when the mount reports none.
	Options map[string]interface{}

	// Available is true only when the metadata lookup succeeded and
	// returned real mount data.
	Available bool
}

// mountInfoUnavailable stands in whenever resolution is impossible, so
// callers never have to handle an absent MountInfo.
var mountInfoUnavailable = MountInfo{}

// UnavailableMountInfo returns the shared value representing "no mount
// information could be determined".
func UnavailableMountInfo() MountInfo {
	return mountInfoUnavailable
}

// IsKeyValue reports whether the mount is a key-value engine of the given
// generation. Unavailable mounts, mounts without a path, and mounts without
// options never match.
func (m MountInfo) IsKeyValue(backend Backend) bool {
	if !m.Available || m.Path == "" || m.Options == nil {
		return false
	}

	version, ok := m.Options["version"]
	if !ok || version == nil {
		return false
	}

	return toString(version) == strconv.Itoa(int(backend))
}

// toString renders an option value the way Vault serializes it. Mount
// options arrive as JSON strings in practice, but tolerate other scalars.
func toString(v interface{}) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}
