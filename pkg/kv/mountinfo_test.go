package kv

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMountInfoIsKeyValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		info    MountInfo
		backend Backend
		want    bool
	}{
		{
			name: "versioned mount matches v2",
			info: MountInfo{
				Path:      "secret/",
				Options:   map[string]interface{}{"version": "2"},
				Available: true,
			},
			backend: BackendKV2,
			want:    true,
		},
		{
			name: "versioned mount does not match v1",
			info: MountInfo{
				Path:      "secret/",
				Options:   map[string]interface{}{"version": "2"},
				Available: true,
			},
			backend: BackendKV1,
			want:    false,
		},
		{
			name: "unversioned mount matches v1",
			info: MountInfo{
				Path:      "kv/",
				Options:   map[string]interface{}{"version": "1"},
				Available: true,
			},
			backend: BackendKV1,
			want:    true,
		},
		{
			name: "numeric version value",
			info: MountInfo{
				Path:      "secret/",
				Options:   map[string]interface{}{"version": float64(2)},
				Available: true,
			},
			backend: BackendKV2,
			want:    true,
		},
		{
			name:    "unavailable mount",
			info:    UnavailableMountInfo(),
			backend: BackendKV2,
			want:    false,
		},
		{
			name: "missing options",
			info: MountInfo{
				Path:      "secret/",
				Available: true,
			},
			backend: BackendKV2,
			want:    false,
		},
		{
			name: "empty mount path",
			info: MountInfo{
				Options:   map[string]interface{}{"version": "2"},
				Available: true,
			},
			backend: BackendKV2,
			want:    false,
		},
		{
			name: "options without version",
			info: MountInfo{
				Path:      "secret/",
				Options:   map[string]interface{}{"default_lease_ttl": "0s"},
				Available: true,
			},
			backend: BackendKV2,
			want:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, tt.info.IsKeyValue(tt.backend))
		})
	}
}

func TestUnavailableMountInfo(t *testing.T) {
	t.Parallel()

	info := UnavailableMountInfo()
	assert.False(t, info.Available)
	assert.Empty(t, info.Path)
	assert.Nil(t, info.Options)
}

func TestIsForbidden(t *testing.T) {
	t.Parallel()

	forbidden := &RequestError{StatusCode: http.StatusForbidden, Path: "secret/x"}
	assert.True(t, IsForbidden(forbidden))
	assert.True(t, IsForbidden(&ResolutionError{Path: "secret/x", Err: forbidden}))
	assert.False(t, IsForbidden(&RequestError{StatusCode: http.StatusNotFound}))
	assert.False(t, IsForbidden(assert.AnError))
	assert.False(t, IsForbidden(nil))
}

func TestBackendString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "kv", BackendKV1.String())
	assert.Equal(t, "kv-v2", BackendKV2.String())
	assert.Equal(t, "unknown", Backend(0).String())
}
