package kv

import (
	"context"
	"strings"
	"sync"

	"github.com/systmms/vaultkv/internal/logging"
)

// mountMetadataPath is Vault's internal endpoint for mount introspection.
// Appending a secret path yields metadata about the mount owning it.
const mountMetadataPath = "sys/internal/ui/mounts/"

// Client reads secrets from key-value engines, adapting the request path and
// response shape to the engine generation backing each path.
//
// Mount metadata is cached per requested path for the life of the Client.
// The cache is safe for concurrent use; duplicate in-flight resolutions of
// the same path are tolerated (last write wins) since MountInfo is immutable
// and reconstructed from the same remote truth.
type Client struct {
	reader Reader
	logger *logging.Logger
	mounts sync.Map // requested path -> MountInfo
}

// New creates a Client reading through r. A nil logger disables debug
// diagnostics.
func New(r Reader, logger *logging.Logger) *Client {
	if logger == nil {
		logger = logging.New(false, true)
	}
	return &Client{
		reader: r,
		logger: logger,
	}
}

// IsVersioned reports whether path belongs to a versioned key-value mount.
// A token that is not allowed to introspect mounts yields false, not an
// error. Any other metadata lookup failure is returned as a *ResolutionError.
func (c *Client) IsVersioned(ctx context.Context, path string) (bool, error) {
	info, err := c.MountInfoFor(ctx, path)
	if err != nil {
		return false, err
	}
	return info.IsKeyValue(BackendKV2), nil
}

// GetSecret reads the secret at path, regardless of the engine generation
// backing it. Unversioned paths are read as-is; versioned paths are read via
// the {mount}data/{key} form and the engine's metadata envelope is unwrapped
// so the returned Data is the flat secret map in both cases.
//
// A nil response with nil error means nothing exists at the path. A failed
// mount resolution aborts the call; no fallback read is attempted.
func (c *Client) GetSecret(ctx context.Context, path string) (*Response, error) {
	info, err := c.MountInfoFor(ctx, path)
	if err != nil {
		return nil, err
	}

	if !info.IsKeyValue(BackendKV2) {
		return c.reader.Read(ctx, path)
	}

	response, err := c.reader.Read(ctx, dataPath(info.Path, path))
	if err != nil {
		return nil, err
	}

	unwrapDataResponse(response)

	return response, nil
}

// MountInfoFor resolves the mount owning path, consulting the remote
// metadata endpoint on the first call and the cache afterwards.
//
// Unavailable results are never cached: an empty metadata response or a
// permission denial yields the unavailable value and the next call resolves
// again. Any other lookup failure is returned as a *ResolutionError and is
// likewise not cached.
func (c *Client) MountInfoFor(ctx context.Context, path string) (MountInfo, error) {
	if cached, ok := c.mounts.Load(path); ok {
		recordMountCacheHit()
		return cached.(MountInfo), nil
	}
	recordMountCacheMiss()

	info, err := c.doResolveMountInfo(ctx, path)
	if err != nil {
		if IsForbidden(err) {
			recordMountResolutionDenied()
			c.logger.Debug("Unable to determine mount info for %q, treating as unavailable: %v", path, err)
			return mountInfoUnavailable, nil
		}
		recordMountResolutionFailure()
		return mountInfoUnavailable, &ResolutionError{Path: path, Err: err}
	}

	if !info.Available {
		// The emptiness may be transient; resolve again next time.
		return info, nil
	}

	c.mounts.Store(path, info)

	return info, nil
}

// doResolveMountInfo performs the remote metadata lookup for path.
func (c *Client) doResolveMountInfo(ctx context.Context, path string) (MountInfo, error) {
	response, err := c.reader.Read(ctx, mountMetadataPath+path)
	if err != nil {
		return mountInfoUnavailable, err
	}

	if response == nil || response.Data == nil {
		return mountInfoUnavailable, nil
	}

	mountPath, _ := response.Data["path"].(string)
	options, _ := response.Data["options"].(map[string]interface{})

	return MountInfo{Path: mountPath, Options: options, Available: true}, nil
}

// dataPath rewrites a requested path to the versioned engine's read form:
// the "data/" segment is inserted between the mount prefix and the key.
// Paths outside the mount are returned unchanged rather than guessed at.
func dataPath(mountPath, requested string) string {
	if !strings.HasPrefix(requested, mountPath) {
		return requested
	}

	return mountPath + "data/" + strings.TrimPrefix(requested, mountPath)
}

// unwrapDataResponse strips the versioned engine's metadata envelope: when
// the top-level payload nests the secret under "data", that nested map
// replaces the payload so callers see the flat secret map.
func unwrapDataResponse(response *Response) {
	if response == nil || response.Data == nil {
		return
	}

	nested, ok := response.Data["data"].(map[string]interface{})
	if !ok {
		return
	}

	response.Data = nested
}
