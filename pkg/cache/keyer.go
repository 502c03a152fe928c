package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...interface{}) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// GridKeyOpts carries the grid parameters that distinguish rasterizations of
// the same polygon.
type GridKeyOpts struct {
	Size    float64 `json:"size"`
	OffsetX float64 `json:"offset_x"`
	OffsetZ float64 `json:"offset_z"`
}

// EvalKeyOpts carries the evaluation options that distinguish full pipeline
// runs over the same parcel.
type EvalKeyOpts struct {
	GridSize float64 `json:"grid_size"`
	Steps    int     `json:"steps"`
}

// Keyer generates cache keys for the geometry pipeline stages.
type Keyer interface {
	// InsetKey keys an inset result by the source polygon's content hash and
	// the inset distance.
	InsetKey(polyHash string, distance float64) string

	// GridKey keys a rasterization by polygon hash and grid parameters.
	GridKey(polyHash string, opts GridKeyOpts) string

	// EvalKey keys a full pipeline result by zone, polygon hash, and options.
	EvalKey(zone string, polyHash string, opts EvalKeyOpts) string
}

// DefaultKeyer is the standard key generator.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// InsetKey generates a key for inset caching.
func (k *DefaultKeyer) InsetKey(polyHash string, distance float64) string {
	return hashKey("inset", polyHash, distance)
}

// GridKey generates a key for rasterization caching.
func (k *DefaultKeyer) GridKey(polyHash string, opts GridKeyOpts) string {
	return hashKey("grid", polyHash, opts)
}

// EvalKey generates a key for full evaluation caching.
func (k *DefaultKeyer) EvalKey(zone string, polyHash string, opts EvalKeyOpts) string {
	return hashKey("eval", zone, polyHash, opts)
}

// ScopedKeyer wraps a Keyer with a prefix so separate deployments or tenants
// sharing one Redis instance get isolated namespaces.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// InsetKey generates a prefixed key for inset caching.
func (k *ScopedKeyer) InsetKey(polyHash string, distance float64) string {
	return k.prefix + k.inner.InsetKey(polyHash, distance)
}

// GridKey generates a prefixed key for rasterization caching.
func (k *ScopedKeyer) GridKey(polyHash string, opts GridKeyOpts) string {
	return k.prefix + k.inner.GridKey(polyHash, opts)
}

// EvalKey generates a prefixed key for full evaluation caching.
func (k *ScopedKeyer) EvalKey(zone string, polyHash string, opts EvalKeyOpts) string {
	return k.prefix + k.inner.EvalKey(zone, polyHash, opts)
}
