// Package cache stores finished diagrams and rendered artifacts by content
// hash.
//
// Three backends implement [Cache]:
//
//   - [FileCache]: JSON entry files under a directory, for the CLI
//   - [RedisCache]: shared cache for the API server
//   - [NullCache]: disables caching
//
// Keys come from a [Keyer] so backends never see raw inputs. A diagram key
// hashes the line list together with everything that changes the output
// (mode and geometry), so identical requests hit the same entry no matter
// which process built it.
package cache

import (
	"context"
	"time"
)

// Default time-to-live values.
const (
	TTLDiagram = 7 * 24 * time.Hour
	TTLRender  = 7 * 24 * time.Hour
)

// Cache is a byte store with per-entry expiry. A TTL of 0 never expires.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// DiagramKeyOpts are the build inputs, besides the lines, that change a diagram.
type DiagramKeyOpts struct {
	Mode     string `json:"mode"`
	Geometry any    `json:"geometry,omitempty"`
}

// RenderKeyOpts are the inputs that change a rendered artifact.
type RenderKeyOpts struct {
	Format string `json:"format"`
}

// Keyer derives cache keys.
type Keyer interface {
	// DiagramKey keys a built graph by the hash of its input lines.
	DiagramKey(linesHash string, opts DiagramKeyOpts) string
	// RenderKey keys an exported artifact by the hash of its graph.
	RenderKey(graphHash string, opts RenderKeyOpts) string
}

// DefaultKeyer hashes key components with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

func (DefaultKeyer) DiagramKey(linesHash string, opts DiagramKeyOpts) string {
	return hashKey("diagram", linesHash, opts)
}

func (DefaultKeyer) RenderKey(graphHash string, opts RenderKeyOpts) string {
	return hashKey("render", graphHash, opts)
}
