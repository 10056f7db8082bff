package panel

import (
	"errors"
	"fmt"
)

var (
	ErrNoTextures      = errors.New("at least one texture is required")
	ErrInvalidRadius   = errors.New("radius must be a positive finite number")
	ErrInvalidAspect   = errors.New("aspect ratio must be a positive finite number")
	ErrInvalidSegments = errors.New("segment count must be positive")
	ErrTooManyVertices = errors.New("grid has more vertices than 32-bit indices can address")
)

// ConfigurationError reports a layout that cannot be built. It is returned
// before any texture is requested or any mesh is registered.
type ConfigurationError struct {
	Field string
	Value any
	Err   error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("panel: invalid %s (%v): %v", e.Field, e.Value, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ResourceError reports a panel whose texture could not be resolved. The
// panel keeps a placeholder texture and the rest of the layout is unaffected.
type ResourceError struct {
	Index     int
	TextureID string
	Err       error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("panel %d: texture %q: %v", e.Index, e.TextureID, e.Err)
}

func (e *ResourceError) Unwrap() error {
	return e.Err
}
