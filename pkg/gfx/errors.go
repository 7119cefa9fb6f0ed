package gfx

import "errors"

var (
	ErrContextUnavailable  = errors.New("graphics context unavailable")
	ErrResourceUnavailable = errors.New("gpu resource unavailable")
	ErrShaderCompile       = errors.New("shader compile failed")
	ErrShaderLink          = errors.New("shader link failed")
	ErrInvalidGeometry     = errors.New("invalid geometry")
	ErrLayoutOverlap       = errors.New("attribute locations overlap")
	ErrInvalidAttribute    = errors.New("invalid attribute")
)
