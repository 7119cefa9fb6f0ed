package gfx

import (
	_ "embed"
	"strings"
)

// Attribute locations shared by the instanced shaders and mesh layout.
const (
	LocationVertex    = 0
	LocationPosition  = 1
	LocationColor     = 2
	LocationTransform = 3
)

var (
	//go:embed shaders/instanced.vert
	instancedVertexSource string
	//go:embed shaders/instanced.frag
	instancedFragmentSource string
)

// BuildShaderSource prefixes a shader body with a dialect header.
func BuildShaderSource(header, body string) string {
	var sb strings.Builder
	sb.WriteString(header)
	if header != "" && !strings.HasSuffix(header, "\n") {
		sb.WriteString("\n")
	}
	sb.WriteString(body)
	if !strings.HasSuffix(body, "\n") {
		sb.WriteString("\n")
	}
	return sb.String()
}
