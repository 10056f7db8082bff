package render

import "embed"

//go:embed shaders/*.vert shaders/*.frag
var shaderFiles embed.FS
