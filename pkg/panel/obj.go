package panel

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// WriteOBJ writes the world-space panels of layout as a Wavefront OBJ
// document, one group per panel. Vertex, UV and normal indices coincide, so
// every face corner is written as i/i/i.
func WriteOBJ(w io.Writer, layout *Layout) error {
	bw := bufio.NewWriter(w)

	fmt.Fprintf(bw, "# panorama: %d panels, radius %s\n", len(layout.Panels), formatFloat(layout.Radius))
	fmt.Fprintln(bw, "o panorama")

	base := 1
	for _, p := range layout.Panels {
		m := p.World
		fmt.Fprintf(bw, "g panel_%d\n", p.Index)
		if p.TextureID != "" {
			fmt.Fprintf(bw, "# texture %s\n", p.TextureID)
		}
		for _, v := range m.Positions {
			fmt.Fprintf(bw, "v %s %s %s\n", formatFloat(v.X()), formatFloat(v.Y()), formatFloat(v.Z()))
		}
		for _, uv := range m.UVs {
			fmt.Fprintf(bw, "vt %s %s\n", formatFloat(uv.X()), formatFloat(uv.Y()))
		}
		for _, n := range m.Normals {
			fmt.Fprintf(bw, "vn %s %s %s\n", formatFloat(n.X()), formatFloat(n.Y()), formatFloat(n.Z()))
		}
		for i := 0; i+2 < len(m.Indices); i += 3 {
			a, b, c := base+int(m.Indices[i]), base+int(m.Indices[i+1]), base+int(m.Indices[i+2])
			fmt.Fprintf(bw, "f %d/%d/%d %d/%d/%d %d/%d/%d\n", a, a, a, b, b, b, c, c, c)
		}
		base += len(m.Positions)
	}

	return bw.Flush()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', 6, 64)
}
