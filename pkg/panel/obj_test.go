package panel

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteOBJ(t *testing.T) {
	cfg := Config{Textures: []string{"rec1.png", "rec2.png"}, Radius: 1, WidthSegments: 1, HeightSegments: 1}
	layout, err := Build(cfg, &fakeLoader{}, &fakeScene{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, layout))

	counts := map[string]int{}
	var groups, faces []string
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		fields := strings.Fields(line)
		counts[fields[0]]++
		switch fields[0] {
		case "g":
			groups = append(groups, fields[1])
		case "f":
			faces = append(faces, line)
		}
	}

	assert.Equal(t, []string{"panel_0", "panel_1"}, groups)
	assert.Equal(t, 8, counts["v"])
	assert.Equal(t, 8, counts["vt"])
	assert.Equal(t, 8, counts["vn"])
	assert.Equal(t, 4, counts["f"])
	assert.Contains(t, buf.String(), "# texture rec2.png\n")

	// Second panel's faces are offset past the first panel's vertices.
	first := layout.Panels[1].World.Indices[0] + 5
	assert.True(t, strings.HasPrefix(faces[2], fmt.Sprintf("f %d/%d/%d ", first, first, first)), faces[2])

	p := layout.Panels[0].World.Positions[0]
	wantV := fmt.Sprintf("v %s %s %s\n", formatFloat(p.X()), formatFloat(p.Y()), formatFloat(p.Z()))
	assert.Contains(t, buf.String(), wantV)
}

func TestWriteOBJEmptyLayout(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteOBJ(&buf, &Layout{}))
	assert.Equal(t, "# panorama: 0 panels, radius 0.000000\no panorama\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWriteOBJPropagatesWriteErrors(t *testing.T) {
	layout, err := Build(Config{Textures: ids(2), Radius: 1}, &fakeLoader{}, &fakeScene{})
	require.NoError(t, err)
	assert.EqualError(t, WriteOBJ(failingWriter{}, layout), "disk full")
}
