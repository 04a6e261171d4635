package draw

import (
	"encoding/binary"
	"math"

	"github.com/lucasb-eyer/go-colorful"

	"pathview/internal/geom"
)

// VertexSize is the encoded size of a vertex: nine little endian float32
// values (position, colour, aux).
const VertexSize = 9 * 4

// Vertex is one element of a primitive buffer.
//
// Aux is overloaded: for rapid lines it holds the pre-motion point so a
// renderer can draw a ghost line; for point markers it holds (NaN, NaN,
// size); for the raster quad it holds (NaN, u, v). A NaN X on a line vertex
// means no auxiliary data.
type Vertex struct {
	Position geom.Vec3
	Color    colorful.Color
	Aux      geom.Vec3
}

// Append encodes v in upload layout.
func (v Vertex) Append(b []byte) []byte {
	for _, f := range [9]float64{
		v.Position.X, v.Position.Y, v.Position.Z,
		v.Color.R, v.Color.G, v.Color.B,
		v.Aux.X, v.Aux.Y, v.Aux.Z,
	} {
		b = binary.LittleEndian.AppendUint32(b, math.Float32bits(float32(f)))
	}
	return b
}

// EncodeVertices encodes vs back to back in upload layout.
func EncodeVertices(vs []Vertex) []byte {
	b := make([]byte, 0, len(vs)*VertexSize)
	for _, v := range vs {
		b = v.Append(b)
	}
	return b
}

// Buffers are the three primitive lists handed to a renderer.
type Buffers struct {
	Lines     []Vertex // pairs
	Points    []Vertex
	Triangles []Vertex
}

// LineCount is the number of line primitives.
func (b *Buffers) LineCount() int { return len(b.Lines) / 2 }

func noAux() geom.Vec3 { return geom.NaN3() }
