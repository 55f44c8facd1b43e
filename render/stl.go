package render

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chewxy/math32"
	"gonum.org/v1/gonum/spatial/r3"
)

// Triangles buffered per ReadTriangles call while writing files.
const trianglesInBuffer = 1 << 10

// WriteSTL writes model triangles to a writer in ASCII STL format.
// Normals are not computed, all facets are written with a zero normal.
func WriteSTL(w io.Writer, name string, model []Triangle3) error {
	sw := newSTLWriter(w, name)
	sw.write(model)
	return sw.close()
}

// CreateSTL creates the file at path and writes the triangles of r to it
// in ASCII STL format.
func CreateSTL(path, name string, r Renderer) (err error) {
	fp, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := fp.Close(); err == nil && cerr != nil {
			err = cerr
		}
	}()
	sw := newSTLWriter(fp, name)
	buf := make([]Triangle3, trianglesInBuffer)
	for {
		nt, rerr := r.ReadTriangles(buf)
		sw.write(buf[:nt])
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return fmt.Errorf("rendering %s: %w", path, rerr)
		}
	}
	if err = sw.close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// stlWriter writes ASCII STL. Write errors are sticky and reported by close.
type stlWriter struct {
	bw   *bufio.Writer
	name string
	line []byte
}

func newSTLWriter(w io.Writer, name string) *stlWriter {
	sw := &stlWriter{bw: bufio.NewWriter(w), name: name}
	sw.bw.WriteString("solid " + name + "\n")
	return sw
}

func (sw *stlWriter) write(model []Triangle3) {
	for _, t := range model {
		sw.bw.WriteString("facet normal 0 0 0\n")
		for _, v := range t.V {
			sw.line = append(sw.line[:0], "  vertex "...)
			sw.line = strconv.AppendFloat(sw.line, v.X, 'g', -1, 64)
			sw.line = append(sw.line, ' ')
			sw.line = strconv.AppendFloat(sw.line, v.Y, 'g', -1, 64)
			sw.line = append(sw.line, ' ')
			sw.line = strconv.AppendFloat(sw.line, v.Z, 'g', -1, 64)
			sw.line = append(sw.line, '\n')
			sw.bw.Write(sw.line)
		}
		sw.bw.WriteString("endfacet\n")
	}
}

func (sw *stlWriter) close() error {
	sw.bw.WriteString("endsolid " + sw.name + "\n")
	return sw.bw.Flush()
}

// ReadSTL reads an ASCII STL solid. Vertices are read in single precision
// as is customary for STL. "outer loop" and "endloop" lines are accepted
// but not required.
func ReadSTL(r io.Reader) (name string, model []Triangle3, err error) {
	var (
		sc      = bufio.NewScanner(r)
		ln      int
		d       stlTriangle
		nv      int
		inFacet bool
		started bool
	)
	defer func() {
		if err != nil {
			err = fmt.Errorf("STL line %d: %w", ln, err)
		}
	}()
	for sc.Scan() {
		ln++
		fields := strings.Fields(sc.Text())
		if len(fields) == 0 {
			continue
		}
		if !started {
			if fields[0] != "solid" {
				return "", nil, errors.New("expected solid")
			}
			name = strings.Join(fields[1:], " ")
			started = true
			continue
		}
		switch fields[0] {
		case "facet":
			if inFacet {
				return name, nil, errors.New("facet not terminated")
			}
			if len(fields) != 5 || fields[1] != "normal" {
				return name, nil, errors.New("malformed facet normal")
			}
			if err := parse3F32(fields[2:], &d.Normal); err != nil {
				return name, nil, err
			}
			inFacet, nv = true, 0
		case "outer", "endloop":
			if !inFacet {
				return name, nil, errors.New(fields[0] + " outside of facet")
			}
		case "vertex":
			if !inFacet || nv == 3 {
				return name, nil, errors.New("unexpected vertex")
			}
			if len(fields) != 4 {
				return name, nil, errors.New("malformed vertex")
			}
			if err := parse3F32(fields[1:], &d.Vertex[nv]); err != nil {
				return name, nil, err
			}
			nv++
		case "endfacet":
			if !inFacet || nv != 3 {
				return name, nil, fmt.Errorf("facet has %d vertices", nv)
			}
			if err := d.validate(); err != nil {
				return name, nil, err
			}
			model = append(model, d.toTriangle3())
			inFacet = false
		case "endsolid":
			if inFacet {
				return name, nil, errors.New("facet not terminated")
			}
			return name, model, nil
		default:
			return name, nil, fmt.Errorf("unexpected keyword %q", fields[0])
		}
	}
	if err := sc.Err(); err != nil {
		return name, nil, err
	}
	return name, nil, io.ErrUnexpectedEOF
}

// stlTriangle defines the triangle data within an STL file.
type stlTriangle struct {
	Normal [3]float32
	Vertex [3][3]float32
}

func (t stlTriangle) validate() error {
	if bad3F32(t.Normal) {
		return errors.New("inf/NaN STL triangle normal")
	}
	if bad3F32(t.Vertex[0]) || bad3F32(t.Vertex[1]) || bad3F32(t.Vertex[2]) {
		return errors.New("inf/NaN STL triangle vertex")
	}
	return nil
}

func (t stlTriangle) toTriangle3() Triangle3 {
	return Triangle3{V: [3]r3.Vec{
		r3From3F32(t.Vertex[0]),
		r3From3F32(t.Vertex[1]),
		r3From3F32(t.Vertex[2]),
	}}
}

func parse3F32(fields []string, f *[3]float32) error {
	for i := range f {
		v, err := strconv.ParseFloat(fields[i], 32)
		if err != nil {
			return err
		}
		f[i] = float32(v)
	}
	return nil
}

func bad3F32(f [3]float32) bool {
	return math32.IsNaN(f[0]) || math32.IsInf(f[0], 0) ||
		math32.IsNaN(f[1]) || math32.IsInf(f[1], 0) ||
		math32.IsNaN(f[2]) || math32.IsInf(f[2], 0)
}

func r3From3F32(f [3]float32) r3.Vec {
	return r3.Vec{X: float64(f[0]), Y: float64(f[1]), Z: float64(f[2])}
}
