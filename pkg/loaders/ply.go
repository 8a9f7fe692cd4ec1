package loaders

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/df07/go-pathtracer/pkg/core"
)

// PLYHeader represents the parsed header information from a PLY file
type PLYHeader struct {
	Format   string // "binary_little_endian", "binary_big_endian", or "ascii"
	Version  string // Usually "1.0"
	Elements []PLYElement
}

// PLYElement is one element block (vertex, face, edge, ...) in file order
type PLYElement struct {
	Name  string
	Count int
	Props []PLYProperty
}

// PLYProperty represents a property definition in the PLY header
type PLYProperty struct {
	Name     string
	Type     string // Scalar type, or the item type of a list
	IsList   bool
	ListType string // For list properties, the type of the count
}

// Element returns the element with the given name, or nil
func (h *PLYHeader) Element(name string) *PLYElement {
	for i := range h.Elements {
		if h.Elements[i].Name == name {
			return &h.Elements[i]
		}
	}
	return nil
}

// LoadPLY loads a PLY file and returns its triangles
func LoadPLY(filename string) (*MeshData, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open PLY file: %w", err)
	}
	defer file.Close()

	mesh, err := ReadPLY(file)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return mesh, nil
}

// ReadPLY reads an ASCII or binary PLY stream. Polygon faces are fan-triangulated.
func ReadPLY(r io.Reader) (*MeshData, error) {
	reader := bufio.NewReaderSize(r, 1<<20)

	header, err := parsePLYHeader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to parse PLY header: %w", err)
	}

	var values plyValueReader
	switch header.Format {
	case "ascii":
		scanner := bufio.NewScanner(reader)
		scanner.Split(bufio.ScanWords)
		values = &asciiValueReader{scanner: scanner}
	case "binary_little_endian":
		values = &binaryValueReader{reader: reader, order: binary.LittleEndian}
	case "binary_big_endian":
		values = &binaryValueReader{reader: reader, order: binary.BigEndian}
	default:
		return nil, fmt.Errorf("unsupported PLY format: %s", header.Format)
	}

	mesh := &MeshData{}
	for _, element := range header.Elements {
		if err := readPLYElement(values, element, mesh); err != nil {
			return nil, fmt.Errorf("failed to read %s data: %w", element.Name, err)
		}
	}

	for _, index := range mesh.Faces {
		if index < 0 || index >= len(mesh.Vertices) {
			return nil, fmt.Errorf("face index %d out of range for %d vertices", index, len(mesh.Vertices))
		}
	}

	return mesh, nil
}

// parsePLYHeader consumes the header, leaving reader at the first data byte
func parsePLYHeader(reader *bufio.Reader) (*PLYHeader, error) {
	header := &PLYHeader{}

	magic, err := reader.ReadString('\n')
	if err != nil || strings.TrimSpace(magic) != "ply" {
		return nil, fmt.Errorf("missing ply magic number")
	}

	for {
		line, err := reader.ReadString('\n')
		if err != nil {
			return nil, fmt.Errorf("header ended before end_header: %w", err)
		}
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch parts[0] {
		case "end_header":
			if header.Format == "" {
				return nil, fmt.Errorf("missing format line")
			}
			return header, nil
		case "format":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid format line: %q", strings.TrimSpace(line))
			}
			header.Format = parts[1]
			header.Version = parts[2]
		case "comment", "obj_info":
		case "element":
			if len(parts) < 3 {
				return nil, fmt.Errorf("invalid element line: %q", strings.TrimSpace(line))
			}
			count, err := strconv.Atoi(parts[2])
			if err != nil || count < 0 {
				return nil, fmt.Errorf("invalid element count: %s", parts[2])
			}
			header.Elements = append(header.Elements, PLYElement{Name: parts[1], Count: count})
		case "property":
			if len(header.Elements) == 0 {
				return nil, fmt.Errorf("property before any element")
			}
			prop, err := parsePLYProperty(parts[1:])
			if err != nil {
				return nil, fmt.Errorf("failed to parse property: %w", err)
			}
			last := &header.Elements[len(header.Elements)-1]
			last.Props = append(last.Props, prop)
		default:
			return nil, fmt.Errorf("unknown header keyword %q", parts[0])
		}
	}
}

// parsePLYProperty parses a property line from the PLY header
func parsePLYProperty(parts []string) (PLYProperty, error) {
	if len(parts) < 2 {
		return PLYProperty{}, fmt.Errorf("invalid property definition")
	}

	var prop PLYProperty
	if parts[0] == "list" {
		if len(parts) < 4 {
			return PLYProperty{}, fmt.Errorf("invalid list property definition")
		}
		prop = PLYProperty{IsList: true, ListType: parts[1], Type: parts[2], Name: parts[3]}
		if getTypeSize(prop.ListType) == 0 {
			return PLYProperty{}, fmt.Errorf("unknown list count type %q", prop.ListType)
		}
	} else {
		prop = PLYProperty{Type: parts[0], Name: parts[1]}
	}

	if getTypeSize(prop.Type) == 0 {
		return PLYProperty{}, fmt.Errorf("unknown property type %q", prop.Type)
	}
	return prop, nil
}

// getTypeSize returns the byte size of a PLY scalar type, or 0 if unknown
func getTypeSize(dataType string) int {
	switch dataType {
	case "char", "int8", "uchar", "uint8":
		return 1
	case "short", "int16", "ushort", "uint16":
		return 2
	case "int", "int32", "uint", "uint32", "float", "float32":
		return 4
	case "double", "float64":
		return 8
	default:
		return 0
	}
}

// readPLYElement reads every item of one element, keeping vertex and face data
func readPLYElement(values plyValueReader, element PLYElement, mesh *MeshData) error {
	propIndex := make(map[string]int, len(element.Props))
	for i, prop := range element.Props {
		propIndex[prop.Name] = i
	}
	_, hasNormals := propIndex["nx"]
	_, hasColors := propIndex["red"]

	scalars := make([]float64, len(element.Props))
	var polygon []int

	for item := 0; item < element.Count; item++ {
		polygon = polygon[:0]

		for i, prop := range element.Props {
			if !prop.IsList {
				v, err := values.read(prop.Type)
				if err != nil {
					return fmt.Errorf("item %d property %s: %w", item, prop.Name, err)
				}
				scalars[i] = v
				continue
			}

			count, err := values.read(prop.ListType)
			if err != nil {
				return fmt.Errorf("item %d list %s: %w", item, prop.Name, err)
			}
			keep := element.Name == "face" && (prop.Name == "vertex_indices" || prop.Name == "vertex_index")
			for k := 0; k < int(count); k++ {
				v, err := values.read(prop.Type)
				if err != nil {
					return fmt.Errorf("item %d list %s: %w", item, prop.Name, err)
				}
				if keep {
					polygon = append(polygon, int(v))
				}
			}
		}

		switch element.Name {
		case "vertex":
			get := func(name string) float64 {
				if i, ok := propIndex[name]; ok {
					return scalars[i]
				}
				return 0
			}
			mesh.Vertices = append(mesh.Vertices, core.NewVec3(get("x"), get("y"), get("z")))
			if hasNormals {
				mesh.Normals = append(mesh.Normals, core.NewVec3(get("nx"), get("ny"), get("nz")))
			}
			if hasColors {
				scale := 1.0
				if redType := element.Props[propIndex["red"]].Type; redType == "uchar" || redType == "uint8" {
					scale = 255
				}
				mesh.Colors = append(mesh.Colors, core.NewVec3(get("red")/scale, get("green")/scale, get("blue")/scale))
			}
		case "face":
			if len(polygon) < 3 {
				return fmt.Errorf("face %d has %d vertices", item, len(polygon))
			}
			for k := 1; k+1 < len(polygon); k++ {
				mesh.Faces = append(mesh.Faces, polygon[0], polygon[k], polygon[k+1])
			}
		}
	}

	return nil
}

// plyValueReader decodes one scalar of the given PLY type
type plyValueReader interface {
	read(dataType string) (float64, error)
}

type asciiValueReader struct {
	scanner *bufio.Scanner
}

func (r *asciiValueReader) read(dataType string) (float64, error) {
	if !r.scanner.Scan() {
		if err := r.scanner.Err(); err != nil {
			return 0, err
		}
		return 0, io.ErrUnexpectedEOF
	}
	return strconv.ParseFloat(r.scanner.Text(), 64)
}

type binaryValueReader struct {
	reader *bufio.Reader
	order  binary.ByteOrder
	buf    [8]byte
}

func (r *binaryValueReader) read(dataType string) (float64, error) {
	size := getTypeSize(dataType)
	b := r.buf[:size]
	if _, err := io.ReadFull(r.reader, b); err != nil {
		return 0, err
	}

	switch dataType {
	case "char", "int8":
		return float64(int8(b[0])), nil
	case "uchar", "uint8":
		return float64(b[0]), nil
	case "short", "int16":
		return float64(int16(r.order.Uint16(b))), nil
	case "ushort", "uint16":
		return float64(r.order.Uint16(b)), nil
	case "int", "int32":
		return float64(int32(r.order.Uint32(b))), nil
	case "uint", "uint32":
		return float64(r.order.Uint32(b)), nil
	case "float", "float32":
		return float64(math.Float32frombits(r.order.Uint32(b))), nil
	default:
		return math.Float64frombits(r.order.Uint64(b)), nil
	}
}
