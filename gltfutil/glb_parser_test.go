package gltfutil

import (
	"bytes"
	"encoding/binary"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/binzume/gltfconv/scene"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
)

func pad4(b []byte, c byte) []byte {
	for len(b)%4 != 0 {
		b = append(b, c)
	}
	return b
}

func makeGLB(jsonText, bin []byte) []byte {
	jsonText = pad4(append([]byte{}, jsonText...), ' ')
	total := 12 + 8 + len(jsonText)
	if bin != nil {
		bin = pad4(append([]byte{}, bin...), 0)
		total += 8 + len(bin)
	}
	var buf bytes.Buffer
	buf.WriteString("glTF")
	binary.Write(&buf, binary.LittleEndian, []uint32{2, uint32(total), uint32(len(jsonText)), glbChunkJSON})
	buf.Write(jsonText)
	if bin != nil {
		binary.Write(&buf, binary.LittleEndian, []uint32{uint32(len(bin)), glbChunkBIN})
		buf.Write(bin)
	}
	return buf.Bytes()
}

func compareScenes(t *testing.T, a, b *scene.Scene) {
	t.Helper()
	if len(a.Vertexes) != len(b.Vertexes) || len(a.TexCoords) != len(b.TexCoords) ||
		len(a.Faces) != len(b.Faces) || len(a.Materials) != len(b.Materials) {
		t.Fatal("counts differ")
	}
	for i := range a.Vertexes {
		va, vb := a.Vertexes[i], b.Vertexes[i]
		if math.Abs(va.X-vb.X) > eps || math.Abs(va.Y-vb.Y) > eps || math.Abs(va.Z-vb.Z) > eps {
			t.Error("vertex", i, va, vb)
		}
	}
	for i := range a.TexCoords {
		ta, tb := a.TexCoords[i], b.TexCoords[i]
		if math.Abs(ta.U-tb.U) > eps || math.Abs(ta.V-tb.V) > eps {
			t.Error("texcoord", i, ta, tb)
		}
	}
	for i := range a.Faces {
		if len(a.Faces[i].Verts) != len(b.Faces[i].Verts) {
			t.Error("face", i)
			continue
		}
		for j := range a.Faces[i].Verts {
			if a.Faces[i].Verts[j] != b.Faces[i].Verts[j] {
				t.Error("face", i, a.Faces[i].Verts, b.Faces[i].Verts)
			}
		}
	}
	for i := range a.Materials {
		for _, k := range scene.TextureKinds {
			if !bytes.Equal(a.Materials[i].Texture(k), b.Materials[i].Texture(k)) {
				t.Error("material", i, k)
			}
		}
	}
}

func TestLoadGLBMatchesGLTF(t *testing.T) {
	dir := t.TempDir()
	texture := append(append([]byte{}, pngHeader...), 9, 8, 7)
	materials := `, "materials": [{"pbrMetallicRoughness": {"baseColorTexture": {"index": 0}}}]`

	writeFile(t, filepath.Join(dir, "tri.bin"), triangleBin())
	writeFile(t, filepath.Join(dir, "tex.png"), texture)
	writeFile(t, filepath.Join(dir, "tri.gltf"), []byte(triangleDoc("tri.bin", `, "images": [{"uri": "tex.png"}]`+materials)))

	bin := append(pad4(triangleBin(), 0), texture...)
	glbDoc := strings.Replace(triangleDoc("", `, "images": [{"bufferView": 3, "mimeType": "image/png"}]`+materials),
		`{"buffer": 0, "byteOffset": 60, "byteLength": 6}`,
		`{"buffer": 0, "byteOffset": 60, "byteLength": 6}, {"buffer": 0, "byteOffset": 68, "byteLength": 11}`, 1)
	writeFile(t, filepath.Join(dir, "tri.glb"), makeGLB([]byte(glbDoc), bin))

	fromGLTF, err := LoadGLTF(filepath.Join(dir, "tri.gltf"))
	if err != nil {
		t.Fatal(err)
	}
	fromGLB, err := Load(filepath.Join(dir, "tri.glb"))
	if err != nil {
		t.Fatal(err)
	}
	checkTriangle(t, fromGLB)
	if !bytes.Equal(fromGLB.Materials[0].BaseColorTexture, texture) {
		t.Error("GLB texture from bufferView")
	}
	compareScenes(t, fromGLTF, fromGLB)
}

func TestSavedDocumentRoundTrip(t *testing.T) {
	dir := t.TempDir()
	doc := gltf.NewDocument()
	pos := modeler.WritePosition(doc, [][3]float32{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0}})
	uv := modeler.WriteTextureCoord(doc, [][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}})
	indices := modeler.WriteIndices(doc, []uint16{0, 1, 2, 0, 2, 3})
	img, err := modeler.WriteImage(doc, "tex.png", "image/png", bytes.NewReader(append(pngHeader, 3)))
	if err != nil {
		t.Fatal(err)
	}
	doc.Textures = []*gltf.Texture{{Source: gltf.Index(img)}}
	doc.Materials = []*gltf.Material{{
		PBRMetallicRoughness: &gltf.PBRMetallicRoughness{BaseColorTexture: &gltf.TextureInfo{Index: 0}},
		EmissiveTexture:      &gltf.TextureInfo{Index: 0},
	}}
	doc.Meshes = []*gltf.Mesh{{Primitives: []*gltf.Primitive{{
		Indices:    gltf.Index(indices),
		Attributes: map[string]uint32{"POSITION": pos, "TEXCOORD_0": uv},
		Material:   gltf.Index(0),
	}}}}

	if err := gltf.SaveBinary(doc, filepath.Join(dir, "quad.glb")); err != nil {
		t.Fatal(err)
	}
	doc.Buffers[0].URI = "quad.bin"
	if err := gltf.Save(doc, filepath.Join(dir, "quad.gltf")); err != nil {
		t.Fatal(err)
	}

	fromGLB, err := LoadGLB(filepath.Join(dir, "quad.glb"))
	if err != nil {
		t.Fatal(err)
	}
	fromGLTF, err := LoadGLTF(filepath.Join(dir, "quad.gltf"))
	if err != nil {
		t.Fatal(err)
	}
	if len(fromGLB.Vertexes) != 4 || len(fromGLB.Faces) != 2 || len(fromGLB.Materials) != 1 {
		t.Fatal("unexpected counts", len(fromGLB.Vertexes), len(fromGLB.Faces), len(fromGLB.Materials))
	}
	if fromGLB.TexCoords[2] != (scene.TexCoord{U: 1, V: 0}) {
		t.Error("v should be flipped", fromGLB.TexCoords[2])
	}
	if !bytes.Equal(fromGLB.Materials[0].EmissiveTexture, append(pngHeader, 3)) {
		t.Error("emissive texture")
	}
	compareScenes(t, fromGLTF, fromGLB)
}

func TestReadGLBErrors(t *testing.T) {
	valid := makeGLB([]byte(triangleDoc("", "")), triangleBin())

	truncatedJSON := append([]byte{}, valid[:12]...)
	truncatedJSON = append(truncatedJSON, le(uint32(1000), uint32(glbChunkJSON))...)
	truncatedJSON = append(truncatedJSON, []byte(`{"asset":{}}`)...)

	cases := []struct {
		name string
		data []byte
		err  error
	}{
		{"bad magic", append([]byte("BADF"), valid[4:]...), scene.ErrInvalidMagic},
		{"empty", nil, scene.ErrUnexpectedEOF},
		{"short magic", []byte("glT"), scene.ErrUnexpectedEOF},
		{"short header", valid[:10], scene.ErrUnexpectedEOF},
		{"truncated json chunk", truncatedJSON, scene.ErrUnexpectedEOF},
		{"truncated bin header", valid[:len(valid)-len(pad4(triangleBin(), 0))-4], scene.ErrUnexpectedEOF},
		{"truncated bin chunk", valid[:len(valid)-10], scene.ErrUnexpectedEOF},
	}
	for _, c := range cases {
		_, err := ReadGLB(bytes.NewReader(c.data))
		if !errors.Is(err, c.err) {
			t.Errorf("%s: got %v, want %v", c.name, err, c.err)
		}
	}

	glb, err := ReadGLB(bytes.NewReader(valid))
	if err != nil {
		t.Fatal(err)
	}
	if glb.Version != 2 || len(glb.BIN) != len(pad4(triangleBin(), 0)) {
		t.Error("chunks", glb.Version, len(glb.BIN))
	}
}

func TestParseGLBWithoutBINChunk(t *testing.T) {
	glb := makeGLB([]byte(triangleDoc("", "")), nil)
	_, err := ParseGLB(bytes.NewReader(glb), t.TempDir())
	if !errors.Is(err, scene.ErrMissingRequiredStructure) {
		t.Error("buffer without BIN chunk should be ErrMissingRequiredStructure:", err)
	}

	bad := makeGLB([]byte(`{"meshes": [`), triangleBin())
	if _, err := ParseGLB(bytes.NewReader(bad), ""); !errors.Is(err, scene.ErrMalformedDocument) {
		t.Error("broken JSON chunk should be ErrMalformedDocument:", err)
	}
}

func TestChunkSourceBuffers(t *testing.T) {
	bin := []byte{1, 2, 3, 4}
	src := NewChunkSource(bin, t.TempDir())

	data, err := src.Buffer(0, &gltf.Buffer{ByteLength: 4})
	if err != nil || !bytes.Equal(data, bin) {
		t.Error("buffer 0 should be the BIN chunk", data, err)
	}
	if _, err := src.Buffer(1, &gltf.Buffer{ByteLength: 4}); !errors.Is(err, scene.ErrMissingRequiredStructure) {
		t.Error("buffer 1 without uri should fail", err)
	}
	if _, err := src.Buffer(0, &gltf.Buffer{ByteLength: 8}); !errors.Is(err, scene.ErrUnexpectedEOF) {
		t.Error("short BIN chunk should fail", err)
	}
	if _, err := NewChunkSource(nil, "").Buffer(0, &gltf.Buffer{ByteLength: 4}); !errors.Is(err, scene.ErrMissingRequiredStructure) {
		t.Error("missing BIN chunk should fail", err)
	}
}
