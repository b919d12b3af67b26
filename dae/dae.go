package dae

import "encoding/xml"

const (
	Namespace = "http://www.collada.org/2005/11/COLLADASchema"
	Version   = "1.4.1"
)

// COLLADA is the subset of the COLLADA 1.4.1 schema written by this package.
type COLLADA struct {
	XMLName xml.Name `xml:"COLLADA"`
	Xmlns   string   `xml:"xmlns,attr"`
	Version string   `xml:"version,attr"`

	Asset               Asset               `xml:"asset"`
	LibraryImages       LibraryImages       `xml:"library_images"`
	LibraryEffects      LibraryEffects      `xml:"library_effects"`
	LibraryMaterials    LibraryMaterials    `xml:"library_materials"`
	LibraryGeometries   LibraryGeometries   `xml:"library_geometries"`
	LibraryVisualScenes LibraryVisualScenes `xml:"library_visual_scenes"`
	Scene               Scene               `xml:"scene"`
}

type Asset struct {
	UpAxis string `xml:"up_axis"`
}

type LibraryImages struct {
	Images []*Image `xml:"image"`
}

type Image struct {
	ID       string `xml:"id,attr"`
	InitFrom string `xml:"init_from"`
}

type LibraryEffects struct {
	Effects []*Effect `xml:"effect"`
}

type Effect struct {
	ID            string        `xml:"id,attr"`
	ProfileCOMMON ProfileCOMMON `xml:"profile_COMMON"`
}

type ProfileCOMMON struct {
	NewParams []*NewParam `xml:"newparam"`
	Technique Technique   `xml:"technique"`
}

type NewParam struct {
	Sid       string     `xml:"sid,attr"`
	Surface   *Surface   `xml:"surface,omitempty"`
	Sampler2D *Sampler2D `xml:"sampler2D,omitempty"`
}

type Surface struct {
	Type     string `xml:"type,attr"`
	InitFrom string `xml:"init_from"`
}

type Sampler2D struct {
	Source string `xml:"source"`
}

type Technique struct {
	Sid   string `xml:"sid,attr"`
	Phong Phong  `xml:"phong"`
}

type Phong struct {
	Diffuse Diffuse `xml:"diffuse"`
}

type Diffuse struct {
	Color   string   `xml:"color,omitempty"`
	Texture *Texture `xml:"texture,omitempty"`
}

type Texture struct {
	Texture  string `xml:"texture,attr"`
	Texcoord string `xml:"texcoord,attr"`
}

type LibraryMaterials struct {
	Materials []*Material `xml:"material"`
}

type Material struct {
	ID             string         `xml:"id,attr"`
	Name           string         `xml:"name,attr"`
	InstanceEffect InstanceEffect `xml:"instance_effect"`
}

type InstanceEffect struct {
	URL string `xml:"url,attr"`
}

type LibraryGeometries struct {
	Geometries []*Geometry `xml:"geometry"`
}

type Geometry struct {
	ID   string `xml:"id,attr"`
	Mesh Mesh   `xml:"mesh"`
}

type Mesh struct {
	Sources   []*Source  `xml:"source"`
	Vertices  Vertices   `xml:"vertices"`
	Triangles *Triangles `xml:"triangles"`
}

type Source struct {
	ID              string          `xml:"id,attr"`
	FloatArray      FloatArray      `xml:"float_array"`
	TechniqueCommon SourceTechnique `xml:"technique_common"`
}

type FloatArray struct {
	ID    string `xml:"id,attr"`
	Count int    `xml:"count,attr"`
	Value string `xml:",chardata"`
}

type SourceTechnique struct {
	Accessor Accessor `xml:"accessor"`
}

type Accessor struct {
	Source string   `xml:"source,attr"`
	Count  int      `xml:"count,attr"`
	Stride int      `xml:"stride,attr"`
	Params []*Param `xml:"param"`
}

type Param struct {
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
}

type Vertices struct {
	ID     string   `xml:"id,attr"`
	Inputs []*Input `xml:"input"`
}

type Input struct {
	Semantic string `xml:"semantic,attr"`
	Source   string `xml:"source,attr"`
}

type SharedInput struct {
	Semantic string `xml:"semantic,attr"`
	Source   string `xml:"source,attr"`
	Offset   int    `xml:"offset,attr"`
}

type Triangles struct {
	Count    int            `xml:"count,attr"`
	Material string         `xml:"material,attr,omitempty"`
	Inputs   []*SharedInput `xml:"input"`
	P        string         `xml:"p"`
}

type LibraryVisualScenes struct {
	VisualScenes []*VisualScene `xml:"visual_scene"`
}

type VisualScene struct {
	ID    string  `xml:"id,attr"`
	Nodes []*Node `xml:"node"`
}

type Node struct {
	Name             string           `xml:"name,attr"`
	InstanceGeometry InstanceGeometry `xml:"instance_geometry"`
}

type InstanceGeometry struct {
	URL          string        `xml:"url,attr"`
	BindMaterial *BindMaterial `xml:"bind_material,omitempty"`
}

type BindMaterial struct {
	InstanceMaterials []*InstanceMaterial `xml:"technique_common>instance_material"`
}

type InstanceMaterial struct {
	Symbol          string           `xml:"symbol,attr"`
	Target          string           `xml:"target,attr"`
	BindVertexInput *BindVertexInput `xml:"bind_vertex_input,omitempty"`
}

type BindVertexInput struct {
	Semantic      string `xml:"semantic,attr"`
	InputSemantic string `xml:"input_semantic,attr"`
	InputSet      int    `xml:"input_set,attr"`
}

type Scene struct {
	InstanceVisualScene InstanceVisualScene `xml:"instance_visual_scene"`
}

type InstanceVisualScene struct {
	URL string `xml:"url,attr"`
}
