package scene

// TextureKind identifies one of the five texture slots of a Material.
type TextureKind int

const (
	BaseColor TextureKind = iota
	MetallicRoughness
	Normal
	Occlusion
	Emissive
)

// TextureKinds lists the slots in output order.
var TextureKinds = []TextureKind{BaseColor, MetallicRoughness, Normal, Occlusion, Emissive}

func (k TextureKind) String() string {
	switch k {
	case BaseColor:
		return "baseColorTexture"
	case MetallicRoughness:
		return "metallicRoughnessTexture"
	case Normal:
		return "normalTexture"
	case Occlusion:
		return "occlusionTexture"
	case Emissive:
		return "emissiveTexture"
	}
	return "unknown"
}

// Texture returns the payload of a slot, nil if absent.
func (m *Material) Texture(kind TextureKind) []byte {
	switch kind {
	case BaseColor:
		return m.BaseColorTexture
	case MetallicRoughness:
		return m.MetallicRoughnessTexture
	case Normal:
		return m.NormalTexture
	case Occlusion:
		return m.OcclusionTexture
	case Emissive:
		return m.EmissiveTexture
	}
	return nil
}

// SetTexture stores a payload into a slot.
func (m *Material) SetTexture(kind TextureKind, data []byte) {
	switch kind {
	case BaseColor:
		m.BaseColorTexture = data
	case MetallicRoughness:
		m.MetallicRoughnessTexture = data
	case Normal:
		m.NormalTexture = data
	case Occlusion:
		m.OcclusionTexture = data
	case Emissive:
		m.EmissiveTexture = data
	}
}

// HasTextures reports whether any slot is set.
func (m *Material) HasTextures() bool {
	for _, k := range TextureKinds {
		if len(m.Texture(k)) > 0 {
			return true
		}
	}
	return false
}
