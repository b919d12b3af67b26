package gltfutil

import (
	"github.com/binzume/gltfconv/scene"
	"github.com/pkg/errors"
	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/binary"
)

// glTF componentType codes.
const (
	componentByte   = 5120
	componentUbyte  = 5121
	componentShort  = 5122
	componentUshort = 5123
	componentUint   = 5125
	componentFloat  = 5126
)

func componentSize(code uint32) (uint32, error) {
	switch code {
	case componentByte, componentUbyte:
		return 1, nil
	case componentShort, componentUshort:
		return 2, nil
	case componentUint, componentFloat:
		return 4, nil
	}
	return 0, errors.Wrapf(scene.ErrUnsupportedComponentType, "componentType %d", code)
}

// accessorReader resolves accessor -> bufferView -> buffer through a Source.
type accessorReader struct {
	doc *document
	src Source
}

func (r *accessorReader) accessor(index uint32) (*gltf.Accessor, error) {
	if int(index) >= len(r.doc.Accessors) || r.doc.Accessors[index] == nil {
		return nil, errors.Wrapf(scene.ErrMissingRequiredStructure, "accessor %d", index)
	}
	return r.doc.Accessors[index], nil
}

// bufferView returns the bytes of a whole buffer view.
func (r *accessorReader) bufferView(index uint32) ([]byte, *gltf.BufferView, error) {
	if int(index) >= len(r.doc.BufferViews) || r.doc.BufferViews[index] == nil {
		return nil, nil, errors.Wrapf(scene.ErrMissingRequiredStructure, "bufferView %d", index)
	}
	bv := r.doc.BufferViews[index]
	if int(bv.Buffer) >= len(r.doc.Buffers) || r.doc.Buffers[bv.Buffer] == nil {
		return nil, nil, errors.Wrapf(scene.ErrMissingRequiredStructure, "buffer %d (bufferView %d)", bv.Buffer, index)
	}
	data, err := r.src.Buffer(int(bv.Buffer), r.doc.Buffers[bv.Buffer])
	if err != nil {
		return nil, nil, err
	}
	start := uint64(bv.ByteOffset)
	if start > uint64(len(data)) {
		return nil, nil, errors.Wrapf(scene.ErrUnexpectedEOF, "bufferView %d: byteOffset %d beyond buffer of %d bytes", index, bv.ByteOffset, len(data))
	}
	end := uint64(len(data))
	if bv.ByteLength > 0 {
		end = start + uint64(bv.ByteLength)
		if end > uint64(len(data)) {
			return nil, nil, errors.Wrapf(scene.ErrUnexpectedEOF, "bufferView %d: %d bytes at %d, buffer has %d", index, bv.ByteLength, bv.ByteOffset, len(data))
		}
	}
	return data[start:end], bv, nil
}

// elements returns the byte range covering count elements of an accessor and the stride between them.
func (r *accessorReader) elements(index uint32, acr *gltf.Accessor, elemSize uint32) ([]byte, uint32, error) {
	if acr.BufferView == nil {
		return nil, 0, errors.Wrapf(scene.ErrMissingRequiredStructure, "accessor %d has no bufferView", index)
	}
	view, bv, err := r.bufferView(*acr.BufferView)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "accessor %d", index)
	}
	stride := elemSize
	if bv.ByteStride > 0 {
		stride = bv.ByteStride
	}
	if acr.Count == 0 {
		return nil, stride, nil
	}
	start := uint64(acr.ByteOffset)
	end := start + uint64(acr.Count-1)*uint64(stride) + uint64(elemSize)
	if end > uint64(len(view)) {
		return nil, 0, errors.Wrapf(scene.ErrUnexpectedEOF, "accessor %d: needs %d bytes, bufferView has %d", index, end, len(view))
	}
	return view[start:end], stride, nil
}

func (r *accessorReader) requireFloat(index uint32) error {
	if code := r.doc.componentType(index); code != componentFloat {
		return errors.Wrapf(scene.ErrUnsupportedComponentType, "accessor %d: componentType %d, want %d", index, code, componentFloat)
	}
	return nil
}

// ReadVec3 reads a VEC3 float accessor.
func (r *accessorReader) ReadVec3(index uint32) ([][3]float32, error) {
	acr, err := r.accessor(index)
	if err != nil {
		return nil, err
	}
	if err := r.requireFloat(index); err != nil {
		return nil, err
	}
	data, stride, err := r.elements(index, acr, 12)
	if err != nil {
		return nil, err
	}
	dst := make([][3]float32, acr.Count)
	if len(dst) > 0 {
		if err := binary.Read(data, stride, dst); err != nil {
			return nil, errors.Wrapf(err, "accessor %d", index)
		}
	}
	return dst, nil
}

// ReadVec2 reads a VEC2 float accessor.
func (r *accessorReader) ReadVec2(index uint32) ([][2]float32, error) {
	acr, err := r.accessor(index)
	if err != nil {
		return nil, err
	}
	if err := r.requireFloat(index); err != nil {
		return nil, err
	}
	data, stride, err := r.elements(index, acr, 8)
	if err != nil {
		return nil, err
	}
	dst := make([][2]float32, acr.Count)
	if len(dst) > 0 {
		if err := binary.Read(data, stride, dst); err != nil {
			return nil, errors.Wrapf(err, "accessor %d", index)
		}
	}
	return dst, nil
}

// ReadIndices reads a SCALAR index accessor of any of the five integer component types.
// Signed types keep their sign.
func (r *accessorReader) ReadIndices(index uint32) ([]int, error) {
	acr, err := r.accessor(index)
	if err != nil {
		return nil, err
	}
	code := r.doc.componentType(index)
	if code == componentFloat {
		return nil, errors.Wrapf(scene.ErrUnsupportedComponentType, "indices accessor %d: componentType %d", index, code)
	}
	size, err := componentSize(code)
	if err != nil {
		return nil, errors.Wrapf(err, "indices accessor %d", index)
	}
	data, stride, err := r.elements(index, acr, size)
	if err != nil {
		return nil, err
	}
	indices := make([]int, acr.Count)
	if len(indices) == 0 {
		return indices, nil
	}

	switch code {
	case componentByte:
		v := make([]int8, acr.Count)
		err = binary.Read(data, stride, v)
		for i := range v {
			indices[i] = int(v[i])
		}
	case componentUbyte:
		v := make([]uint8, acr.Count)
		err = binary.Read(data, stride, v)
		for i := range v {
			indices[i] = int(v[i])
		}
	case componentShort:
		v := make([]int16, acr.Count)
		err = binary.Read(data, stride, v)
		for i := range v {
			indices[i] = int(v[i])
		}
	case componentUshort:
		v := make([]uint16, acr.Count)
		err = binary.Read(data, stride, v)
		for i := range v {
			indices[i] = int(v[i])
		}
	case componentUint:
		v := make([]uint32, acr.Count)
		err = binary.Read(data, stride, v)
		for i := range v {
			indices[i] = int(v[i])
		}
	}
	if err != nil {
		return nil, errors.Wrapf(err, "indices accessor %d", index)
	}
	return indices, nil
}
