package geom

import (
	"testing"
)

func TestTriangulate(t *testing.T) {
	tris := Triangulate([]*Vector3{
		{0, 0, 0},
		{0, 1, 0},
		{0, 1, 1},
	})
	if len(tris) != 1 || tris[0] != [3]int{0, 1, 2} {
		t.Error("triangle", tris)
	}

	tris2 := Triangulate([]*Vector3{
		{0, 0, 0},
		{0, 1, 0},
		{0, 1, 1},
		{0, 0, 1},
	})
	if len(tris2) != 2 {
		t.Error("quad", tris2)
	}

	// non-convex
	tris3 := Triangulate([]*Vector3{
		{0, 0, 0},
		{0, 1, 0},
		{0, 1, 1},
		{0, 0.8, 0.2},
	})
	if len(tris3) != 2 {
		t.Error("non-convex", tris3)
	}

	pentagon := Triangulate([]*Vector3{
		{0, 0, 0},
		{2, 0, 0},
		{3, 1, 0},
		{1, 2, 0},
		{-1, 1, 0},
	})
	if len(pentagon) != 3 {
		t.Error("pentagon", pentagon)
	}
	for _, tri := range pentagon {
		for _, i := range tri {
			if i < 0 || i >= 5 {
				t.Error("index out of polygon", tri)
			}
		}
	}

	// Empty
	if len(Triangulate(nil)) != 0 {
		t.Error("not empty")
	}
	if len(Triangulate([]*Vector3{{0, 0, 0}, {1, 0, 0}})) != 0 {
		t.Error("line should be dropped")
	}
}

func TestIsInTriangle(t *testing.T) {
	a, b, c := NewVector3(0, 0, 0), NewVector3(2, 0, 0), NewVector3(0, 2, 0)
	if !IsInTriangle(NewVector3(0.5, 0.5, 0), a, b, c) {
		t.Error("inner point")
	}
	if IsInTriangle(NewVector3(2, 2, 0), a, b, c) {
		t.Error("outer point")
	}
}
