package models

import (
	"encoding/json"
	"fmt"
)

// Point is a projected coordinate in exactly 2 or 3 dimensions. The
// dimensionality is fixed at construction, so a visualization can never mix
// 2-D and 3-D points or carry a tuple of any other arity.
// It marshals as a JSON array: [x, y] or [x, y, z].
type Point struct {
	x, y, z float64
	dims    int
}

// NewPoint2D returns a 2-D point.
func NewPoint2D(x, y float64) Point {
	return Point{x: x, y: y, dims: 2}
}

// NewPoint3D returns a 3-D point.
func NewPoint3D(x, y, z float64) Point {
	return Point{x: x, y: y, z: z, dims: 3}
}

// Dims returns 2 or 3, or 0 for the zero value.
func (p Point) Dims() int { return p.dims }

// X returns the first coordinate.
func (p Point) X() float64 { return p.x }

// Y returns the second coordinate.
func (p Point) Y() float64 { return p.y }

// Z returns the third coordinate; 0 for 2-D points.
func (p Point) Z() float64 { return p.z }

// Coords returns the coordinates as a slice of length Dims().
func (p Point) Coords() []float64 {
	if p.dims == 3 {
		return []float64{p.x, p.y, p.z}
	}
	return []float64{p.x, p.y}
}

// MarshalJSON encodes the point as [x, y] or [x, y, z].
func (p Point) MarshalJSON() ([]byte, error) {
	if p.dims != 2 && p.dims != 3 {
		return nil, fmt.Errorf("point has invalid dimensionality %d", p.dims)
	}
	return json.Marshal(p.Coords())
}

// UnmarshalJSON decodes a JSON array of 2 or 3 numbers.
func (p *Point) UnmarshalJSON(data []byte) error {
	var coords []float64
	if err := json.Unmarshal(data, &coords); err != nil {
		return err
	}
	switch len(coords) {
	case 2:
		*p = NewPoint2D(coords[0], coords[1])
	case 3:
		*p = NewPoint3D(coords[0], coords[1], coords[2])
	default:
		return fmt.Errorf("coordinate tuple must have 2 or 3 elements, got %d", len(coords))
	}
	return nil
}
