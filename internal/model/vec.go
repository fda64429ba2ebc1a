package model

import "math"

// Vec3 — точка или вектор в мировых координатах.
// Value type, передаётся по значению (immutable).
type Vec3 struct {
	X float64
	Y float64
	Z float64
}

// NewVec3 создаёт Vec3 с указанными координатами.
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// Add возвращает сумму векторов.
func (v Vec3) Add(other Vec3) Vec3 {
	return Vec3{X: v.X + other.X, Y: v.Y + other.Y, Z: v.Z + other.Z}
}

// Sub возвращает разность векторов (v - other).
func (v Vec3) Sub(other Vec3) Vec3 {
	return Vec3{X: v.X - other.X, Y: v.Y - other.Y, Z: v.Z - other.Z}
}

// Lerp interpolates between v (fraction 0) and to (fraction 1).
func (v Vec3) Lerp(to Vec3, fraction float64) Vec3 {
	return Vec3{
		X: v.X + (to.X-v.X)*fraction,
		Y: v.Y + (to.Y-v.Y)*fraction,
		Z: v.Z + (to.Z-v.Z)*fraction,
	}
}

// HorizontalLength returns the length of the XZ projection.
func (v Vec3) HorizontalLength() float64 {
	return math.Sqrt(v.X*v.X + v.Z*v.Z)
}

// DistanceSquared возвращает квадрат расстояния до другой точки (без sqrt для производительности).
func (v Vec3) DistanceSquared(other Vec3) float64 {
	dx := v.X - other.X
	dy := v.Y - other.Y
	dz := v.Z - other.Z
	return dx*dx + dy*dy + dz*dz
}
