// Package render содержит общие типы и интерфейсы рендер-слоя.
// Ядро мира не заглядывает внутрь бэкенда и эффекта — они передаются
// сквозным образом до вызова отрисовки чанка.
package render

import "math"

// Vec3 — точка или вектор в мировых координатах.
type Vec3 struct {
	X, Y, Z float64
}

// Add возвращает сумму двух векторов.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// AABB — ограничивающий параллелепипед, выровненный по осям.
type AABB struct {
	Min Vec3
	Max Vec3
}

// NewAABB создаёт AABB по минимальной точке и размеру вдоль каждой оси.
func NewAABB(min Vec3, size float64) AABB {
	return AABB{
		Min: min,
		Max: Vec3{X: min.X + size, Y: min.Y + size, Z: min.Z + size},
	}
}

// Center возвращает центр параллелепипеда.
func (b AABB) Center() Vec3 {
	return Vec3{
		X: (b.Min.X + b.Max.X) / 2,
		Y: (b.Min.Y + b.Max.Y) / 2,
		Z: (b.Min.Z + b.Max.Z) / 2,
	}
}

// Contains проверяет, лежит ли точка внутри (границы включительно).
func (b AABB) Contains(p Vec3) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

// Intersects проверяет пересечение двух параллелепипедов (касание считается).
func (b AABB) Intersects(o AABB) bool {
	return b.Min.X <= o.Max.X && b.Max.X >= o.Min.X &&
		b.Min.Y <= o.Max.Y && b.Max.Y >= o.Min.Y &&
		b.Min.Z <= o.Max.Z && b.Max.Z >= o.Min.Z
}

// DistanceTo возвращает расстояние от точки до ближайшей точки параллелепипеда.
// Для точки внутри результат равен нулю.
func (b AABB) DistanceTo(p Vec3) float64 {
	dx := clampDelta(p.X, b.Min.X, b.Max.X)
	dy := clampDelta(p.Y, b.Min.Y, b.Max.Y)
	dz := clampDelta(p.Z, b.Min.Z, b.Max.Z)
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

func clampDelta(v, min, max float64) float64 {
	if v < min {
		return min - v
	}
	if v > max {
		return v - max
	}
	return 0
}
