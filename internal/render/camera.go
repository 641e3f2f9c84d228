package render

// Camera решает, попадает ли ограничивающий объём в зону видимости.
// Мир вызывает только этот предикат и не переопределяет его логику.
type Camera interface {
	CanSee(bounds AABB) bool
}

// CameraFunc адаптирует функцию к интерфейсу Camera.
type CameraFunc func(bounds AABB) bool

// CanSee вызывает f(bounds).
func (f CameraFunc) CanSee(bounds AABB) bool {
	return f(bounds)
}

// RangeCamera — камера с зоной видимости-сферой: видно всё, что ближе
// Radius к центру. Этого достаточно и для сервера, и для тайлового
// просмотрщика.
type RangeCamera struct {
	Center Vec3
	Radius float64
}

// CanSee возвращает true, если объём пересекает сферу видимости.
func (c *RangeCamera) CanSee(bounds AABB) bool {
	return bounds.DistanceTo(c.Center) <= c.Radius
}

// MoveTo переносит центр камеры.
func (c *RangeCamera) MoveTo(p Vec3) {
	c.Center = p
}
