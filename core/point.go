package core

// Point is an integer grid coordinate, also used as a unit step between adjacent cells
type Point struct {
	X, Y int
}

// Add returns the component-wise sum
func (p Point) Add(o Point) Point {
	return Point{X: p.X + o.X, Y: p.Y + o.Y}
}

// Sub returns the component-wise difference
func (p Point) Sub(o Point) Point {
	return Point{X: p.X - o.X, Y: p.Y - o.Y}
}

// IsDiagonal reports whether the point, read as a step, moves on both axes
func (p Point) IsDiagonal() bool {
	return p.X != 0 && p.Y != 0
}

// In reports whether the point lies inside a width x height grid anchored at the origin
func (p Point) In(width, height int) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < width && p.Y < height
}
