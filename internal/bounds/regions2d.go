package bounds

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Shape2 is implemented by Rect, Circle and OrientedRect.
type Shape2 interface {
	// Bounds is the smallest Rect enclosing the shape.
	Bounds() Rect
	Project(axis rl.Vector2) (lo, hi float32)
}

// Region2 is the 2D counterpart of Region: a lattice of scale^2 cells and a
// four-way quadtree split.
type Region2[W any] interface {
	Shape2
	Grid(scale uint32, out []W) []W
	Cells(item Shape2, scale uint32, out []uint32) []uint32
	Subdivide(out []W) []W
}

var (
	_ Region2[Rect]         = Rect{}
	_ Region2[Circle]       = Circle{}
	_ Region2[OrientedRect] = OrientedRect{}
)

func (r Rect) Bounds() Rect { return r }

// Grid appends the scale^2 cells row by row, X varying fastest.
func (r Rect) Grid(scale uint32, out []Rect) []Rect {
	if scale == 0 {
		return out
	}
	cell := rl.Vector2Scale(rl.Vector2Subtract(r.Max, r.Min), 1/float32(scale))
	for y := uint32(0); y < scale; y++ {
		for x := uint32(0); x < scale; x++ {
			lo := rl.Vector2Add(r.Min, rl.Vector2Multiply(cell, rl.Vector2{X: float32(x), Y: float32(y)}))
			out = append(out, Rect{Min: lo, Max: rl.Vector2Add(lo, cell)})
		}
	}
	return out
}

func (r Rect) Cells(item Shape2, scale uint32, out []uint32) []uint32 {
	b := item.Bounds()
	return latticeCells2(r.Min, r.Max, b.Min, b.Max, scale, out)
}

// Subdivide splits the rectangle at its centre into 4 quadrants that exactly tile it.
func (r Rect) Subdivide(out []Rect) []Rect {
	c := r.Position()
	for i := 0; i < 4; i++ {
		var child Rect
		if i&1 != 0 {
			child.Min.X, child.Max.X = c.X, r.Max.X
		} else {
			child.Min.X, child.Max.X = r.Min.X, c.X
		}
		if i&2 != 0 {
			child.Min.Y, child.Max.Y = c.Y, r.Max.Y
		} else {
			child.Min.Y, child.Max.Y = r.Min.Y, c.Y
		}
		out = append(out, child)
	}
	return out
}

func (c Circle) Bounds() Rect {
	r := rl.Vector2{X: c.Radius, Y: c.Radius}
	return Rect{Min: rl.Vector2Subtract(c.Center, r), Max: rl.Vector2Add(c.Center, r)}
}

// Grid returns circles circumscribing the cells of the bounding square.
func (c Circle) Grid(scale uint32, out []Circle) []Circle {
	for _, cell := range c.Bounds().Grid(scale, nil) {
		out = append(out, circumscribe2(cell))
	}
	return out
}

func (c Circle) Cells(item Shape2, scale uint32, out []uint32) []uint32 {
	return c.Bounds().Cells(item, scale, out)
}

// Subdivide returns the circles circumscribing the quadrants of the bounding
// square. Neighbours overlap.
func (c Circle) Subdivide(out []Circle) []Circle {
	for _, q := range c.Bounds().Subdivide(nil) {
		out = append(out, circumscribe2(q))
	}
	return out
}

func circumscribe2(r Rect) Circle {
	return Circle{Center: r.Position(), Radius: rl.Vector2Length(r.HalfSize())}
}

func (o OrientedRect) Grid(scale uint32, out []OrientedRect) []OrientedRect {
	local := Rect{Min: rl.Vector2Negate(o.HalfSize), Max: o.HalfSize}
	for _, cell := range local.Grid(scale, nil) {
		out = append(out, OrientedRect{
			Center:   o.toWorld(cell.Position()),
			HalfSize: cell.HalfSize(),
			Axes:     o.Axes,
		})
	}
	return out
}

// Cells projects the item onto the rectangle axes and enumerates the local lattice.
func (o OrientedRect) Cells(item Shape2, scale uint32, out []uint32) []uint32 {
	var lo, hi rl.Vector2
	lo.X, hi.X = item.Project(o.Axes[0])
	lo.Y, hi.Y = item.Project(o.Axes[1])
	c := rl.Vector2{
		X: rl.Vector2DotProduct(o.Center, o.Axes[0]),
		Y: rl.Vector2DotProduct(o.Center, o.Axes[1]),
	}
	lo = rl.Vector2Subtract(lo, c)
	hi = rl.Vector2Subtract(hi, c)
	return latticeCells2(rl.Vector2Negate(o.HalfSize), o.HalfSize, lo, hi, scale, out)
}

// Subdivide splits the rectangle into 4 quadrants sharing its axes.
func (o OrientedRect) Subdivide(out []OrientedRect) []OrientedRect {
	h := rl.Vector2Scale(o.HalfSize, 0.5)
	for i := 0; i < 4; i++ {
		s := octantSign(i)
		out = append(out, OrientedRect{
			Center:   o.toWorld(rl.Vector2{X: h.X * s.X, Y: h.Y * s.Y}),
			HalfSize: h,
			Axes:     o.Axes,
		})
	}
	return out
}

// latticeCells2 is latticeCells for a scale x scale lattice; keys are x + y*scale.
func latticeCells2(wmin, wmax, imin, imax rl.Vector2, scale uint32, out []uint32) []uint32 {
	if scale == 0 {
		return out
	}
	lx, hx, ok := axisCells(wmin.X, wmax.X, imin.X, imax.X, scale)
	if !ok {
		return out
	}
	ly, hy, ok := axisCells(wmin.Y, wmax.Y, imin.Y, imax.Y, scale)
	if !ok {
		return out
	}
	for y := ly; y <= hy; y++ {
		for x := lx; x <= hx; x++ {
			out = append(out, x+y*scale)
		}
	}
	return out
}
