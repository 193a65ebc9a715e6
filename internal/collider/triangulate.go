package collider

import (
	"github.com/annel0/pixel-world/internal/vec"
)

// Triangle — один треугольник коллизионной сетки
type Triangle [3]vec.Vec2Float

// signedArea возвращает удвоенную ориентированную площадь кольца
func signedArea(ring []vec.Vec2Float) float64 {
	area := 0.0
	for i := 0; i < len(ring); i++ {
		j := (i + 1) % len(ring)
		area += ring[i].X*ring[j].Y - ring[j].X*ring[i].Y
	}
	return area
}

func reversed(ring []vec.Vec2Float) []vec.Vec2Float {
	out := make([]vec.Vec2Float, len(ring))
	for i, p := range ring {
		out[len(ring)-1-i] = p
	}
	return out
}

func cross(o, a, b vec.Vec2Float) float64 {
	return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
}

func pointInTriangle(p, a, b, c vec.Vec2Float) bool {
	d1 := cross(p, a, b)
	d2 := cross(p, b, c)
	d3 := cross(p, c, a)

	hasNeg := d1 < 0 || d2 < 0 || d3 < 0
	hasPos := d1 > 0 || d2 > 0 || d3 > 0
	return !(hasNeg && hasPos)
}

// bridgeHole вшивает дыру во внешнее кольцо мостом между ближайшей
// парой вершин, превращая кольцо с дырой в одно простое кольцо с
// дублированными вершинами моста
func bridgeHole(outer, hole []vec.Vec2Float) []vec.Vec2Float {
	bestOuter, bestHole := 0, 0
	bestDist := -1.0

	for i, op := range outer {
		for j, hp := range hole {
			d := op.Sub(hp).Length()
			if bestDist < 0 || d < bestDist {
				bestDist = d
				bestOuter, bestHole = i, j
			}
		}
	}

	merged := make([]vec.Vec2Float, 0, len(outer)+len(hole)+2)
	merged = append(merged, outer[:bestOuter+1]...)
	merged = append(merged, hole[bestHole:]...)
	merged = append(merged, hole[:bestHole+1]...)
	merged = append(merged, outer[bestOuter:]...)
	return merged
}

// Triangulate разбивает многоугольник с дырами на треугольники методом
// отрезания ушей. Внешнее кольцо приводится к обходу против часовой
// стрелки, дыры — по часовой, затем дыры вшиваются мостами.
// Вырожденные остатки молча отбрасываются: пустой результат допустим.
func Triangulate(outer []vec.Vec2Float, holes [][]vec.Vec2Float) []Triangle {
	if len(outer) < 3 {
		return nil
	}

	ring := outer
	if signedArea(ring) < 0 {
		ring = reversed(ring)
	}

	for _, hole := range holes {
		if len(hole) < 3 {
			continue
		}
		if signedArea(hole) > 0 {
			hole = reversed(hole)
		}
		ring = bridgeHole(ring, hole)
	}

	indices := make([]int, len(ring))
	for i := range indices {
		indices[i] = i
	}

	var triangles []Triangle

	for len(indices) > 3 {
		earFound := false

		for i := 0; i < len(indices); i++ {
			prev := indices[(i+len(indices)-1)%len(indices)]
			curr := indices[i]
			next := indices[(i+1)%len(indices)]

			a, b, c := ring[prev], ring[curr], ring[next]

			// выпуклость в CCW-обходе
			if cross(a, b, c) <= 0 {
				continue
			}

			contains := false
			for _, j := range indices {
				if j == prev || j == curr || j == next {
					continue
				}
				// вершины моста дублируются: совпадающая точка не мешает уху
				if ring[j] == a || ring[j] == b || ring[j] == c {
					continue
				}
				if pointInTriangle(ring[j], a, b, c) {
					contains = true
					break
				}
			}
			if contains {
				continue
			}

			triangles = append(triangles, Triangle{a, b, c})
			indices = append(indices[:i], indices[i+1:]...)
			earFound = true
			break
		}

		if !earFound {
			// вырожденный остаток, дальше резать нечего
			break
		}
	}

	if len(indices) == 3 {
		triangles = append(triangles, Triangle{ring[indices[0]], ring[indices[1]], ring[indices[2]]})
	}

	return triangles
}
