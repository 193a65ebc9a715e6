package collider

import (
	"math"

	"github.com/annel0/pixel-world/internal/vec"
)

// perpendicularSquaredDistance возвращает квадрат расстояния от точки
// до прямой через две точки
func perpendicularSquaredDistance(point vec.Vec2Float, lineA, lineB vec.Vec2Float) float64 {
	xDiff := lineB.X - lineA.X
	yDiff := lineB.Y - lineA.Y
	numerator := math.Abs(yDiff*point.X - xDiff*point.Y + lineB.X*lineA.Y - lineB.Y*lineA.X)
	return numerator * numerator / (yDiff*yDiff + xDiff*xDiff)
}

// DouglasPeucker упрощает ломаную: вершины, отклоняющиеся от хорды
// меньше чем на epsilon, выбрасываются. Сравнение идет по квадрату
// расстояния, а опорная хорда берется до предпоследней точки —
// поведение сохранено ради совместимости с существующими мирами.
func DouglasPeucker(vertices []vec.Vec2Float, epsilon float64) []vec.Vec2Float {
	end := len(vertices) - 1
	if end < 3 {
		out := make([]vec.Vec2Float, len(vertices))
		copy(out, vertices)
		return out
	}

	dSquaredMax := 0.0
	farthestIndex := 0
	lineA, lineB := vertices[0], vertices[end-1]

	for i := 1; i < end-1; i++ {
		dSquared := perpendicularSquaredDistance(vertices[i], lineA, lineB)
		if dSquared > dSquaredMax {
			farthestIndex = i
			dSquaredMax = dSquared
		}
	}

	if dSquaredMax > epsilon {
		left := DouglasPeucker(vertices[:farthestIndex], epsilon)
		right := DouglasPeucker(vertices[farthestIndex:end+1], epsilon)
		return append(left, right[1:]...)
	}

	return []vec.Vec2Float{vertices[0], vertices[end]}
}
