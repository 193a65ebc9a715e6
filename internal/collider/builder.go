package collider

import (
	"sort"

	"github.com/annel0/pixel-world/internal/logging"
	"github.com/annel0/pixel-world/internal/metrics"
	"github.com/annel0/pixel-world/internal/vec"
)

// Precision — порог упрощения контуров в единицах ячеек.
// Сравнивается с квадратом отклонения вершины от хорды.
const Precision = 2.0

// Polyline — замкнутый контур коллайдера в координатах ячеек чанка
type Polyline []vec.Vec2Float

// BuildChunkColliders извлекает контуры статических областей чанка.
// Для каждой связной компоненты оставляется только самая длинная
// граница; внутренние полости компоненты отбрасываются. Пустой
// результат — валидный ответ для чанка без статики.
func BuildChunkColliders(width, height int, isSolid func(index int) bool) []Polyline {
	matrix, count := LabelComponents(width, height, isSolid)
	if count == 0 {
		return nil
	}

	objects := MarchingSquares(count, matrix, width, height)
	colliders := make([]Polyline, 0, count)

	for _, boundaries := range objects {
		longest := longestBoundary(boundaries)
		if len(longest) < 3 {
			continue
		}

		simplified := DouglasPeucker(longest, Precision)
		if len(simplified) < 3 {
			continue
		}

		colliders = append(colliders, Polyline(simplified))
	}

	metrics.ColliderRebuilds.Inc()
	logging.GetColliderLogger().Trace("построено %d контуров из %d компонент", len(colliders), count)

	return colliders
}

// longestBoundary возвращает границу с наибольшим числом вершин
func longestBoundary(boundaries [][]vec.Vec2Float) []vec.Vec2Float {
	var longest []vec.Vec2Float
	for _, boundary := range boundaries {
		if len(boundary) > len(longest) {
			longest = boundary
		}
	}
	return longest
}

// BuildObjectMesh триангулирует форму свободного объекта: самая длинная
// граница берется внешним кольцом, остальные — дырами
func BuildObjectMesh(width, height int, isSolid func(index int) bool) []Triangle {
	matrix, count := LabelComponents(width, height, isSolid)
	if count == 0 {
		return nil
	}

	// объект обязан быть одной компонентой, лишние игнорируются
	boundaries := MarchingSquares(count, matrix, width, height)[0]

	simplified := make([][]vec.Vec2Float, 0, len(boundaries))
	for _, boundary := range boundaries {
		if len(boundary) < 3 {
			continue
		}
		s := DouglasPeucker(boundary, Precision)
		if len(s) >= 3 {
			simplified = append(simplified, s)
		}
	}

	if len(simplified) == 0 {
		return nil
	}

	sort.Slice(simplified, func(i, j int) bool {
		return len(simplified[i]) > len(simplified[j])
	})

	return Triangulate(simplified[0], simplified[1:])
}

// Area возвращает площадь контура в квадратных ячейках
func (p Polyline) Area() float64 {
	area := signedArea(p) / 2.0
	if area < 0 {
		return -area
	}
	return area
}
