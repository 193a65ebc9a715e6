package world

import (
	"github.com/annel0/pixel-world/internal/vec"
)

// Rect — полуоткрытый прямоугольник [Min, Max) в локальных координатах чанка
type Rect struct {
	MinX, MinY int
	MaxX, MaxY int
}

// IsEmpty сообщает, пуст ли прямоугольник
func (r Rect) IsEmpty() bool {
	return r.MaxX <= r.MinX || r.MaxY <= r.MinY
}

// Contains проверяет попадание локальной позиции в прямоугольник
func (r Rect) Contains(p vec.Vec2) bool {
	return p.X >= r.MinX && p.X < r.MaxX && p.Y >= r.MinY && p.Y < r.MaxY
}

// Size возвращает ширину и высоту прямоугольника
func (r Rect) Size() (int, int) {
	return r.MaxX - r.MinX, r.MaxY - r.MinY
}

func clampCell(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// rectAround возвращает прямоугольник вокруг одной ячейки
func rectAround(cell vec.Vec2) Rect {
	return Rect{
		MinX: clampCell(cell.X, vec.ChunkSize-1),
		MinY: clampCell(cell.Y, vec.ChunkSize-1),
		MaxX: clampCell(cell.X+1, vec.ChunkSize),
		MaxY: clampCell(cell.Y+1, vec.ChunkSize),
	}
}

// extend расширяет прямоугольник так, чтобы он покрывал ячейку
func (r *Rect) extend(cell vec.Vec2) {
	r.MinX = clampCell(min(r.MinX, cell.X), vec.ChunkSize-1)
	r.MinY = clampCell(min(r.MinY, cell.Y), vec.ChunkSize-1)
	r.MaxX = clampCell(max(r.MaxX, cell.X+1), vec.ChunkSize)
	r.MaxY = clampCell(max(r.MaxY, cell.Y+1), vec.ChunkSize)
}

// FullChunkRect покрывает весь чанк
func FullChunkRect() Rect {
	return Rect{MinX: 0, MinY: 0, MaxX: vec.ChunkSize, MaxY: vec.ChunkSize}
}

// DirtyRects отслеживает изменившиеся области по поколениям:
// Current обрабатывается в текущем тике, New собирает пробуждения
// для следующего, Render накапливает область перерисовки.
// Отсутствие записи для чанка означает отсутствие работы.
type DirtyRects struct {
	Current map[vec.Vec2]Rect
	New     map[vec.Vec2]Rect
	Render  map[vec.Vec2]Rect

	// Colliders накапливает чанки, статическое содержимое которых
	// изменилось с последнего забора внешним физическим движком
	Colliders map[vec.Vec2]struct{}
}

// NewDirtyRects создает пустой трекер
func NewDirtyRects() *DirtyRects {
	return &DirtyRects{
		Current:   make(map[vec.Vec2]Rect),
		New:       make(map[vec.Vec2]Rect),
		Render:    make(map[vec.Vec2]Rect),
		Colliders: make(map[vec.Vec2]struct{}),
	}
}

// Swap продвигает поколение: Current получает накопленный New,
// New очищается
func (d *DirtyRects) Swap() {
	d.Current, d.New = d.New, d.Current
	for k := range d.New {
		delete(d.New, k)
	}
}

// markRect отмечает одну ячейку в карте прямоугольников
func markRect(rects map[vec.Vec2]Rect, chunkPosition, cell vec.Vec2) {
	if rect, exists := rects[chunkPosition]; exists {
		rect.extend(cell)
		rects[chunkPosition] = rect
	} else {
		rects[chunkPosition] = rectAround(cell)
	}
}

// Mark отмечает ячейку в поколении New
func (d *DirtyRects) Mark(chunkPosition, cell vec.Vec2) {
	markRect(d.New, chunkPosition, cell)
}

// MarkRender отмечает ячейку для перерисовки
func (d *DirtyRects) MarkRender(chunkPosition, cell vec.Vec2) {
	markRect(d.Render, chunkPosition, cell)
}

// MarkCurrent отмечает ячейку в текущем поколении.
// Используется при пробуждении чанков вне тика.
func (d *DirtyRects) MarkCurrent(chunkPosition, cell vec.Vec2) {
	markRect(d.Current, chunkPosition, cell)
}

// MarkCollider отмечает чанк для перестроения коллизионной сетки
func (d *DirtyRects) MarkCollider(chunkPosition vec.Vec2) {
	d.Colliders[chunkPosition] = struct{}{}
}

// Maximize помечает весь чанк грязным в текущем поколении
func (d *DirtyRects) Maximize(chunkPosition vec.Vec2) {
	d.Current[chunkPosition] = FullChunkRect()
}

// translateCell переносит ячейку со смещением через границы чанков
func translateCell(chunkPosition, cell, offset vec.Vec2) (vec.Vec2, vec.Vec2) {
	shifted := cell.Add(offset)
	return chunkPosition.Add(shifted.ToChunkCoords()), shifted.LocalInChunk()
}

// markRect3x3 отмечает ячейку вместе с ее окрестностью 3x3, пробуждая
// соседние чанки, если ячейка лежит на границе
func markRect3x3(rects map[vec.Vec2]Rect, chunkPosition, cell vec.Vec2) {
	if rect, exists := rects[chunkPosition]; exists {
		rect.extend(vec.Vec2{X: cell.X + 1, Y: cell.Y + 1})
		rect.extend(vec.Vec2{X: max(cell.X-1, 0), Y: max(cell.Y-1, 0)})
		rects[chunkPosition] = rect
	} else {
		rects[chunkPosition] = Rect{
			MinX: clampCell(cell.X-1, vec.ChunkSize-1),
			MinY: clampCell(cell.Y-1, vec.ChunkSize-1),
			MaxX: clampCell(cell.X+2, vec.ChunkSize),
			MaxY: clampCell(cell.Y+2, vec.ChunkSize),
		}
	}

	chunkOffset := vec.Vec2{}
	if cell.X == vec.ChunkSize-1 {
		chunkOffset.X = 1
	} else if cell.X == 0 {
		chunkOffset.X = -1
	}
	if cell.Y == vec.ChunkSize-1 {
		chunkOffset.Y = 1
	} else if cell.Y == 0 {
		chunkOffset.Y = -1
	}

	switch {
	case chunkOffset == vec.Vec2{}:
		// ячейка внутри чанка, соседи не затронуты
	case chunkOffset.X != 0 && chunkOffset.Y != 0:
		// угловая ячейка: будим всю окрестность
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				neighbourChunk, neighbourCell := translateCell(chunkPosition, cell, vec.Vec2{X: dx, Y: dy})
				markRect(rects, neighbourChunk, neighbourCell)
			}
		}
	default:
		neighbourChunk, neighbourCell := translateCell(chunkPosition, cell, chunkOffset)
		markRect(rects, neighbourChunk, neighbourCell)
	}
}

// Mark3x3 отмечает ячейку с окрестностью в поколении New
func (d *DirtyRects) Mark3x3(chunkPosition, cell vec.Vec2) {
	markRect3x3(d.New, chunkPosition, cell)
}
