package vec

// ChunkShift и ChunkMask задают размер чанка 64x64 (2^6).
const (
	ChunkShift = 6
	ChunkSize  = 1 << ChunkShift
	ChunkMask  = ChunkSize - 1
)

// Vec2 представляет 2D координаты
type Vec2 struct {
	X, Y int
}

// Add складывает два вектора
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// ToChunkCoords преобразует глобальные координаты в координаты чанка.
// Арифметический сдвиг даёт floor-деление и для отрицательных координат.
func (v Vec2) ToChunkCoords() Vec2 {
	return Vec2{X: v.X >> ChunkShift, Y: v.Y >> ChunkShift}
}

// LocalInChunk возвращает локальные координаты внутри чанка (всегда >= 0)
func (v Vec2) LocalInChunk() Vec2 {
	return Vec2{X: v.X & ChunkMask, Y: v.Y & ChunkMask}
}

// ChebyshevTo возвращает расстояние Чебышёва до другой точки
func (v Vec2) ChebyshevTo(other Vec2) int {
	dx := v.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := v.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
