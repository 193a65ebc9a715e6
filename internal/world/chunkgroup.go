package world

import (
	"github.com/annel0/pixel-world/internal/vec"
)

// ChunkGroup — окно 3x3 вокруг центрального чанка. Слоты хранят срезы
// пикселей соседних чанков; nil означает незагруженного соседа.
// Правило, работающее через группу, видит и мутирует соседние чанки
// без проверки границ на каждом обращении.
//
// Расположение слотов (смещения чанков):
//
//	corners: 0=(-1,-1) 1=(1,-1) 2=(-1,1) 3=(1,1)
//	sides:   0=(0,-1)  1=(-1,0) 2=(1,0)  3=(0,1)
type ChunkGroup struct {
	Center  []Pixel
	Sides   [4][]Pixel
	Corners [4][]Pixel
}

// slotFor возвращает срез чанка для смещения в чанках.
// Возвращает nil для незагруженных и вне окна 3x3.
func (g *ChunkGroup) slotFor(chunkOffset vec.Vec2) []Pixel {
	if chunkOffset.X < -1 || chunkOffset.X > 1 || chunkOffset.Y < -1 || chunkOffset.Y > 1 {
		return nil
	}

	if chunkOffset.X == 0 && chunkOffset.Y == 0 {
		return g.Center
	}

	if chunkOffset.X != 0 && chunkOffset.Y != 0 {
		cornerIndex := 0
		if chunkOffset.X > 0 {
			cornerIndex++
		}
		if chunkOffset.Y > 0 {
			cornerIndex += 2
		}
		return g.Corners[cornerIndex]
	}

	sideIndex := 0
	if chunkOffset.Y > 0 {
		sideIndex = 3
	}
	if chunkOffset.X < 0 {
		sideIndex = 1
	} else if chunkOffset.X > 0 {
		sideIndex = 2
	}
	return g.Sides[sideIndex]
}

// Get возвращает указатель на пиксель по смещению в ячейках относительно
// начала центрального чанка. nil — ячейка за пределами окна или в
// незагруженном чанке.
func (g *ChunkGroup) Get(cell vec.Vec2) *Pixel {
	slot := g.slotFor(cell.ToChunkCoords())
	if slot == nil {
		return nil
	}

	local := cell.LocalInChunk()
	return &slot[cellIndex(local)]
}

// buildChunkGroup собирает окно 3x3 вокруг чанка. Центральный чанк обязан
// быть загружен; соседи включаются в любом загруженном состоянии.
// Вызывается под блокировкой менеджера.
func buildChunkGroup(chunks map[vec.Vec2]*ChunkData, position vec.Vec2) (*ChunkGroup, bool) {
	center, exists := chunks[position]
	if !exists || !center.IsLoaded() {
		return nil, false
	}

	group := &ChunkGroup{Center: center.Pixels}

	cornerOffsets := [4]vec.Vec2{{X: -1, Y: -1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: 1, Y: 1}}
	sideOffsets := [4]vec.Vec2{{X: 0, Y: -1}, {X: -1, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}}

	for i, offset := range cornerOffsets {
		if neighbour, exists := chunks[position.Add(offset)]; exists && neighbour.IsLoaded() {
			group.Corners[i] = neighbour.Pixels
		}
	}
	for i, offset := range sideOffsets {
		if neighbour, exists := chunks[position.Add(offset)]; exists && neighbour.IsLoaded() {
			group.Sides[i] = neighbour.Pixels
		}
	}

	return group, true
}
