package world

import (
	"github.com/annel0/pixel-world/internal/material"
	"github.com/annel0/pixel-world/internal/vec"
)

// ChunkState описывает жизненный цикл чанка
type ChunkState uint8

const (
	// ChunkInitialized — чанк создан, генерация еще не запускалась
	ChunkInitialized ChunkState = iota
	// ChunkGenerating — идет базовая генерация рельефа
	ChunkGenerating
	// ChunkPopulating — рельеф готов, идет заселение деталями,
	// зависящими от соседей
	ChunkPopulating
	// ChunkActive — чанк участвует в симуляции
	ChunkActive
	// ChunkSleeping — чанк загружен, но вне зоны видимости
	ChunkSleeping
)

// String возвращает строковое представление состояния чанка
func (s ChunkState) String() string {
	switch s {
	case ChunkInitialized:
		return "Initialized"
	case ChunkGenerating:
		return "Generating"
	case ChunkPopulating:
		return "Populating"
	case ChunkActive:
		return "Active"
	case ChunkSleeping:
		return "Sleeping"
	default:
		return "Unknown"
	}
}

// ChunkData хранит пиксели одного чанка 64x64.
// Доступ к пикселям во время тика разруливается планировщиком:
// чанки одной группы чётности не соприкасаются, поэтому мьютекс
// на уровне пикселей не нужен.
type ChunkData struct {
	Position vec.Vec2
	Pixels   []Pixel
	State    ChunkState
}

// NewChunkData создает чанк, заполненный воздухом
func NewChunkData(position vec.Vec2) *ChunkData {
	pixels := make([]Pixel, vec.ChunkSize*vec.ChunkSize)
	air := AirPixel()
	for i := range pixels {
		pixels[i] = air
	}
	return &ChunkData{
		Position: position,
		Pixels:   pixels,
		State:    ChunkInitialized,
	}
}

// cellIndex возвращает индекс локальной позиции в плоском массиве
func cellIndex(local vec.Vec2) int {
	return local.Y*vec.ChunkSize + local.X
}

// PixelAt возвращает пиксель по локальной позиции
func (c *ChunkData) PixelAt(local vec.Vec2) Pixel {
	return c.Pixels[cellIndex(local)]
}

// SetPixelAt записывает пиксель по локальной позиции
func (c *ChunkData) SetPixelAt(local vec.Vec2, pixel Pixel) {
	c.Pixels[cellIndex(local)] = pixel
}

// IsLoaded сообщает, доступен ли чанк для чтения и записи извне
func (c *ChunkData) IsLoaded() bool {
	return c.State == ChunkActive || c.State == ChunkSleeping
}

// CountPhysics возвращает число пикселей с заданным типом физики
func (c *ChunkData) CountPhysics(kind material.Kind) int {
	count := 0
	for i := range c.Pixels {
		if c.Pixels[i].Physics.Kind == kind {
			count++
		}
	}
	return count
}
