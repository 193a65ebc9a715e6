package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/pixel-world/internal/vec"
)

func TestRectContains(t *testing.T) {
	rect := Rect{MinX: 2, MinY: 3, MaxX: 5, MaxY: 6}

	assert.True(t, rect.Contains(vec.Vec2{X: 2, Y: 3}))
	assert.True(t, rect.Contains(vec.Vec2{X: 4, Y: 5}))
	// правая и верхняя границы полуоткрыты
	assert.False(t, rect.Contains(vec.Vec2{X: 5, Y: 3}))
	assert.False(t, rect.Contains(vec.Vec2{X: 2, Y: 6}))
}

func TestMarkExtendsRect(t *testing.T) {
	d := NewDirtyRects()
	chunk := vec.Vec2{}

	d.Mark(chunk, vec.Vec2{X: 10, Y: 10})
	d.Mark(chunk, vec.Vec2{X: 12, Y: 8})

	rect, exists := d.New[chunk]
	require.True(t, exists)
	assert.Equal(t, Rect{MinX: 10, MinY: 8, MaxX: 13, MaxY: 11}, rect)
}

func TestMark3x3Interior(t *testing.T) {
	d := NewDirtyRects()
	chunk := vec.Vec2{}

	d.Mark3x3(chunk, vec.Vec2{X: 10, Y: 10})

	require.Len(t, d.New, 1, "внутренняя ячейка не должна будить соседей")
	assert.Equal(t, Rect{MinX: 9, MinY: 9, MaxX: 12, MaxY: 12}, d.New[chunk])
}

func TestMark3x3Edge(t *testing.T) {
	d := NewDirtyRects()
	chunk := vec.Vec2{}

	// ячейка на правой границе будит ровно одного соседа
	d.Mark3x3(chunk, vec.Vec2{X: vec.ChunkSize - 1, Y: 10})

	require.Len(t, d.New, 2)
	neighbour, exists := d.New[vec.Vec2{X: 1, Y: 0}]
	require.True(t, exists, "сосед справа должен проснуться")
	assert.True(t, neighbour.Contains(vec.Vec2{X: 0, Y: 10}))
}

func TestMark3x3Corner(t *testing.T) {
	d := NewDirtyRects()
	chunk := vec.Vec2{}

	// угловая ячейка будит всю окрестность из 3 соседних чанков
	d.Mark3x3(chunk, vec.Vec2{X: 0, Y: 0})

	require.Len(t, d.New, 4)
	for _, offset := range []vec.Vec2{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: -1, Y: -1}} {
		_, exists := d.New[offset]
		assert.True(t, exists, "сосед %v должен проснуться", offset)
	}
}

func TestSwapAdvancesGeneration(t *testing.T) {
	d := NewDirtyRects()
	chunk := vec.Vec2{X: 3, Y: 4}

	d.Mark(chunk, vec.Vec2{X: 1, Y: 1})
	require.Empty(t, d.Current)

	d.Swap()

	assert.Empty(t, d.New, "New очищается при продвижении поколения")
	_, exists := d.Current[chunk]
	assert.True(t, exists, "накопленный New становится Current")
}

func TestMaximizeCoversChunk(t *testing.T) {
	d := NewDirtyRects()
	chunk := vec.Vec2{}

	d.Maximize(chunk)

	rect := d.Current[chunk]
	w, h := rect.Size()
	assert.Equal(t, vec.ChunkSize, w)
	assert.Equal(t, vec.ChunkSize, h)
}
