package world

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/pixel-world/internal/material"
	"github.com/annel0/pixel-world/internal/vec"
)

func TestParityGroupRange(t *testing.T) {
	for _, position := range []vec.Vec2{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}} {
		group := parityGroup(position)
		assert.GreaterOrEqual(t, group, 0)
		assert.Less(t, group, 4)
	}

	// четыре чанка квадрата 2x2 попадают в разные группы
	groups := map[int]bool{}
	for _, position := range []vec.Vec2{{X: 4, Y: 4}, {X: 5, Y: 4}, {X: 4, Y: 5}, {X: 5, Y: 5}} {
		groups[parityGroup(position)] = true
	}
	assert.Len(t, groups, 4)
}

func TestParityGroupSeparatesNeighbours(t *testing.T) {
	// свойство безопасности: соседние чанки (расстояние Чебышёва 1)
	// никогда не делят группу, иначе их окна 3x3 пересекутся
	rng := rand.New(rand.NewSource(99))

	for i := 0; i < 1000; i++ {
		position := vec.Vec2{X: rng.Intn(201) - 100, Y: rng.Intn(201) - 100}

		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				if dx == 0 && dy == 0 {
					continue
				}
				neighbour := position.Add(vec.Vec2{X: dx, Y: dy})
				require.NotEqual(t, parityGroup(position), parityGroup(neighbour),
					"чанки %v и %v соседствуют, но делят группу", position, neighbour)
			}
		}
	}
}

func TestTickAdvancesClock(t *testing.T) {
	m := newTestManager()
	m.InsertChunk(activeChunk(vec.Vec2{}))

	require.Zero(t, m.Clock())
	m.Tick()
	m.Tick()
	assert.Equal(t, uint8(2), m.Clock())
}

func TestQuiescentChunkStaysUnchanged(t *testing.T) {
	m := newTestManager()
	chunk := insertFlooredChunk(m, vec.Vec2{})

	require.NoError(t, m.SetPixel(vec.Vec2{X: 5, Y: 1}, material.MustGet("sand")))

	for i := 0; i < 5; i++ {
		m.Tick()
	}
	require.False(t, m.HasDirty())

	before := make([]Pixel, len(chunk.Pixels))
	copy(before, chunk.Pixels)

	m.Tick()

	assert.Equal(t, before, chunk.Pixels, "тик без работы не меняет буфер пикселей")
	assert.False(t, m.HasDirty())
}

func TestRenderRectsAccumulateAndDrain(t *testing.T) {
	m := newTestManager()
	insertFlooredChunk(m, vec.Vec2{})

	require.NoError(t, m.SetPixel(vec.Vec2{X: 5, Y: 10}, material.MustGet("sand")))
	m.Tick()

	rects := m.RenderRects()
	require.NotEmpty(t, rects, "падение песчинки помечает область перерисовки")

	rect, exists := rects[vec.Vec2{}]
	require.True(t, exists)
	assert.True(t, rect.Contains(vec.Vec2{X: 5, Y: 9}))

	assert.Empty(t, m.RenderRects(), "области перерисовки отдаются один раз")
}

func TestNeighbourChunkWakesAcrossBoundary(t *testing.T) {
	m := newTestManager()

	left := activeChunk(vec.Vec2{})
	right := activeChunk(vec.Vec2{X: 1})
	stone := material.MustGet("stone")
	for _, chunk := range []*ChunkData{left, right} {
		for x := 0; x < vec.ChunkSize; x++ {
			chunk.SetPixelAt(vec.Vec2{X: x, Y: 0}, NewPixel(stone, nil))
		}
	}
	m.InsertChunk(left)
	m.InsertChunk(right)

	// песчинка на правой границе левого чанка: ее пробуждения обязаны
	// растить грязную область соседа
	require.NoError(t, m.SetPixel(vec.Vec2{X: vec.ChunkSize - 1, Y: 10}, material.MustGet("sand")))

	m.Tick()

	_, exists := m.DirtyRect(vec.Vec2{X: 1})
	assert.True(t, exists, "сосед должен проснуться от движения у границы")
}
