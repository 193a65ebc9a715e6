package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/pixel-world/internal/material"
	"github.com/annel0/pixel-world/internal/vec"
)

func TestLiquidColumnSpreadsAndSettles(t *testing.T) {
	m := NewManager(DefaultRandFactory(21))
	chunk := insertFlooredChunk(m, vec.Vec2{})

	water := material.MustGet("water")
	for y := 1; y <= 10; y++ {
		require.NoError(t, m.SetPixel(vec.Vec2{X: 32, Y: y}, water))
	}

	quiescentAt := -1
	for i := 1; i <= 200; i++ {
		m.Tick()
		require.Equal(t, 10, chunk.CountPhysics(material.Liquid),
			"объем воды должен сохраняться на тике %d", i)
		if !m.HasDirty() {
			quiescentAt = i
			break
		}
	}

	assert.NotEqual(t, -1, quiescentAt, "лужа обязана успокоиться за 200 тиков")

	// столб растекся в лужу: вода занимает больше одной колонки
	columns := map[int]bool{}
	height := 0
	for x := 0; x < vec.ChunkSize; x++ {
		for y := 1; y < vec.ChunkSize; y++ {
			if chunk.PixelAt(vec.Vec2{X: x, Y: y}).Physics.Kind == material.Liquid {
				columns[x] = true
				if y > height {
					height = y
				}
			}
		}
	}
	assert.Greater(t, len(columns), 3, "вода должна растечься по полу")
	assert.LessOrEqual(t, height, 3, "лужа не должна остаться столбом")
}

func TestLiquidHeldByWalls(t *testing.T) {
	m := NewManager(DefaultRandFactory(5))
	chunk := insertFlooredChunk(m, vec.Vec2{})

	// бассейн из камня шириной 4 ячейки
	stone := material.MustGet("stone")
	for y := 1; y <= 5; y++ {
		require.NoError(t, m.SetPixel(vec.Vec2{X: 30, Y: y}, stone))
		require.NoError(t, m.SetPixel(vec.Vec2{X: 35, Y: y}, stone))
	}

	water := material.MustGet("water")
	for x := 31; x <= 34; x++ {
		for y := 1; y <= 3; y++ {
			require.NoError(t, m.SetPixel(vec.Vec2{X: x, Y: y}, water))
		}
	}

	for i := 0; i < 100; i++ {
		m.Tick()
	}

	// вся вода осталась внутри бассейна
	require.Equal(t, 12, chunk.CountPhysics(material.Liquid))
	for x := 31; x <= 34; x++ {
		for y := 1; y <= 3; y++ {
			pixel := chunk.PixelAt(vec.Vec2{X: x, Y: y})
			assert.Equal(t, material.Liquid, pixel.Physics.Kind, "ячейка (%d, %d) должна остаться водой", x, y)
		}
	}
	assert.False(t, m.HasDirty(), "полный бассейн не генерирует работу")
}

func TestDenserLiquidSinksThroughLighter(t *testing.T) {
	brine := material.Material{
		ID:      "brine",
		UIName:  "Brine",
		Physics: material.Physics{Kind: material.Liquid, FlowRate: 4, Density: 5},
		Color:   [4]uint8{0x3a, 0x6a, 0x8a, 0xc8},
	}
	material.Register(brine)

	m := newTestManager()
	chunk := insertFlooredChunk(m, vec.Vec2{})

	// узкий каменный карман, чтобы жидкости не растекались в стороны
	stone := material.MustGet("stone")
	for y := 1; y <= 3; y++ {
		require.NoError(t, m.SetPixel(vec.Vec2{X: 9, Y: y}, stone))
		require.NoError(t, m.SetPixel(vec.Vec2{X: 11, Y: y}, stone))
	}

	require.NoError(t, m.SetPixel(vec.Vec2{X: 10, Y: 1}, material.MustGet("water")))
	require.NoError(t, m.SetPixel(vec.Vec2{X: 10, Y: 2}, brine))

	m.Tick()

	top, err := m.GetPixel(vec.Vec2{X: 10, Y: 2})
	require.NoError(t, err)
	bottom, err := m.GetPixel(vec.Vec2{X: 10, Y: 1})
	require.NoError(t, err)

	assert.Equal(t, "brine", bottom.MaterialID, "плотная жидкость тонет в легкой")
	assert.Equal(t, "water", top.MaterialID)

	_ = chunk
}
