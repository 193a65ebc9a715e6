package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/pixel-world/internal/material"
	"github.com/annel0/pixel-world/internal/vec"
)

func TestFireIgnitesAtTemperature(t *testing.T) {
	center := activeChunk(vec.Vec2{})
	wood := NewPixel(material.MustGet("wood"), nil)
	require.NotNil(t, wood.Fire)

	wood.Temperature = wood.Fire.IgnitionTemperature
	center.SetPixelAt(vec.Vec2{X: 10, Y: 10}, wood)

	group := &ChunkGroup{Center: center.Pixels}
	api := newTestAPI(group, vec.Vec2{X: 10, Y: 10}, fixedRand{f: 0.5})

	UpdateFire(api)

	assert.True(t, center.PixelAt(vec.Vec2{X: 10, Y: 10}).OnFire, "дерево вспыхивает при температуре воспламенения")
}

func TestSmolderingPixelDriftsTowardIgnition(t *testing.T) {
	center := activeChunk(vec.Vec2{})
	wood := NewPixel(material.MustGet("wood"), nil)
	wood.Temperature = 80 // ниже порога воспламенения 90
	center.SetPixelAt(vec.Vec2{X: 10, Y: 10}, wood)

	group := &ChunkGroup{Center: center.Pixels}
	api := newTestAPI(group, vec.Vec2{X: 10, Y: 10}, fixedRand{f: 0.5})

	UpdateFire(api)

	// целочисленная формула остывания тянет температуру выше 30 вверх:
	// разогретый пиксель сам доползает до порога воспламенения
	after := center.PixelAt(vec.Vec2{X: 10, Y: 10})
	assert.False(t, after.OnFire)
	assert.Greater(t, after.Temperature, int16(80))
}

func TestBurningHeatsNeighbours(t *testing.T) {
	center := activeChunk(vec.Vec2{})

	burning := NewPixel(material.MustGet("wood"), nil)
	burning.OnFire = true
	center.SetPixelAt(vec.Vec2{X: 10, Y: 10}, burning)

	fuel := NewPixel(material.MustGet("grass"), nil)
	center.SetPixelAt(vec.Vec2{X: 11, Y: 10}, fuel)

	group := &ChunkGroup{Center: center.Pixels}
	api := newTestAPI(group, vec.Vec2{X: 10, Y: 10}, fixedRand{f: 0.5})

	UpdateFire(api)

	heated := center.PixelAt(vec.Vec2{X: 11, Y: 10})
	assert.Greater(t, heated.Temperature, int16(0), "сосед горящего пикселя нагревается")
}

func TestBurnedOutPixelBecomesAir(t *testing.T) {
	center := activeChunk(vec.Vec2{})

	burning := NewPixel(material.MustGet("grass"), nil)
	burning.OnFire = true
	burning.Fire.FireHP = 0
	center.SetPixelAt(vec.Vec2{X: 10, Y: 10}, burning)

	group := &ChunkGroup{Center: center.Pixels}
	api := newTestAPI(group, vec.Vec2{X: 10, Y: 10}, fixedRand{f: 0.5})

	UpdateFire(api)

	assert.True(t, center.PixelAt(vec.Vec2{X: 10, Y: 10}).IsEmpty(), "прогоревший пиксель исчезает")
}

func TestFireSpreadsThroughManager(t *testing.T) {
	m := NewManager(DefaultRandFactory(17))
	chunk := insertFlooredChunk(m, vec.Vec2{})

	wood := material.MustGet("wood")
	for x := 20; x < 30; x++ {
		require.NoError(t, m.SetPixel(vec.Vec2{X: x, Y: 1}, wood))
	}

	// поджигаем крайнюю доску напрямую
	ignited := chunk.PixelAt(vec.Vec2{X: 20, Y: 1})
	ignited.OnFire = true
	chunk.SetPixelAt(vec.Vec2{X: 20, Y: 1}, ignited)

	burning := 0
	for i := 0; i < 120; i++ {
		m.Tick()
		burning = 0
		for x := 20; x < 30; x++ {
			if chunk.PixelAt(vec.Vec2{X: x, Y: 1}).OnFire {
				burning++
			}
		}
		if burning >= 3 {
			break
		}
	}

	assert.GreaterOrEqual(t, burning, 3, "огонь должен перекинуться на соседние доски")
}
