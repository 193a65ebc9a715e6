package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/pixel-world/internal/material"
	"github.com/annel0/pixel-world/internal/vec"
	"github.com/annel0/pixel-world/internal/world"
)

func newTestStorage(t *testing.T) *WorldStorage {
	t.Helper()

	ws, err := NewWorldStorage(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = ws.Close() })
	return ws
}

func TestSaveLoadRoundtrip(t *testing.T) {
	ws := newTestStorage(t)

	chunk := world.NewChunkData(vec.Vec2{X: 2, Y: -3})
	chunk.State = world.ChunkActive

	sand := world.NewPixel(material.MustGet("sand"), nil)
	sand.Ra = 7
	sand.Rb = 2
	chunk.SetPixelAt(vec.Vec2{X: 5, Y: 10}, sand)

	water := world.NewPixel(material.MustGet("water"), nil)
	water.Temperature = 15
	chunk.SetPixelAt(vec.Vec2{X: 6, Y: 10}, water)

	require.NoError(t, ws.SaveChunk(chunk))

	restored, ok, err := ws.LoadChunk(chunk.Position)
	require.NoError(t, err)
	require.True(t, ok)

	assert.Equal(t, chunk.Position, restored.Position)
	assert.Equal(t, world.ChunkActive, restored.State)

	restoredSand := restored.PixelAt(vec.Vec2{X: 5, Y: 10})
	assert.Equal(t, "sand", restoredSand.MaterialID)
	assert.Equal(t, uint8(7), restoredSand.Ra)
	assert.Equal(t, uint8(2), restoredSand.Rb)
	assert.Equal(t, material.Powder, restoredSand.Physics.Kind, "физика выводится из регистра")

	restoredWater := restored.PixelAt(vec.Vec2{X: 6, Y: 10})
	assert.Equal(t, "water", restoredWater.MaterialID)
	assert.Equal(t, int16(15), restoredWater.Temperature)

	// остальные ячейки — канонический воздух
	assert.Equal(t, world.AirPixel(), restored.PixelAt(vec.Vec2{X: 0, Y: 0}))
}

func TestLoadMissingChunk(t *testing.T) {
	ws := newTestStorage(t)

	chunk, ok, err := ws.LoadChunk(vec.Vec2{X: 100, Y: 100})
	require.NoError(t, err)
	assert.False(t, ok, "несохраненный чанк не является ошибкой")
	assert.Nil(t, chunk)
}

func TestSaveOverwrites(t *testing.T) {
	ws := newTestStorage(t)

	chunk := world.NewChunkData(vec.Vec2{})
	chunk.State = world.ChunkActive
	require.NoError(t, ws.SaveChunk(chunk))

	chunk.SetPixelAt(vec.Vec2{X: 1, Y: 1}, world.NewPixel(material.MustGet("stone"), nil))
	require.NoError(t, ws.SaveChunk(chunk))

	restored, ok, err := ws.LoadChunk(chunk.Position)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "stone", restored.PixelAt(vec.Vec2{X: 1, Y: 1}).MaterialID)
}

func TestClosedStorageRejectsOperations(t *testing.T) {
	ws, err := NewWorldStorage(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, ws.Close())

	chunk := world.NewChunkData(vec.Vec2{})
	assert.Error(t, ws.SaveChunk(chunk))

	_, _, err = ws.LoadChunk(vec.Vec2{})
	assert.Error(t, err)

	assert.NoError(t, ws.Close(), "повторное закрытие безопасно")
}

func TestSaveAllPersistsLoadedChunks(t *testing.T) {
	ws := newTestStorage(t)

	manager := world.NewManager(world.DefaultRandFactory(1))

	active := world.NewChunkData(vec.Vec2{X: 0, Y: 0})
	active.State = world.ChunkActive
	manager.InsertChunk(active)

	generating := world.NewChunkData(vec.Vec2{X: 1, Y: 0})
	generating.State = world.ChunkGenerating
	manager.InsertChunk(generating)

	require.NoError(t, ws.SaveAll(manager))

	_, ok, err := ws.LoadChunk(vec.Vec2{X: 0, Y: 0})
	require.NoError(t, err)
	assert.True(t, ok)

	_, ok, err = ws.LoadChunk(vec.Vec2{X: 1, Y: 0})
	require.NoError(t, err)
	assert.False(t, ok, "недогенерированные чанки не сохраняются")
}
