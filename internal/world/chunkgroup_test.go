package world

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/pixel-world/internal/material"
	"github.com/annel0/pixel-world/internal/vec"
)

// activeChunk создает активный чанк для сборки группы
func activeChunk(position vec.Vec2) *ChunkData {
	chunk := NewChunkData(position)
	chunk.State = ChunkActive
	return chunk
}

func TestBuildChunkGroupRequiresCenter(t *testing.T) {
	chunks := map[vec.Vec2]*ChunkData{}

	_, ok := buildChunkGroup(chunks, vec.Vec2{})
	assert.False(t, ok, "группа без центрального чанка не собирается")

	generating := NewChunkData(vec.Vec2{})
	generating.State = ChunkGenerating
	chunks[vec.Vec2{}] = generating

	_, ok = buildChunkGroup(chunks, vec.Vec2{})
	assert.False(t, ok, "генерирующийся чанк не участвует в симуляции")
}

func TestChunkGroupGetAcrossChunks(t *testing.T) {
	center := activeChunk(vec.Vec2{})
	right := activeChunk(vec.Vec2{X: 1})
	topRight := activeChunk(vec.Vec2{X: 1, Y: 1})

	sand := NewPixel(material.MustGet("sand"), nil)
	right.SetPixelAt(vec.Vec2{X: 0, Y: 10}, sand)
	topRight.SetPixelAt(vec.Vec2{X: 2, Y: 3}, sand)

	chunks := map[vec.Vec2]*ChunkData{
		center.Position:   center,
		right.Position:    right,
		topRight.Position: topRight,
	}

	group, ok := buildChunkGroup(chunks, vec.Vec2{})
	require.True(t, ok)

	// ячейка (64, 10) лежит в правом соседе
	pixel := group.Get(vec.Vec2{X: vec.ChunkSize, Y: 10})
	require.NotNil(t, pixel)
	assert.Equal(t, "sand", pixel.MaterialID)

	// ячейка (66, 67) лежит в угловом соседе
	pixel = group.Get(vec.Vec2{X: vec.ChunkSize + 2, Y: vec.ChunkSize + 3})
	require.NotNil(t, pixel)
	assert.Equal(t, "sand", pixel.MaterialID)

	// незагруженный сосед слева
	assert.Nil(t, group.Get(vec.Vec2{X: -1, Y: 0}))
	// за пределами окна 3x3
	assert.Nil(t, group.Get(vec.Vec2{X: 2 * vec.ChunkSize, Y: 0}))
}

func TestChunkGroupMutationIsShared(t *testing.T) {
	center := activeChunk(vec.Vec2{})
	chunks := map[vec.Vec2]*ChunkData{center.Position: center}

	group, ok := buildChunkGroup(chunks, vec.Vec2{})
	require.True(t, ok)

	pixel := group.Get(vec.Vec2{X: 5, Y: 5})
	require.NotNil(t, pixel)
	*pixel = NewPixel(material.MustGet("stone"), nil)

	assert.Equal(t, "stone", center.PixelAt(vec.Vec2{X: 5, Y: 5}).MaterialID,
		"группа разделяет память с чанком")
}
