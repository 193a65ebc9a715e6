// Package gen отвечает за процедурную генерацию чанков.
package gen

import (
	"math/rand"

	"github.com/aquilax/go-perlin"

	"github.com/annel0/pixel-world/internal/logging"
	"github.com/annel0/pixel-world/internal/material"
	"github.com/annel0/pixel-world/internal/metrics"
	"github.com/annel0/pixel-world/internal/vec"
	"github.com/annel0/pixel-world/internal/world"
)

// Generator превращает шум Перлина в рельеф из травы, земли и камня
type Generator struct {
	noise  *perlin.Perlin
	seed   int64
	logger *logging.Logger
}

// NewGenerator создает генератор с указанным сидом
func NewGenerator(seed int64) *Generator {
	alpha := 2.0  // Сглаживание шума
	beta := 2.0   // Частота шума
	n := int32(3) // Количество октав

	return &Generator{
		noise:  perlin.NewPerlin(alpha, beta, n, seed),
		seed:   seed,
		logger: logging.GetComponentLogger("gen"),
	}
}

// GenerateChunk заполняет чанк базовым рельефом и переводит его в
// состояние заселения. Пороги шума отображаются в слои: тонкая корка
// травы, под ней земля, глубже камень.
func (g *Generator) GenerateChunk(chunk *world.ChunkData) {
	surface := material.MustGet("grass")
	underground := material.MustGet("dirt")
	depth := material.MustGet("stone")

	rng := rand.New(rand.NewSource(g.seed ^ chunkSeed(chunk.Position)))

	for x := 0; x < vec.ChunkSize; x++ {
		for y := 0; y < vec.ChunkSize; y++ {
			value := g.noise.Noise2D(
				float64(x)/float64(vec.ChunkSize)+float64(chunk.Position.X),
				float64(y)/float64(vec.ChunkSize)+float64(chunk.Position.Y),
			)

			value *= 10.0

			local := vec.Vec2{X: x, Y: y}
			switch {
			case value >= 0 && value < 2:
				chunk.SetPixelAt(local, world.NewPixel(surface, rng))
			case value >= 2 && value < 5:
				chunk.SetPixelAt(local, world.NewPixel(underground, rng))
			case value >= 5:
				chunk.SetPixelAt(local, world.NewPixel(depth, rng))
			}
		}
	}

	chunk.State = world.ChunkPopulating
	metrics.ChunksGenerated.Inc()
	g.logger.Trace("сгенерирован чанк %v", chunk.Position)
}

// chunkSeed сворачивает позицию чанка в добавку к сиду мира
func chunkSeed(position vec.Vec2) int64 {
	return int64(position.X)*0x1f1f1f1f + int64(position.Y)*0x2e2e2e2e
}
