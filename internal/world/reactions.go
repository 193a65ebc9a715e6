package world

import (
	"github.com/annel0/pixel-world/internal/material"
)

// NewPixelFrom создает пиксель материала через источник случайности курсора
func (api *ChunkAPI) NewPixelFrom(m material.Material) Pixel {
	return NewPixel(m, api.rng)
}

// UpdateReactions проверяет контактные реакции пикселя с 8 соседями.
// Срабатывает не больше одной реакции за тик на пиксель.
func UpdateReactions(api *ChunkAPI) {
	pixel := api.Get(0, 0)

	if !material.HasReactions(pixel.MaterialID) {
		return
	}

	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}

			neighbour := api.Get(dx, dy)
			if neighbour.IsEmpty() || neighbour.MaterialID == pixel.MaterialID {
				continue
			}

			reaction, exists := material.GetReaction(pixel.MaterialID, neighbour.MaterialID)
			if !exists {
				continue
			}

			if api.RandFloat() < reaction.Probability {
				out1 := material.MustGet(reaction.OutputMaterial1)
				out2 := material.MustGet(reaction.OutputMaterial2)

				api.Set(0, 0, api.NewPixelFrom(out1).WithClock(api.clock))
				api.Set(dx, dy, api.NewPixelFrom(out2).WithClock(api.clock))

				// статика появилась или исчезла: чанку нужна новая
				// коллизионная сетка
				if (pixel.Physics.Kind == material.Static) != (out1.Physics.Kind == material.Static) {
					api.ColliderChanged(0, 0)
				}
				if (neighbour.Physics.Kind == material.Static) != (out2.Physics.Kind == material.Static) {
					api.ColliderChanged(dx, dy)
				}
				return
			}

			// реакция возможна, но не выпала: не даем паре заснуть
			api.KeepAlive(dx, dy)
		}
	}
}
