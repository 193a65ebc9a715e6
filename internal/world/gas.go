package world

import (
	"github.com/annel0/pixel-world/internal/material"
)

func gasOpen(p material.Physics) bool {
	return p.Kind == material.Air || p.Kind == material.Gas
}

// UpdateGas — правило газа. Поднимается вверх, дрейфует в стороны и
// "проскакивает" две ячейки разом, когда обе открыты, раздавая свою
// чётность направления соседям того же типа для визуальной синхронизации
// потока. Заблокированное движение тратит счетчик уверенности Rb;
// направление меняется только после его исчерпания.
func UpdateGas(api *ChunkAPI) {
	pixel := api.Get(0, 0)

	// рассеивание: -1 означает вечный газ
	switch {
	case pixel.Physics.Dissipate == 0:
		api.Update(AirPixel())
		return
	case pixel.Physics.Dissipate > 0:
		if api.RandInt(2) == 0 {
			pixel.Physics.Dissipate--
		}
	}

	drift := api.RandDir()
	if gasOpen(api.GetPhysics(drift, 0)) && gasOpen(api.GetPhysics(drift, 1)) {
		api.Swap(drift, 0)
	} else if gasOpen(api.GetPhysics(-drift, 0)) && gasOpen(api.GetPhysics(-drift, 1)) {
		api.Swap(-drift, 0)
	}

	if gasOpen(api.GetPhysics(0, 1)) {
		api.Swap(0, 1)
		if api.OnceIn(20) {
			// изредка перемешиваем направление при подъеме
			pixel.Ra = uint8(api.RandInt(20))
		}

		api.Update(pixel)
		return
	}

	dir := 1
	if pixel.Ra%2 == 1 {
		dir = -1
	}

	near := api.GetPhysics(dir, 0)
	far := api.GetPhysics(dir*2, 0)

	if near.Kind == material.Air && far.Kind == material.Air {
		pixel.Rb = 6
		api.Swap(dir*2, 0)
		spreadDirectionBias(api, pixel)
	} else if near.Kind == material.Air {
		pixel.Rb = 3
		api.Swap(dir, 0)
		spreadDirectionBias(api, pixel)
	} else if pixel.Rb == 0 {
		if api.GetPhysics(-dir, 0).Kind == material.Air {
			// уверенность исчерпана, толкаем чётность в другую сторону
			pixel.Ra = uint8(int(pixel.Ra) + dir)
		}
	} else {
		pixel.Rb--
	}

	api.Update(pixel)
}

// spreadDirectionBias передает чётность направления случайному соседу
// того же типа, если их чётности расходятся
func spreadDirectionBias(api *ChunkAPI, pixel Pixel) {
	dx, dy := api.RandVec8()
	neighbour := api.Get(dx, dy)

	if neighbour.Physics.Kind == material.Gas && neighbour.Ra%2 != pixel.Ra%2 {
		neighbour.Ra = pixel.Ra
		api.Set(dx, dy, neighbour)
	}
}
