package world

import (
	"math"

	"github.com/annel0/pixel-world/internal/material"
)

// UpdateLiquid — правило жидкости. Падает вниз, иначе растекается
// в сторону, закодированную чётностью Ra, на FlowRate шагов за тик,
// после каждого бокового шага оседая вниз до sqrt(FlowRate) ячеек.
// Боковое растекание происходит только под давлением столба сверху
// или сразу после падения: ряд глубиной в одну ячейку лежит спокойно,
// и лужа засыпает за конечное число тиков. Заблокированное боковое
// движение тратит счетчик повторов Rb; по исчерпании Ra
// перевыбирается и Rb сбрасывается.
func UpdateLiquid(api *ChunkAPI) {
	pixel := api.Get(0, 0)
	params := pixel.Physics

	flowsInto := func(other material.Physics) bool {
		switch other.Kind {
		case material.Air, material.Gas:
			return true
		case material.Liquid:
			return params.Density > other.Density
		default:
			return false
		}
	}

	pressured := api.GetPhysics(0, 1).Kind == material.Liquid
	fell := false

	// держим пиксель бодрым, пока ему есть куда двигаться
	if flowsInto(api.GetPhysics(0, -1)) {
		api.KeepAlive(0, 0)
	} else if pressured && (flowsInto(api.GetPhysics(-1, 0)) || flowsInto(api.GetPhysics(1, 0))) {
		api.KeepAlive(0, 0)
	}

	if flowsInto(api.GetPhysics(0, -1)) {
		api.Swap(0, -1)
		fell = true
		if api.OnceIn(20) {
			pixel.Ra = uint8(api.RandInt(20))
		}

		if api.RandFloat() < 0.75 {
			api.Update(pixel)
			return
		}
	}

	if !pressured && !fell {
		api.Update(pixel)
		return
	}

	dir := 1
	if pixel.Ra%2 == 1 {
		dir = -1
	}

	settleSteps := int(math.Sqrt(float64(params.FlowRate)))
	if settleSteps < 1 {
		settleSteps = 1
	}

	for step := 0; step < int(params.FlowRate); step++ {
		if flowsInto(api.GetPhysics(0, -1)) {
			break
		}

		if !flowsInto(api.GetPhysics(dir, 0)) {
			if pixel.Rb == 0 {
				pixel.Ra = uint8(api.RandInt(20))
				pixel.Rb = 3
			} else {
				pixel.Rb--
			}
			break
		}

		api.Swap(dir, 0)

		// оседание после бокового шага выравнивает уровень
		for settle := 0; settle < settleSteps; settle++ {
			if !flowsInto(api.GetPhysics(0, -1)) {
				break
			}
			api.Swap(0, -1)
		}
	}

	api.Update(pixel)
}
