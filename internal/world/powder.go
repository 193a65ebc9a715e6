package world

import (
	"github.com/annel0/pixel-world/internal/material"
)

// powderOpen сообщает, может ли порошок провалиться в ячейку
func powderOpen(p material.Physics) bool {
	return p.Kind == material.Air || p.Kind == material.Gas
}

// UpdatePowder — правило порошка. Предпочитает падение вертикально вниз,
// затем по диагонали со случайным выбором стороны; в жидкость
// проваливается с пониженной вероятностью, имитируя погружение.
func UpdatePowder(api *ChunkAPI) {
	dx := api.RandDir()

	if powderOpen(api.GetPhysics(0, -1)) {
		// изредка уходим в открытую диагональ вместо прямого падения,
		// чтобы столбы не складывались в идеальные башни
		if api.OnceIn(5) && powderOpen(api.GetPhysics(dx, -1)) {
			api.Swap(dx, -1)
		} else {
			api.Swap(0, -1)
		}
	} else if powderOpen(api.GetPhysics(dx, -1)) {
		api.Swap(dx, -1)
	} else if powderOpen(api.GetPhysics(-dx, -1)) {
		api.Swap(-dx, -1)
	} else if api.GetPhysics(0, -1).Kind == material.Liquid {
		if api.OnceIn(30) && sinkOpen(api.GetPhysics(dx, -1)) {
			api.Swap(dx, -1)
		} else {
			api.Swap(0, -1)
		}
	}
}

func sinkOpen(p material.Physics) bool {
	return p.Kind == material.Air || p.Kind == material.Gas || p.Kind == material.Liquid
}
