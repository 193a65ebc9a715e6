package world

import (
	"github.com/annel0/pixel-world/internal/material"
	"github.com/annel0/pixel-world/internal/vec"
)

// UpdateMessage сообщает планировщику об изменившейся ячейке.
// AwakeSurrounding требует разбудить окрестность 3x3 вместе с ней.
type UpdateMessage struct {
	ChunkPosition    vec.Vec2
	CellPosition     vec.Vec2
	AwakeSurrounding bool
}

// RenderMessage помечает ячейку для перерисовки
type RenderMessage struct {
	ChunkPosition vec.Vec2
	CellPosition  vec.Vec2
}

// ColliderMessage сообщает, что статическое содержимое чанка изменилось
// и его коллизионную сетку нужно перестроить
type ColliderMessage struct {
	ChunkPosition vec.Vec2
}

// ChunkAPI — курсор правила обновления над окном 3x3. Все смещения
// относительны текущей позиции курсора; Swap передвигает курсор вслед
// за перемещенным пикселем. Чтение за пределами загруженных чанков
// возвращает сторожевой Wall.
type ChunkAPI struct {
	chunkPosition vec.Vec2
	cellPosition  vec.Vec2
	group         *ChunkGroup
	updateSend    chan<- UpdateMessage
	renderSend    chan<- RenderMessage
	colliderSend  chan<- ColliderMessage
	clock         uint8
	rng           Rand
}

// Clock возвращает значение часов текущего тика
func (api *ChunkAPI) Clock() uint8 {
	return api.clock
}

// Get возвращает копию пикселя по смещению от курсора
func (api *ChunkAPI) Get(dx, dy int) Pixel {
	if pixel := api.group.Get(api.cellPosition.Add(vec.Vec2{X: dx, Y: dy})); pixel != nil {
		return *pixel
	}
	return Wall()
}

// GetCounter возвращает метку тика пикселя по смещению
func (api *ChunkAPI) GetCounter(dx, dy int) uint8 {
	if pixel := api.group.Get(api.cellPosition.Add(vec.Vec2{X: dx, Y: dy})); pixel != nil {
		return pixel.UpdatedAt
	}
	return 0
}

// GetPhysics возвращает тип физики по смещению.
// За границей мира — Static, чтобы ничего не утекало.
func (api *ChunkAPI) GetPhysics(dx, dy int) material.Physics {
	if pixel := api.group.Get(api.cellPosition.Add(vec.Vec2{X: dx, Y: dy})); pixel != nil {
		return pixel.Physics
	}
	return material.Physics{Kind: material.Static}
}

// IsEmpty сообщает, является ли ячейка по смещению воздухом
func (api *ChunkAPI) IsEmpty(dx, dy int) bool {
	if pixel := api.group.Get(api.cellPosition.Add(vec.Vec2{X: dx, Y: dy})); pixel != nil {
		return pixel.IsEmpty()
	}
	return false
}

// MatchMaterial проверяет материал ячейки по смещению
func (api *ChunkAPI) MatchMaterial(dx, dy int, id string) bool {
	if pixel := api.group.Get(api.cellPosition.Add(vec.Vec2{X: dx, Y: dy})); pixel != nil {
		return pixel.MaterialID == id
	}
	return false
}

// Set записывает пиксель по смещению от курсора
func (api *ChunkAPI) Set(dx, dy int, pixel Pixel) {
	if target := api.group.Get(api.cellPosition.Add(vec.Vec2{X: dx, Y: dy})); target != nil {
		*target = pixel
	}
}

// Swap меняет местами пиксель под курсором и пиксель по смещению,
// будит обе ячейки и передвигает курсор на новую позицию
func (api *ChunkAPI) Swap(dx, dy int) {
	first := api.group.Get(api.cellPosition)
	second := api.group.Get(api.cellPosition.Add(vec.Vec2{X: dx, Y: dy}))
	if first == nil || second == nil {
		return
	}

	*first, *second = *second, *first

	api.KeepAlive(0, 0)
	api.KeepAlive(dx, dy)

	api.cellPosition = api.cellPosition.Add(vec.Vec2{X: dx, Y: dy})
}

// KeepAlive будит ячейку по смещению на следующий тик вместе с ее
// окрестностью
func (api *ChunkAPI) KeepAlive(dx, dy int) {
	cell := api.cellPosition.Add(vec.Vec2{X: dx, Y: dy})
	chunkPosition := api.chunkPosition.Add(cell.ToChunkCoords())
	local := cell.LocalInChunk()

	api.updateSend <- UpdateMessage{
		ChunkPosition:    chunkPosition,
		CellPosition:     local,
		AwakeSurrounding: true,
	}
	api.renderSend <- RenderMessage{
		ChunkPosition: chunkPosition,
		CellPosition:  local,
	}
}

// ColliderChanged сообщает планировщику, что изменение ячейки по
// смещению затронуло статическое содержимое ее чанка
func (api *ChunkAPI) ColliderChanged(dx, dy int) {
	cell := api.cellPosition.Add(vec.Vec2{X: dx, Y: dy})
	api.colliderSend <- ColliderMessage{
		ChunkPosition: api.chunkPosition.Add(cell.ToChunkCoords()),
	}
}

// Update записывает пиксель под курсор и помечает ячейку для перерисовки
func (api *ChunkAPI) Update(pixel Pixel) {
	if target := api.group.Get(api.cellPosition); target != nil {
		*target = pixel
	}

	chunkPosition := api.chunkPosition.Add(api.cellPosition.ToChunkCoords())
	api.renderSend <- RenderMessage{
		ChunkPosition: chunkPosition,
		CellPosition:  api.cellPosition.LocalInChunk(),
	}
}

// MarkUpdated ставит пикселю под курсором метку текущего тика
func (api *ChunkAPI) MarkUpdated() {
	if target := api.group.Get(api.cellPosition); target != nil {
		target.UpdatedAt = api.clock
	}

	chunkPosition := api.chunkPosition.Add(api.cellPosition.ToChunkCoords())
	api.renderSend <- RenderMessage{
		ChunkPosition: chunkPosition,
		CellPosition:  api.cellPosition.LocalInChunk(),
	}
}

// SwitchPosition переводит курсор на локальную позицию центрального чанка
func (api *ChunkAPI) SwitchPosition(cell vec.Vec2) {
	api.cellPosition = cell
}

// RandInt возвращает случайное число в [0, n)
func (api *ChunkAPI) RandInt(n int) int {
	return api.rng.Intn(n)
}

// RandFloat возвращает случайное число в [0, 1)
func (api *ChunkAPI) RandFloat() float32 {
	return api.rng.Float32()
}

// RandDir возвращает случайное направление -1 или 1
func (api *ChunkAPI) RandDir() int {
	if api.RandInt(1000)%2 == 0 {
		return -1
	}
	return 1
}

// RandVec8 возвращает случайное смещение на одного из 8 соседей
func (api *ChunkAPI) RandVec8() (int, int) {
	switch api.RandInt(8) {
	case 0:
		return 1, 1
	case 1:
		return 1, 0
	case 2:
		return 1, -1
	case 3:
		return 0, -1
	case 4:
		return -1, -1
	case 5:
		return -1, 0
	case 6:
		return -1, 1
	default:
		return 0, 1
	}
}

// OnceIn возвращает true в среднем один раз из n вызовов
func (api *ChunkAPI) OnceIn(n int) bool {
	return api.RandInt(n) == 0
}
