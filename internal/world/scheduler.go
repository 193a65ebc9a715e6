package world

import (
	"sync"
	"time"

	"github.com/annel0/pixel-world/internal/material"
	"github.com/annel0/pixel-world/internal/metrics"
	"github.com/annel0/pixel-world/internal/vec"
)

// messageBuffer — емкость каналов сообщений тика. Потребители читают
// параллельно с воркерами, буфер лишь сглаживает всплески.
const messageBuffer = 8192

// parityGroup распределяет чанки по 4 группам шахматного порядка.
// Окна 3x3 чанков одной группы не пересекаются, поэтому чанки группы
// можно обновлять параллельно без блокировок на пикселях.
func parityGroup(position vec.Vec2) int {
	abs := func(v int) int {
		if v < 0 {
			return -v
		}
		return v
	}
	return abs(position.X)%2 + abs(position.Y)%2*2
}

// Tick выполняет один шаг симуляции: группы чётности обходятся
// последовательно, чанки внутри группы — параллельно. Сообщения о
// пробуждениях и перерисовке стекаются в два канала с единственным
// потребителем на каждый.
func (m *Manager) Tick() {
	started := time.Now()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.clock++
	clock := m.clock

	updateChan := make(chan UpdateMessage, messageBuffer)
	renderChan := make(chan RenderMessage, messageBuffer)
	colliderChan := make(chan ColliderMessage, messageBuffer)

	var consumers sync.WaitGroup
	consumers.Add(3)

	go func() {
		defer consumers.Done()
		for msg := range updateChan {
			if msg.AwakeSurrounding {
				markRect3x3(m.dirty.New, msg.ChunkPosition, msg.CellPosition)
			} else {
				markRect(m.dirty.New, msg.ChunkPosition, msg.CellPosition)
			}
		}
	}()

	go func() {
		defer consumers.Done()
		for msg := range renderChan {
			markRect(m.dirty.Render, msg.ChunkPosition, msg.CellPosition)
		}
	}()

	go func() {
		defer consumers.Done()
		for msg := range colliderChan {
			m.dirty.MarkCollider(msg.ChunkPosition)
		}
	}()

	var groups [4][]vec.Vec2
	active := 0
	for position, chunk := range m.chunks {
		if chunk.State != ChunkActive {
			continue
		}
		active++
		groups[parityGroup(position)] = append(groups[parityGroup(position)], position)
	}

	var sem chan struct{}
	if m.workers > 0 {
		sem = make(chan struct{}, m.workers)
	}

	for _, group := range groups {
		var workers sync.WaitGroup

		for _, position := range group {
			rect, exists := m.dirty.Current[position]
			if !exists || rect.IsEmpty() {
				continue
			}

			chunkGroup, ok := buildChunkGroup(m.chunks, position)
			if !ok {
				continue
			}

			workers.Add(1)
			if sem != nil {
				sem <- struct{}{}
			}
			go func(position vec.Vec2, rect Rect, chunkGroup *ChunkGroup) {
				defer workers.Done()
				if sem != nil {
					defer func() { <-sem }()
				}
				m.updateChunk(position, rect, chunkGroup, clock, updateChan, renderChan, colliderChan)
			}(position, rect, chunkGroup)
		}

		workers.Wait()
	}

	close(updateChan)
	close(renderChan)
	close(colliderChan)
	consumers.Wait()

	// чанк, загрязнившийся впервые, просыпается целиком: его мог
	// разбудить сосед, а границу изменений мы уже не знаем
	for position := range m.dirty.New {
		if _, exists := m.dirty.Current[position]; !exists {
			markRect(m.dirty.New, position, vec.Vec2{})
			markRect(m.dirty.New, position, vec.Vec2{X: vec.ChunkSize - 1, Y: vec.ChunkSize - 1})
		}
	}

	for position := range m.dirty.Current {
		delete(m.dirty.Current, position)
	}
	m.dirty.Swap()

	metrics.ActiveChunks.Set(float64(active))
	metrics.TickDuration.Observe(time.Since(started).Seconds())
}

// updateChunk обходит грязный прямоугольник чанка. Направление обхода
// по X случайное на каждый тик, по Y — всегда снизу вверх.
func (m *Manager) updateChunk(position vec.Vec2, rect Rect, chunkGroup *ChunkGroup, clock uint8, updateSend chan<- UpdateMessage, renderSend chan<- RenderMessage, colliderSend chan<- ColliderMessage) {
	rng := m.randFactory()

	api := &ChunkAPI{
		chunkPosition: position,
		group:         chunkGroup,
		updateSend:    updateSend,
		renderSend:    renderSend,
		colliderSend:  colliderSend,
		clock:         clock,
		rng:           rng,
	}

	leftToRight := rng.Intn(2) == 0
	processed := 0

	for xi := rect.MinX; xi < rect.MaxX; xi++ {
		x := xi
		if !leftToRight {
			x = rect.MaxX - 1 - (xi - rect.MinX)
		}

		for y := rect.MinY; y < rect.MaxY; y++ {
			api.SwitchPosition(vec.Vec2{X: x, Y: y})

			// пиксель уже обновлялся в этом тике: въехал сюда свопом
			if api.GetCounter(0, 0) == clock {
				api.KeepAlive(0, 0)
				continue
			}

			switch api.GetPhysics(0, 0).Kind {
			case material.Powder:
				UpdatePowder(api)
			case material.Liquid:
				UpdateLiquid(api)
			case material.Gas:
				UpdateGas(api)
			case material.Disturbed:
				origin := api.cellPosition
				UpdatePowder(api)

				// не сдвинулся — возмущение улеглось
				if api.cellPosition == origin {
					pixel := api.Get(0, 0)
					pixel.Physics = pixel.Physics.Settle()
					api.Update(pixel)
				}
			}

			pixel := api.Get(0, 0)
			if pixel.OnFire || pixel.Fire != nil {
				UpdateFire(api)
			}

			UpdateReactions(api)

			api.MarkUpdated()
			processed++
		}
	}

	metrics.CellsProcessed.Add(float64(processed))
}
