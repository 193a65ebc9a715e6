package world

import (
	"github.com/google/uuid"

	"github.com/annel0/pixel-world/internal/material"
	"github.com/annel0/pixel-world/internal/vec"
)

// rigidbodyStamp запоминает ячейки, занятые твердым телом
type rigidbodyStamp struct {
	id    uuid.UUID
	cells []vec.Vec2
}

// PlaceRigidbody штампует форму твердого тела в сетку. Порошки, жидкости
// и газы в занимаемых ячейках вытесняются в ближайшие свободные места.
// Возвращает идентификатор тела для последующего снятия штампа.
func (m *Manager) PlaceRigidbody(cells []vec.Vec2, mat material.Material) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	id := uuid.New()
	stamp := &rigidbodyStamp{id: id}

	for _, pos := range cells {
		chunk, loaded := m.loadedChunkAt(pos)
		if !loaded {
			continue
		}

		local := pos.LocalInChunk()
		current := chunk.PixelAt(local)

		switch current.Physics.Kind {
		case material.Static, material.Rigidbody:
			// тело не вытесняет неподвижные ячейки
			continue
		case material.Powder, material.Liquid, material.Gas:
			m.displaceLocked(pos, current.Material())
		}

		occupied := Pixel{
			MaterialID: mat.ID,
			Physics:    material.Physics{Kind: material.Rigidbody},
			Color:      mat.Color,
		}
		chunk.SetPixelAt(local, occupied)
		markRect3x3(m.dirty.Current, chunk.Position, local)
		stamp.cells = append(stamp.cells, pos)
	}

	if len(stamp.cells) == 0 {
		return uuid.Nil, ErrChunkNotLoaded
	}

	m.rigidbodies[id] = stamp
	return id, nil
}

// MoveRigidbody снимает штамп тела и ставит его на новые ячейки
func (m *Manager) MoveRigidbody(id uuid.UUID, cells []vec.Vec2, mat material.Material) (uuid.UUID, error) {
	if err := m.RemoveRigidbody(id); err != nil {
		return uuid.Nil, err
	}
	return m.PlaceRigidbody(cells, mat)
}

// RemoveRigidbody снимает штамп тела, возвращая ячейки в воздух и будя
// окрестность, чтобы вытесненные материалы могли вернуться
func (m *Manager) RemoveRigidbody(id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	stamp, exists := m.rigidbodies[id]
	if !exists {
		return ErrRigidbodyNotFound
	}

	for _, pos := range stamp.cells {
		chunk, loaded := m.loadedChunkAt(pos)
		if !loaded {
			continue
		}

		local := pos.LocalInChunk()
		if chunk.PixelAt(local).Physics.Kind == material.Rigidbody {
			chunk.SetPixelAt(local, AirPixel())
			markRect3x3(m.dirty.Current, chunk.Position, local)
		}
	}

	delete(m.rigidbodies, id)
	return nil
}

// RigidbodyCount возвращает число размещенных тел
func (m *Manager) RigidbodyCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rigidbodies)
}
