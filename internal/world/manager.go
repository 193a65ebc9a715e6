package world

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/annel0/pixel-world/internal/collider"
	"github.com/annel0/pixel-world/internal/logging"
	"github.com/annel0/pixel-world/internal/material"
	"github.com/annel0/pixel-world/internal/vec"
)

// ErrChunkNotLoaded возвращается при обращении к пикселю незагруженного чанка
var ErrChunkNotLoaded = errors.New("чанк еще не загружен")

// ErrRigidbodyNotFound возвращается при снятии незарегистрированного тела
var ErrRigidbodyNotFound = errors.New("твердое тело не найдено")

// Manager хранит чанки мира и управляет их жизненным циклом.
// Координаты пикселей глобальные; мир фактически неограничен.
type Manager struct {
	mu          sync.RWMutex
	chunks      map[vec.Vec2]*ChunkData
	dirty       *DirtyRects
	clock       uint8
	randFactory RandFactory
	rigidbodies map[uuid.UUID]*rigidbodyStamp
	workers     int
	logger      *logging.Logger
}

// NewManager создает пустой менеджер мира
func NewManager(randFactory RandFactory) *Manager {
	return &Manager{
		chunks:      make(map[vec.Vec2]*ChunkData),
		dirty:       NewDirtyRects(),
		randFactory: randFactory,
		rigidbodies: make(map[uuid.UUID]*rigidbodyStamp),
		logger:      logging.GetWorldLogger(),
	}
}

// SetWorkers ограничивает число параллельных воркеров внутри группы
// чётности. Ноль или отрицательное значение снимает ограничение.
func (m *Manager) SetWorkers(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.workers = n
}

// Clock возвращает текущее значение часов симуляции
func (m *Manager) Clock() uint8 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.clock
}

// ChunkCount возвращает число загруженных чанков
func (m *Manager) ChunkCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.chunks)
}

// GetChunk возвращает данные чанка по его координатам
func (m *Manager) GetChunk(position vec.Vec2) (*ChunkData, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	chunk, exists := m.chunks[position]
	return chunk, exists
}

// InsertChunk добавляет готовый чанк в мир. Активный чанк сразу
// помечается полностью грязным, чтобы симуляция его подхватила.
func (m *Manager) InsertChunk(chunk *ChunkData) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.chunks[chunk.Position] = chunk
	if chunk.State == ChunkActive {
		m.dirty.Maximize(chunk.Position)
	}
}

// loadedChunkAt возвращает чанк для глобальной позиции пикселя.
// Вызывается под блокировкой.
func (m *Manager) loadedChunkAt(pos vec.Vec2) (*ChunkData, bool) {
	chunk, exists := m.chunks[pos.ToChunkCoords()]
	if !exists || !chunk.IsLoaded() {
		return nil, false
	}
	return chunk, true
}

// GetPixel возвращает пиксель по глобальной позиции
func (m *Manager) GetPixel(pos vec.Vec2) (Pixel, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	chunk, loaded := m.loadedChunkAt(pos)
	if !loaded {
		return Pixel{}, ErrChunkNotLoaded
	}
	return chunk.PixelAt(pos.LocalInChunk()), nil
}

// SetPixel записывает материал по глобальной позиции и будит окрестность
func (m *Manager) SetPixel(pos vec.Vec2, mat material.Material) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setPixelLocked(pos, mat)
}

func (m *Manager) setPixelLocked(pos vec.Vec2, mat material.Material) error {
	chunk, loaded := m.loadedChunkAt(pos)
	if !loaded {
		return ErrChunkNotLoaded
	}

	local := pos.LocalInChunk()
	if (chunk.PixelAt(local).Physics.Kind == material.Static) != (mat.Physics.Kind == material.Static) {
		m.dirty.MarkCollider(chunk.Position)
	}
	chunk.SetPixelAt(local, NewPixel(mat, m.randFactory()))
	markRect3x3(m.dirty.Current, chunk.Position, local)
	return nil
}

// SetPixelWithCondition записывает материал, только если текущий пиксель
// проходит проверку. Возвращает true при успешной записи.
func (m *Manager) SetPixelWithCondition(pos vec.Vec2, mat material.Material, condition func(Pixel) bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.setWithConditionLocked(pos, mat, condition)
}

func (m *Manager) setWithConditionLocked(pos vec.Vec2, mat material.Material, condition func(Pixel) bool) (bool, error) {
	chunk, loaded := m.loadedChunkAt(pos)
	if !loaded {
		return false, ErrChunkNotLoaded
	}

	local := pos.LocalInChunk()
	previous := chunk.PixelAt(local)
	if !condition(previous) {
		return false, nil
	}

	if (previous.Physics.Kind == material.Static) != (mat.Physics.Kind == material.Static) {
		m.dirty.MarkCollider(chunk.Position)
	}
	chunk.SetPixelAt(local, NewPixel(mat, m.randFactory()))
	markRect3x3(m.dirty.Current, chunk.Position, local)
	return true, nil
}

// Displace размещает материал в ближайшей свободной ячейке, обходя
// окрестность 32x32 по спирали от центра. Возвращает false, если
// свободного места не нашлось.
func (m *Manager) Displace(pos vec.Vec2, mat material.Material) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.displaceLocked(pos, mat)
}

func (m *Manager) displaceLocked(pos vec.Vec2, mat material.Material) bool {
	const scanW, scanH = 32, 32
	scan := vec.Vec2{}
	delta := vec.Vec2{X: 0, Y: -1}
	maxSteps := scanW * scanH

	for i := 0; i < maxSteps; i++ {
		if scan.X >= -scanW/2 && scan.X <= scanW/2 && scan.Y >= -scanH/2 && scan.Y <= scanH/2 {
			placed, err := m.setWithConditionLocked(pos.Add(scan), mat, func(p Pixel) bool {
				return p.Physics.Kind == material.Air
			})
			if err == nil && placed {
				return true
			}
		}

		if scan.X == scan.Y ||
			(scan.X < 0 && scan.X == -scan.Y) ||
			(scan.X > 0 && scan.X == 1-scan.Y) {
			delta.X, delta.Y = -delta.Y, delta.X
		}

		scan = scan.Add(delta)
	}

	return false
}

// UpdateLoadedChunks синхронизирует множество загруженных чанков с зоной
// видимости: активные чанки вне зоны засыпают, спящие в зоне просыпаются
// с полным пробуждением, отсутствующие создаются в состоянии генерации.
// Возвращает позиции чанков, которым нужна генерация.
func (m *Manager) UpdateLoadedChunks(center vec.Vec2, viewDistance int) []vec.Vec2 {
	m.mu.Lock()
	defer m.mu.Unlock()

	inView := func(position vec.Vec2) bool {
		return position.ChebyshevTo(center) <= viewDistance
	}

	for position, chunk := range m.chunks {
		if chunk.State == ChunkActive && !inView(position) {
			chunk.State = ChunkSleeping
		}
	}

	var toGenerate []vec.Vec2
	for x := center.X - viewDistance; x <= center.X+viewDistance; x++ {
		for y := center.Y - viewDistance; y <= center.Y+viewDistance; y++ {
			position := vec.Vec2{X: x, Y: y}

			chunk, exists := m.chunks[position]
			if !exists {
				newChunk := NewChunkData(position)
				newChunk.State = ChunkGenerating
				m.chunks[position] = newChunk
				toGenerate = append(toGenerate, position)
				continue
			}

			if chunk.State == ChunkSleeping {
				chunk.State = ChunkActive
				m.dirty.Maximize(position)
			}
		}
	}

	if len(toGenerate) > 0 {
		m.logger.Debug("запрошена генерация %d чанков вокруг %v", len(toGenerate), center)
	}

	return toGenerate
}

// PromoteChunks переводит заселенные чанки в активное состояние, когда
// все 8 соседей прошли хотя бы базовую генерацию. Активированные чанки
// помечаются полностью грязными.
func (m *Manager) PromoteChunks() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	promoted := 0
	for position, chunk := range m.chunks {
		if chunk.State != ChunkPopulating {
			continue
		}

		ready := true
		for dx := -1; dx <= 1 && ready; dx++ {
			for dy := -1; dy <= 1; dy++ {
				if dx == 0 && dy == 0 {
					continue
				}
				neighbour, exists := m.chunks[position.Add(vec.Vec2{X: dx, Y: dy})]
				if !exists || neighbour.State < ChunkPopulating {
					ready = false
					break
				}
			}
		}

		if ready {
			chunk.State = ChunkActive
			m.dirty.Maximize(position)
			promoted++
		}
	}

	return promoted
}

// ChunkColliders извлекает контуры статических областей чанка для
// внешнего физического движка
func (m *Manager) ChunkColliders(position vec.Vec2) ([]collider.Polyline, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	chunk, exists := m.chunks[position]
	if !exists || !chunk.IsLoaded() {
		return nil, ErrChunkNotLoaded
	}

	return collider.BuildChunkColliders(vec.ChunkSize, vec.ChunkSize, func(index int) bool {
		return chunk.Pixels[index].Physics.Kind == material.Static
	}), nil
}

// ForEachChunk вызывает fn для каждого чанка под блокировкой чтения
func (m *Manager) ForEachChunk(fn func(*ChunkData)) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, chunk := range m.chunks {
		fn(chunk)
	}
}

// HasDirty сообщает, есть ли работа на текущий тик
func (m *Manager) HasDirty() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.dirty.Current) > 0
}

// DirtyRect возвращает грязный прямоугольник чанка на текущий тик
func (m *Manager) DirtyRect(position vec.Vec2) (Rect, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	rect, exists := m.dirty.Current[position]
	return rect, exists
}

// RenderRects отдает накопленные области перерисовки и очищает их
func (m *Manager) RenderRects() map[vec.Vec2]Rect {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := m.dirty.Render
	m.dirty.Render = make(map[vec.Vec2]Rect)
	return out
}

// DirtyColliders отдает чанки, статическое содержимое которых изменилось
// с прошлого вызова, и очищает накопленный набор. Внешний физический
// движок перестраивает коллизионные сетки именно для этих чанков.
func (m *Manager) DirtyColliders() []vec.Vec2 {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]vec.Vec2, 0, len(m.dirty.Colliders))
	for position := range m.dirty.Colliders {
		out = append(out, position)
	}
	m.dirty.Colliders = make(map[vec.Vec2]struct{})
	return out
}
