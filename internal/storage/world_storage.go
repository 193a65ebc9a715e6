// Package storage сохраняет чанки мира в BadgerDB.
package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/dgraph-io/badger/v3"
	"github.com/klauspost/compress/zstd"

	"github.com/annel0/pixel-world/internal/logging"
	"github.com/annel0/pixel-world/internal/material"
	"github.com/annel0/pixel-world/internal/metrics"
	"github.com/annel0/pixel-world/internal/vec"
	"github.com/annel0/pixel-world/internal/world"
)

// WorldStorage представляет собой хранилище данных мира
type WorldStorage struct {
	db      *badger.DB
	dbPath  string
	mutex   sync.RWMutex
	isReady bool
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// ChunkSnapshot — сериализуемый снимок чанка. Материалы вынесены в
// палитру, ячейки ссылаются на нее по индексу.
type ChunkSnapshot struct {
	Position vec.Vec2       `json:"position"`
	State    uint8          `json:"state"`
	Palette  []string       `json:"palette"`
	Cells    []CellSnapshot `json:"cells"`
}

// CellSnapshot — снимок одной ячейки
type CellSnapshot struct {
	M  uint16 `json:"m"`
	Ra uint8  `json:"ra,omitempty"`
	Rb uint8  `json:"rb,omitempty"`
	T  int16  `json:"t,omitempty"`
	F  bool   `json:"f,omitempty"`
}

// NewWorldStorage создает новое хранилище мира
func NewWorldStorage(dataPath string) (*WorldStorage, error) {
	dbPath := filepath.Join(dataPath, "world")
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, fmt.Errorf("не удалось создать zstd decoder: %w", err)
	}

	return &WorldStorage{
		db:      db,
		dbPath:  dbPath,
		isReady: true,
		encoder: encoder,
		decoder: decoder,
	}, nil
}

// Close закрывает хранилище данных
func (ws *WorldStorage) Close() error {
	ws.mutex.Lock()
	defer ws.mutex.Unlock()

	if !ws.isReady {
		return nil
	}

	ws.isReady = false
	ws.encoder.Close()
	ws.decoder.Close()
	return ws.db.Close()
}

func chunkKey(position vec.Vec2) []byte {
	return []byte(fmt.Sprintf("chunk:%d:%d", position.X, position.Y))
}

// makeSnapshot собирает снимок чанка с палитрой материалов
func makeSnapshot(chunk *world.ChunkData) *ChunkSnapshot {
	snapshot := &ChunkSnapshot{
		Position: chunk.Position,
		State:    uint8(chunk.State),
		Cells:    make([]CellSnapshot, len(chunk.Pixels)),
	}

	paletteIndex := make(map[string]uint16)
	for i := range chunk.Pixels {
		pixel := &chunk.Pixels[i]

		index, exists := paletteIndex[pixel.MaterialID]
		if !exists {
			index = uint16(len(snapshot.Palette))
			snapshot.Palette = append(snapshot.Palette, pixel.MaterialID)
			paletteIndex[pixel.MaterialID] = index
		}

		snapshot.Cells[i] = CellSnapshot{
			M:  index,
			Ra: pixel.Ra,
			Rb: pixel.Rb,
			T:  pixel.Temperature,
			F:  pixel.OnFire,
		}
	}

	return snapshot
}

// restoreSnapshot восстанавливает чанк из снимка. Физика ячеек заново
// выводится из регистра материалов.
func restoreSnapshot(snapshot *ChunkSnapshot) (*world.ChunkData, error) {
	chunk := world.NewChunkData(snapshot.Position)
	if len(snapshot.Cells) != len(chunk.Pixels) {
		return nil, fmt.Errorf("снимок чанка %v поврежден: %d ячеек", snapshot.Position, len(snapshot.Cells))
	}

	chunk.State = world.ChunkState(snapshot.State)

	for i, cell := range snapshot.Cells {
		if int(cell.M) >= len(snapshot.Palette) {
			return nil, fmt.Errorf("ячейка %d ссылается за пределы палитры", i)
		}

		id := snapshot.Palette[cell.M]
		if id == material.AirID {
			continue // чанк уже заполнен воздухом
		}

		mat := material.MustGet(id)
		pixel := world.NewPixel(mat, nil)
		pixel.Ra = cell.Ra
		pixel.Rb = cell.Rb
		pixel.Temperature = cell.T
		pixel.OnFire = cell.F
		chunk.Pixels[i] = pixel
	}

	return chunk, nil
}

// SaveChunk сохраняет снимок чанка
func (ws *WorldStorage) SaveChunk(chunk *world.ChunkData) error {
	ws.mutex.RLock()
	defer ws.mutex.RUnlock()

	if !ws.isReady {
		return fmt.Errorf("хранилище не готово")
	}

	data, err := json.Marshal(makeSnapshot(chunk))
	if err != nil {
		return fmt.Errorf("ошибка сериализации снимка: %w", err)
	}

	compressed := ws.encoder.EncodeAll(data, nil)

	err = ws.db.Update(func(txn *badger.Txn) error {
		return txn.Set(chunkKey(chunk.Position), compressed)
	})
	if err != nil {
		return fmt.Errorf("ошибка сохранения в BadgerDB: %w", err)
	}

	metrics.ChunksSaved.Inc()
	return nil
}

// LoadChunk загружает чанк. Возвращает (nil, false, nil), если чанк
// никогда не сохранялся.
func (ws *WorldStorage) LoadChunk(position vec.Vec2) (*world.ChunkData, bool, error) {
	ws.mutex.RLock()
	defer ws.mutex.RUnlock()

	if !ws.isReady {
		return nil, false, fmt.Errorf("хранилище не готово")
	}

	var compressed []byte
	err := ws.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(chunkKey(position))
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			compressed = append([]byte{}, val...)
			return nil
		})
	})

	if err == badger.ErrKeyNotFound {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("ошибка чтения из BadgerDB: %w", err)
	}

	data, err := ws.decoder.DecodeAll(compressed, nil)
	if err != nil {
		return nil, false, fmt.Errorf("ошибка распаковки снимка: %w", err)
	}

	var snapshot ChunkSnapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, false, fmt.Errorf("ошибка десериализации снимка: %w", err)
	}

	chunk, err := restoreSnapshot(&snapshot)
	if err != nil {
		return nil, false, err
	}

	return chunk, true, nil
}

// SaveAll сохраняет все загруженные чанки мира
func (ws *WorldStorage) SaveAll(manager *world.Manager) error {
	var firstErr error
	saved := 0

	manager.ForEachChunk(func(chunk *world.ChunkData) {
		if !chunk.IsLoaded() {
			return
		}
		if err := ws.SaveChunk(chunk); err != nil {
			if firstErr == nil {
				firstErr = err
			}
			return
		}
		saved++
	})

	if firstErr != nil {
		return fmt.Errorf("сохранение мира прервано после %d чанков: %w", saved, firstErr)
	}

	logging.Info("💾 Сохранено %d чанков", saved)
	return nil
}
