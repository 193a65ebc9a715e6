package world

import (
	"math/rand"
	"sync/atomic"
)

// Rand источник случайности для правил обновления.
// Интерфейс позволяет подменять его детерминированным источником.
type Rand interface {
	Intn(n int) int
	Float32() float32
}

// RandFactory создает независимый источник для воркера
type RandFactory func() Rand

var seedCounter atomic.Int64

// DefaultRandFactory возвращает фабрику несинхронизированных источников
// на основе сида мира. Каждый вызов дает новый поток случайности.
func DefaultRandFactory(seed int64) RandFactory {
	return func() Rand {
		return rand.New(rand.NewSource(seed + seedCounter.Add(1)))
	}
}
