// Package metrics экспортирует Prometheus-метрики симуляции.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/annel0/pixel-world/internal/logging"
)

var (
	// TickDuration — гистограмма длительности одного тика симуляции
	TickDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "sim",
		Name:      "tick_duration_seconds",
		Help:      "Длительность одного тика симуляции.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 2, 14),
	})

	// ActiveChunks — число чанков, участвующих в симуляции
	ActiveChunks = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "sim",
		Name:      "active_chunks",
		Help:      "Число активных чанков на последнем тике.",
	})

	// CellsProcessed — суммарное число обработанных ячеек
	CellsProcessed = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sim",
		Name:      "cells_processed_total",
		Help:      "Общее число ячеек, пройденных правилами обновления.",
	})

	// ChunksGenerated — число сгенерированных чанков
	ChunksGenerated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sim",
		Name:      "chunks_generated_total",
		Help:      "Общее число сгенерированных чанков.",
	})

	// ColliderRebuilds — число перестроений коллайдеров чанков
	ColliderRebuilds = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sim",
		Name:      "collider_rebuilds_total",
		Help:      "Общее число перестроений коллизионных сеток чанков.",
	})

	// ChunksSaved — число чанков, записанных в хранилище
	ChunksSaved = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sim",
		Name:      "chunks_saved_total",
		Help:      "Общее число чанков, сохраненных на диск.",
	})
)

func init() {
	prometheus.MustRegister(
		TickDuration,
		ActiveChunks,
		CellsProcessed,
		ChunksGenerated,
		ColliderRebuilds,
		ChunksSaved,
	)
}

// StartHTTP запускает HTTP-эндпоинт Prometheus на указанном адресе.
// Метод неблокирующий: сервер стартует в отдельной горутине.
func StartHTTP(addr string) {
	go func() {
		logging.Info("📈 Prometheus /metrics доступен по адресу %s", addr)
		if err := http.ListenAndServe(addr, promhttp.Handler()); err != nil {
			logging.Error("Ошибка Prometheus HTTP сервера: %v", err)
		}
	}()
}
