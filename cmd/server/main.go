package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/pixel-world/internal/config"
	"github.com/annel0/pixel-world/internal/gen"
	"github.com/annel0/pixel-world/internal/logging"
	"github.com/annel0/pixel-world/internal/material"
	"github.com/annel0/pixel-world/internal/metrics"
	"github.com/annel0/pixel-world/internal/storage"
	"github.com/annel0/pixel-world/internal/vec"
	"github.com/annel0/pixel-world/internal/world"
)

func main() {
	configPath := flag.String("config", "", "путь к YAML конфигурации")
	flag.Parse()

	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger(); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	logging.Info("⏳ Запуск сервера симуляции песочницы...")

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.Error("❌ Ошибка чтения конфигурации: %v", err)
		log.Fatalf("❌ Ошибка чтения конфигурации: %v", err)
	}
	if cfg == nil {
		cfg = &config.Config{}
		logging.Debug("Конфигурация не задана, используются значения по умолчанию")
	}

	// Дополнительные материалы и реакции из YAML (если задан файл)
	if path := cfg.Sim.GetElementsFile(); path != "" {
		if err := material.LoadElementsFile(path); err != nil {
			logging.Error("❌ Ошибка загрузки материалов: %v", err)
			log.Fatalf("❌ Ошибка загрузки материалов: %v", err)
		}
		logging.Info("🧪 Материалы загружены из %s (всего %d)", path, len(material.All()))
	}

	seed := cfg.World.GetSeed()
	manager := world.NewManager(world.DefaultRandFactory(seed))
	manager.SetWorkers(cfg.Sim.GetWorkers())
	generator := gen.NewGenerator(seed)

	store, err := storage.NewWorldStorage(cfg.Storage.GetDataPath())
	if err != nil {
		logging.Error("❌ Ошибка открытия хранилища: %v", err)
		log.Fatalf("❌ Ошибка открытия хранилища: %v", err)
	}
	defer store.Close()

	metrics.StartHTTP(fmt.Sprintf(":%d", cfg.Server.GetMetricsPort()))

	// Наблюдатель закреплён в начале координат
	viewCenter := vec.Vec2{}
	viewDistance := cfg.World.GetViewDistance()

	for _, position := range manager.UpdateLoadedChunks(viewCenter, viewDistance) {
		restored, ok, err := store.LoadChunk(position)
		if err != nil {
			logging.Error("❌ Ошибка загрузки чанка %v: %v", position, err)
		}
		if ok {
			manager.InsertChunk(restored)
			continue
		}
		chunk, _ := manager.GetChunk(position)
		generator.GenerateChunk(chunk)
	}
	// Повторный проход будит восстановленные спящие чанки в зоне видимости
	manager.UpdateLoadedChunks(viewCenter, viewDistance)
	manager.PromoteChunks()

	logging.Info("🌍 Мир готов: %d чанков, сид %d", manager.ChunkCount(), seed)

	tickRate := cfg.Sim.GetTickRate()
	ticker := time.NewTicker(time.Second / time.Duration(tickRate))
	defer ticker.Stop()

	saveTicker := time.NewTicker(time.Duration(cfg.Storage.GetSaveEvery()) * time.Second)
	defer saveTicker.Stop()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	logging.Info("▶️ Симуляция запущена: %d тиков/с", tickRate)

	for {
		select {
		case <-ticker.C:
			manager.Tick()
			// физический движок не подключен: набор дренируется, чтобы не расти
			if dirty := manager.DirtyColliders(); len(dirty) > 0 {
				logging.Debug("🧱 Статика изменилась в %d чанках, коллайдеры устарели", len(dirty))
			}
		case <-saveTicker.C:
			if err := store.SaveAll(manager); err != nil {
				logging.Error("❌ Ошибка автосохранения: %v", err)
			}
		case sig := <-sigCh:
			logging.Info("🛑 Получен сигнал %v, сохранение мира и завершение...", sig)
			if err := store.SaveAll(manager); err != nil {
				logging.Error("❌ Ошибка финального сохранения: %v", err)
			}
			return
		}
	}
}
