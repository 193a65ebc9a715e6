package material

import (
	"fmt"
	"os"
	"sync"

	"gopkg.in/yaml.v3"
)

var (
	mu        sync.RWMutex
	registry  = make(map[string]Material)
	reactions = make(map[string]map[string]Reaction)
)

func init() {
	for _, m := range builtins() {
		registry[m.ID] = m
	}
}

// builtins возвращает встроенный набор материалов.
// Файл elements.yaml может переопределять и дополнять его.
func builtins() []Material {
	return []Material{
		Default(),
		{
			ID:      BarrierID,
			UIName:  "Barrier",
			Physics: Physics{Kind: Static},
			Color:   [4]uint8{0x23, 0x23, 0x28, 0xff},
		},
		{
			ID:      "grass",
			UIName:  "Grass",
			Physics: Physics{Kind: Static},
			Color:   [4]uint8{0x7d, 0xaa, 0x4d, 0xff},

			ColorOffset: 10,
			Fire: &FireParameters{
				FireTemperature:     125,
				IgnitionTemperature: 75,
				FireHP:              25,
			},
		},
		{
			ID:          "dirt",
			UIName:      "Dirt",
			Physics:     Physics{Kind: Static},
			Color:       [4]uint8{0x6d, 0x5f, 0x3d, 0xff},
			ColorOffset: 15,
		},
		{
			ID:          "stone",
			UIName:      "Stone",
			Physics:     Physics{Kind: Static},
			Color:       [4]uint8{0x71, 0x77, 0x77, 0xff},
			ColorOffset: 20,
		},
		{
			ID:          "sand",
			UIName:      "Sand",
			Physics:     Physics{Kind: Powder},
			Color:       [4]uint8{0xf2, 0xd2, 0xa9, 0xff},
			ColorOffset: 10,
		},
		{
			ID:          "water",
			UIName:      "Water",
			Physics:     Physics{Kind: Liquid, FlowRate: 4, Density: 2},
			Color:       [4]uint8{0x47, 0x7c, 0xb8, 0xc8},
			ColorOffset: 5,
			Conductive:  true,
		},
		{
			ID:          "steam",
			UIName:      "Steam",
			Physics:     Physics{Kind: Gas, Density: 1, Dissipate: -1},
			Color:       [4]uint8{0xc8, 0xc8, 0xc8, 0x64},
			ColorOffset: 5,
		},
		{
			ID:          "wood",
			UIName:      "Wood",
			Physics:     Physics{Kind: Static},
			Color:       [4]uint8{0x6a, 0x4b, 0x2a, 0xff},
			ColorOffset: 12,
			Fire: &FireParameters{
				FireTemperature:     150,
				IgnitionTemperature: 90,
				FireHP:              80,
			},
		},
	}
}

// Register добавляет материал в регистр
func Register(m Material) {
	mu.Lock()
	defer mu.Unlock()
	registry[m.ID] = m
}

// Get возвращает материал по ID
func Get(id string) (Material, bool) {
	mu.RLock()
	defer mu.RUnlock()
	m, exists := registry[id]
	return m, exists
}

// MustGet возвращает материал по ID или пустоту, если он не зарегистрирован
func MustGet(id string) Material {
	if m, exists := Get(id); exists {
		return m
	}
	return Default()
}

// IsValidID проверяет, зарегистрирован ли материал
func IsValidID(id string) bool {
	_, exists := Get(id)
	return exists
}

// All возвращает снимок всех зарегистрированных материалов
func All() []Material {
	mu.RLock()
	defer mu.RUnlock()
	materials := make([]Material, 0, len(registry))
	for _, m := range registry {
		materials = append(materials, m)
	}
	return materials
}

// RegisterReaction добавляет реакцию в индекс по первому входному материалу
func RegisterReaction(r Reaction) {
	mu.Lock()
	defer mu.Unlock()
	if _, exists := reactions[r.InputMaterial1]; !exists {
		reactions[r.InputMaterial1] = make(map[string]Reaction)
	}
	reactions[r.InputMaterial1][r.InputMaterial2] = r
}

// GetReaction возвращает реакцию материала a с материалом b.
// Реакция с ключом "any" срабатывает на любой непустой материал.
func GetReaction(a, b string) (Reaction, bool) {
	mu.RLock()
	defer mu.RUnlock()
	byFirst, exists := reactions[a]
	if !exists {
		return Reaction{}, false
	}
	if r, exists := byFirst[b]; exists {
		return r, true
	}
	if r, exists := byFirst["any"]; exists {
		return r, true
	}
	return Reaction{}, false
}

// HasReactions сообщает, есть ли у материала хотя бы одна реакция
func HasReactions(id string) bool {
	mu.RLock()
	defer mu.RUnlock()
	byFirst, exists := reactions[id]
	return exists && len(byFirst) > 0
}

// elementsFile формат YAML файла материалов
type elementsFile struct {
	Elements  []Material `yaml:"elements"`
	Reactions []Reaction `yaml:"reactions"`
}

// LoadElementsFile читает материалы и реакции из YAML файла
func LoadElementsFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("ошибка чтения файла элементов: %w", err)
	}

	var file elementsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("ошибка разбора файла элементов: %w", err)
	}

	for _, m := range file.Elements {
		if m.ID == "" {
			return fmt.Errorf("элемент без id в файле %s", path)
		}
		Register(m)
	}
	for _, r := range file.Reactions {
		if !IsValidID(r.OutputMaterial1) || !IsValidID(r.OutputMaterial2) {
			return fmt.Errorf("реакция %s+%s ссылается на незарегистрированный материал",
				r.InputMaterial1, r.InputMaterial2)
		}
		RegisterReaction(r)
	}

	return nil
}
