package material

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Kind классифицирует физическое поведение пикселя
type Kind uint8

const (
	Air Kind = iota
	Static
	Powder
	Liquid
	Gas
	Rigidbody
	Disturbed
)

// String возвращает строковое представление типа физики
func (k Kind) String() string {
	switch k {
	case Air:
		return "Air"
	case Static:
		return "Static"
	case Powder:
		return "Powder"
	case Liquid:
		return "Liquid"
	case Gas:
		return "Gas"
	case Rigidbody:
		return "Rigidbody"
	case Disturbed:
		return "Disturbed"
	default:
		return "Unknown"
	}
}

// UnmarshalYAML читает тип физики по строковому имени
func (k *Kind) UnmarshalYAML(value *yaml.Node) error {
	var name string
	if err := value.Decode(&name); err != nil {
		return err
	}

	switch strings.ToLower(name) {
	case "air":
		*k = Air
	case "static":
		*k = Static
	case "powder":
		*k = Powder
	case "liquid":
		*k = Liquid
	case "gas":
		*k = Gas
	default:
		return fmt.Errorf("неизвестный тип физики: %q", name)
	}
	return nil
}

// Physics описывает поведение пикселя вместе с параметрами типа.
// Параметры жидкости и газа имеют смысл только при соответствующем Kind.
// Inner хранит исходное поведение для Disturbed.
type Physics struct {
	Kind Kind `yaml:"kind"`

	// Параметры жидкости
	FlowRate uint8 `yaml:"flow_rate,omitempty"`
	Density  uint8 `yaml:"density,omitempty"`

	// Параметры газа: -1 означает "не рассеивается"
	Dissipate int16 `yaml:"dissipate,omitempty"`

	Inner *Physics `yaml:"-"`
}

// IsAir сообщает, ведет ли себя пиксель как пустота
func (p Physics) IsAir() bool {
	return p.Kind == Air
}

// Disturb оборачивает поведение в Disturbed, сохраняя исходное
func (p Physics) Disturb() Physics {
	inner := p
	return Physics{Kind: Disturbed, Inner: &inner}
}

// Settle возвращает исходное поведение из-под Disturbed
func (p Physics) Settle() Physics {
	if p.Kind == Disturbed && p.Inner != nil {
		return *p.Inner
	}
	return p
}

// FireParameters описывает горючесть материала
type FireParameters struct {
	FireTemperature     int16 `yaml:"fire_temperature"`
	IgnitionTemperature int16 `yaml:"ignition_temperature"`
	FireHP              int16 `yaml:"fire_hp"`
}

// Reaction описывает контактную реакцию двух материалов
type Reaction struct {
	Probability     float32 `yaml:"probability"`
	InputMaterial1  string  `yaml:"input_material_1"`
	InputMaterial2  string  `yaml:"input_material_2"`
	OutputMaterial1 string  `yaml:"output_material_1"`
	OutputMaterial2 string  `yaml:"output_material_2"`
}

// Material описывает элемент симуляции
type Material struct {
	ID          string          `yaml:"id"`
	UIName      string          `yaml:"ui_name"`
	Physics     Physics         `yaml:"physics"`
	Color       [4]uint8        `yaml:"color"`
	ColorOffset uint8           `yaml:"color_offset"`
	Fire        *FireParameters `yaml:"fire,omitempty"`
	Conductive  bool            `yaml:"conductive,omitempty"`
}

// AirID идентификатор пустого материала
const AirID = "air"

// BarrierID идентификатор несдвигаемой границы загруженного мира
const BarrierID = "barrier"

// Default возвращает материал пустоты
func Default() Material {
	return Material{
		ID:      AirID,
		UIName:  "Air",
		Physics: Physics{Kind: Air},
	}
}
