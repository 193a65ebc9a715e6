package world

import (
	"github.com/annel0/pixel-world/internal/material"
)

// Pixel представляет одну ячейку сетки. Значимый тип, копируется свободно
// и не имеет идентичности.
type Pixel struct {
	MaterialID string
	Physics    material.Physics

	Color [4]uint8
	Fire  *material.FireParameters

	// Ra и Rb — свободные байты смещения, правила используют их
	// для памяти направления и счетчиков повторов
	Ra uint8
	Rb uint8

	// UpdatedAt — метка тика, на котором пиксель обновлялся последний раз
	UpdatedAt uint8

	Temperature int16
	OnFire      bool
	Conductive  bool
}

// AirPixel возвращает каноническую пустую ячейку.
// Все пиксели воздуха обязаны быть равны этому значению.
func AirPixel() Pixel {
	return Pixel{MaterialID: material.AirID}
}

// wallPixel — сторожевое значение для ячеек за границей загруженного мира.
// Ведет себя как несдвигаемый Static, чтобы ничего не утекало за край.
var wallPixel = Pixel{
	MaterialID: material.BarrierID,
	Physics:    material.Physics{Kind: material.Static},
}

// Wall возвращает сторожевой пиксель границы мира
func Wall() Pixel {
	return wallPixel
}

// NewPixel создает пиксель из материала со случайным смещением цвета
func NewPixel(m material.Material, rng Rand) Pixel {
	var offset uint8
	if m.ColorOffset > 0 && rng != nil {
		offset = uint8(rng.Intn(int(m.ColorOffset) + 1))
	}

	var fire *material.FireParameters
	if m.Fire != nil {
		f := *m.Fire
		fire = &f
	}

	return Pixel{
		MaterialID: m.ID,
		Physics:    m.Physics,
		Color: [4]uint8{
			saturatingAdd(m.Color[0], offset),
			saturatingAdd(m.Color[1], offset),
			saturatingAdd(m.Color[2], offset),
			m.Color[3],
		},
		Fire:       fire,
		Conductive: m.Conductive,
	}
}

func saturatingAdd(a, b uint8) uint8 {
	if sum := uint16(a) + uint16(b); sum > 255 {
		return 255
	} else {
		return uint8(sum)
	}
}

// IsEmpty сообщает, является ли ячейка воздухом
func (p Pixel) IsEmpty() bool {
	return p.Physics.Kind == material.Air
}

// WithClock возвращает копию с меткой тика
func (p Pixel) WithClock(clock uint8) Pixel {
	p.UpdatedAt = clock
	return p
}

// Material возвращает материал пикселя из регистра
func (p Pixel) Material() material.Material {
	return material.MustGet(p.MaterialID)
}
