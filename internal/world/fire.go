package world

// UpdateFire — тепловой проход. Горящий пиксель разогревает соседей по
// кресту к температуре пламени, негорящий горючий пиксель вспыхивает при
// достижении температуры воспламенения, иначе остывает.
func UpdateFire(api *ChunkAPI) {
	pixel := api.Get(0, 0)

	if pixel.OnFire {
		api.KeepAlive(0, 0)

		if fp := pixel.Fire; fp != nil {
			for _, offset := range [4][2]int{{1, 0}, {-1, 0}, {0, 1}, {0, -1}} {
				neighbour := api.Get(offset[0], offset[1])

				if neighbour.Temperature < fp.FireTemperature {
					diff := fp.FireTemperature - neighbour.Temperature
					neighbour.Temperature += int16(api.RandFloat() * float32(diff) / 8.0)
				}

				api.Set(offset[0], offset[1], neighbour)
			}

			if fp.FireHP <= 0 {
				api.Update(AirPixel())
				return
			} else if api.RandFloat() > 0.75 {
				fp.FireHP--
			}
		}
	} else if fp := pixel.Fire; fp != nil {
		if pixel.Temperature >= fp.IgnitionTemperature {
			pixel.OnFire = true
		} else {
			pixel.Temperature -= (30 - pixel.Temperature) / 16
		}
	}

	api.Update(pixel)
}
