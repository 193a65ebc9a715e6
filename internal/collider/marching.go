package collider

import (
	"github.com/annel0/pixel-world/internal/vec"
)

func isSet(x, y int, matrix []int32, width, height int) bool {
	if x < 0 || x > width-1 || y < 0 || y > height-1 {
		return false
	}
	return matrix[y*width+x] != 0
}

// classifyCell строит маску 2x2 окна с правым нижним углом в (x, y).
// Биты: 1=(-1,-1), 2=(0,-1), 4=(-1,0), 8=(0,0).
func classifyCell(x, y int, matrix []int32, width, height int) uint8 {
	var mask uint8

	if isSet(x-1, y-1, matrix, width, height) {
		mask |= 1
	}
	if isSet(x, y-1, matrix, width, height) {
		mask |= 2
	}
	if isSet(x-1, y, matrix, width, height) {
		mask |= 4
	}
	if isSet(x, y, matrix, width, height) {
		mask |= 8
	}

	return mask
}

// MarchingSquares обходит границы каждого размеченного объекта и
// возвращает контуры в координатах ячеек: objects[label-1] — список
// замкнутых границ объекта. Седловые маски 6 и 9 разрешаются по
// направлению предыдущего шага.
func MarchingSquares(objectCount int, matrix []int32, width, height int) [][][]vec.Vec2Float {
	visited := make([]bool, width*height)
	objects := make([][][]vec.Vec2Float, objectCount)

	for x := 0; x < width; x++ {
		for y := 0; y < height; y++ {
			index := y*width + x
			mask := classifyCell(x, y, matrix, width, height)

			if matrix[index] <= 0 || visited[index] || mask == 0 || mask == 15 {
				continue
			}

			objectLabel := int(matrix[index])
			var vertices []vec.Vec2Float

			currentX, currentY := x, y
			dx, dy := 0, 0

			for {
				if currentX >= 0 && currentX < width && currentY >= 0 && currentY < height {
					visited[currentY*width+currentX] = true
				}

				switch classifyCell(currentX, currentY, matrix, width, height) {
				case 1, 5, 13:
					dx, dy = 0, -1
				case 2, 3, 7:
					dx, dy = 1, 0
				case 8, 10, 11:
					dx, dy = 0, 1
				case 4, 12, 14:
					dx, dy = -1, 0
				case 6:
					if dx == 0 && dy == -1 {
						dx, dy = 1, 0
					} else {
						dx, dy = -1, 0
					}
				case 9:
					if dx == 1 && dy == 0 {
						dx, dy = 0, 1
					} else {
						dx, dy = 0, -1
					}
				}

				if x == currentX+dx && y == currentY+dy {
					break
				}

				vertices = append(vertices, vec.Vec2Float{
					X: float64(currentX) + float64(dx)/2.0,
					Y: float64(currentY) + float64(dy)/2.0,
				})

				currentX += dx
				currentY += dy
			}

			objects[objectLabel-1] = append(objects[objectLabel-1], vertices)
		}
	}

	return objects
}
