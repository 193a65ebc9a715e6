// Package collider извлекает коллизионную геометрию из статических
// областей сетки: разметка связных компонент, обход контура marching
// squares, упрощение Дугласа-Пекера и триангуляция.
package collider

// labelCell рекурсивно помечает 4-связную компоненту в матрице.
// label должен быть больше нуля; condition решает, принадлежит ли
// индекс объекту.
func labelCell(x, y, label int, matrix []int32, width, height int, condition func(int) bool) {
	if x < 0 || x > width-1 || y < 0 || y > height-1 {
		return
	}

	index := y*width + x
	if matrix[index] != 0 || !condition(index) {
		return
	}

	matrix[index] = int32(label)

	labelCell(x+1, y, label, matrix, width, height, condition)
	labelCell(x-1, y, label, matrix, width, height, condition)
	labelCell(x, y+1, label, matrix, width, height, condition)
	labelCell(x, y-1, label, matrix, width, height, condition)
}

// LabelComponents размечает связные компоненты и возвращает матрицу
// меток вместе с числом найденных объектов. Метки начинаются с 1.
func LabelComponents(width, height int, condition func(int) bool) ([]int32, int) {
	matrix := make([]int32, width*height)
	count := 0

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			index := y*width + x
			if matrix[index] == 0 && condition(index) {
				count++
				labelCell(x, y, count, matrix, width, height, condition)
			}
		}
	}

	return matrix, count
}
