package life

// Step applies the Life rule to every cell of g simultaneously and returns
// the next generation together with its population. g is not modified.
//
// A live cell with two or three live neighbors survives, a dead cell with
// exactly three is born, and every other cell is dead.
func Step(g *Grid) (*Grid, int) {
	next := newGrid(g.width, g.height)
	population := 0
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			i := y*g.width + x
			n := g.Neighbors(x, y)
			if n == 3 || (g.cells[i] && n == 2) {
				next.cells[i] = true
				population++
			}
		}
	}
	return next, population
}
