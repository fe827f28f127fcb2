package mines

import "fmt"

// Point identifies a single cell on a board. X grows rightwards, Y grows
// downwards, 0:0 is the top-left corner. A Point is only meaningful against
// the bounds of a particular board.
type Point struct {
	X int `json:"x" schema:"x,required"`
	Y int `json:"y" schema:"y,required"`
}

func (p Point) String() string {
	return fmt.Sprintf("%d:%d", p.X, p.Y)
}
