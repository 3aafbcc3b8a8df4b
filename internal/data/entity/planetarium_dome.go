package entity

type PlanetariumDome struct {
	Base
	Name       string `db:"name"`
	Rows       int    `db:"rows"`
	SeatsInRow int    `db:"seats_in_row"`
}

func (d PlanetariumDome) Capacity() int {
	return d.Rows * d.SeatsInRow
}

// Contains reports whether (row, seat) lies inside the dome grid, 1-based.
func (d PlanetariumDome) Contains(row, seat int) bool {
	return row >= 1 && row <= d.Rows && seat >= 1 && seat <= d.SeatsInRow
}
