package request

type PlanetariumDomeRequest struct {
	Name       string `json:"name" validate:"required,min=1,max=63"`
	Rows       int    `json:"rows" validate:"required,gt=0"`
	SeatsInRow int    `json:"seats_in_row" validate:"required,gt=0"`
}

type PlanetariumDomeUpdateRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,min=1,max=63"`
	Rows       *int    `json:"rows,omitempty" validate:"omitempty,gt=0"`
	SeatsInRow *int    `json:"seats_in_row,omitempty" validate:"omitempty,gt=0"`
}
