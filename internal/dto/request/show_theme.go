package request

type ShowThemeRequest struct {
	Name string `json:"name" validate:"required,min=1,max=63"`
}

type ShowThemeUpdateRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=63"`
}
