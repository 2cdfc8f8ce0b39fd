package catalog

type CreateIngredientRequest struct {
	Name            string `json:"name" binding:"required,max=200"`
	MeasurementUnit string `json:"measurement_unit" binding:"required,max=200"`
}

type UpdateIngredientRequest struct {
	Name            *string `json:"name" binding:"omitempty,max=200"`
	MeasurementUnit *string `json:"measurement_unit" binding:"omitempty,max=200"`
}

type CreateTagRequest struct {
	Name  string `json:"name" binding:"required,max=200"`
	Color string `json:"color" binding:"required,hexcolor"`
	Slug  string `json:"slug" binding:"required,max=200" validate:"slug"`
}

type UpdateTagRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=200"`
	Color *string `json:"color" binding:"omitempty,hexcolor"`
	Slug  *string `json:"slug" binding:"omitempty,max=200" validate:"omitempty,slug"`
}
