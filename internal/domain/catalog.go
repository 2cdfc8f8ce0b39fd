package domain

// Ingredient is a catalog entry: a measurable thing recipes are made of.
// Shared reference data, never owned by any recipe.
type Ingredient struct {
	ID              int64  `json:"id" gorm:"primaryKey"`
	Name            string `json:"name" gorm:"size:200;not null;index"`
	MeasurementUnit string `json:"measurement_unit" gorm:"size:200;not null"`
}

func (Ingredient) TableName() string { return "ingredients" }

// Tag is a label attachable to recipes. Name, color and slug are each unique.
type Tag struct {
	ID    int64  `json:"id" gorm:"primaryKey"`
	Name  string `json:"name" gorm:"size:200;not null;uniqueIndex"`
	Color string `json:"color" gorm:"size:7;not null;uniqueIndex"`
	Slug  string `json:"slug" gorm:"size:200;not null;uniqueIndex"`
}

func (Tag) TableName() string { return "tags" }
