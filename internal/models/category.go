package models

// Category groups products. ProductCount is a cache refreshed by a recount pass.
type Category struct {
	BaseModel    `bson:",inline"`
	Name         string `gorm:"not null" json:"name" bson:"name"`
	Icon         string `json:"icon" bson:"icon"`
	Color        string `json:"color" bson:"color"`
	Description  string `json:"description" bson:"description"`
	ProductCount int    `json:"product_count" bson:"product_count"`
	IsActive     bool   `gorm:"index" json:"is_active" bson:"is_active"`
}

// CategoryInput is the payload for creating a category.
type CategoryInput struct {
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
	Description string `json:"description"`
}

// CategoryUpdate is a partial category update; nil fields are left untouched.
type CategoryUpdate struct {
	Name        *string `json:"name"`
	Icon        *string `json:"icon"`
	Color       *string `json:"color"`
	Description *string `json:"description"`
}

// Apply merges the set fields of upd into c and reports whether anything changed.
func (upd CategoryUpdate) Apply(c *Category) bool {
	changed := false
	changed = setIfPresent(&c.Name, upd.Name) || changed
	changed = setIfPresent(&c.Icon, upd.Icon) || changed
	changed = setIfPresent(&c.Color, upd.Color) || changed
	changed = setIfPresent(&c.Description, upd.Description) || changed
	return changed
}
