package models

import "github.com/google/uuid"

// NutritionFacts is the per-serving nutrition label of a product.
type NutritionFacts struct {
	Calories int    `json:"calories" bson:"calories"`
	Carbs    string `json:"carbs" bson:"carbs"`
	Fiber    string `json:"fiber" bson:"fiber"`
	Sugar    string `json:"sugar" bson:"sugar"`
	Protein  string `json:"protein" bson:"protein"`
	Fat      string `json:"fat" bson:"fat"`
}

// Product is a catalog entry. InStock and StockCount are set independently.
type Product struct {
	BaseModel      `bson:",inline"`
	Name           string         `gorm:"not null" json:"name" bson:"name"`
	Price          float64        `json:"price" bson:"price"`
	OriginalPrice  *float64       `json:"original_price" bson:"original_price"`
	Image          string         `json:"image" bson:"image"`
	Images         []string       `gorm:"serializer:json" json:"images" bson:"images"`
	Rating         float64        `json:"rating" bson:"rating"`
	ReviewCount    int            `json:"review_count" bson:"review_count"`
	Category       string         `gorm:"index" json:"category" bson:"category"`
	CategoryID     uuid.UUID      `gorm:"type:uuid;index" json:"category_id" bson:"category_id"`
	Brand          string         `json:"brand" bson:"brand"`
	InStock        bool           `json:"in_stock" bson:"in_stock"`
	StockCount     int            `json:"stock_count" bson:"stock_count"`
	Description    string         `json:"description" bson:"description"`
	Features       []string       `gorm:"serializer:json" json:"features" bson:"features"`
	NutritionFacts NutritionFacts `gorm:"serializer:json" json:"nutrition_facts" bson:"nutrition_facts"`
	Tags           []string       `gorm:"serializer:json" json:"tags" bson:"tags"`
	Weight         string         `json:"weight" bson:"weight"`
	Origin         string         `json:"origin" bson:"origin"`
	SKU            string         `gorm:"index" json:"sku" bson:"sku"`
	IsActive       bool           `gorm:"index" json:"is_active" bson:"is_active"`
}

// ProductInput is the payload for creating a product.
type ProductInput struct {
	Name           string         `json:"name"`
	Price          float64        `json:"price"`
	OriginalPrice  *float64       `json:"original_price"`
	Image          string         `json:"image"`
	Images         []string       `json:"images"`
	Category       string         `json:"category"`
	CategoryID     string         `json:"category_id"`
	Brand          string         `json:"brand"`
	InStock        *bool          `json:"in_stock"`
	StockCount     int            `json:"stock_count"`
	Description    string         `json:"description"`
	Features       []string       `json:"features"`
	NutritionFacts NutritionFacts `json:"nutrition_facts"`
	Tags           []string       `json:"tags"`
	Weight         string         `json:"weight"`
	Origin         string         `json:"origin"`
	SKU            string         `json:"sku"`
}

// ProductUpdate is a partial product update; nil fields are left untouched.
type ProductUpdate struct {
	Name           *string         `json:"name"`
	Price          *float64        `json:"price"`
	OriginalPrice  *float64        `json:"original_price"`
	Image          *string         `json:"image"`
	Images         *[]string       `json:"images"`
	Category       *string         `json:"category"`
	CategoryID     *uuid.UUID      `json:"category_id"`
	Brand          *string         `json:"brand"`
	InStock        *bool           `json:"in_stock"`
	StockCount     *int            `json:"stock_count"`
	Description    *string         `json:"description"`
	Features       *[]string       `json:"features"`
	NutritionFacts *NutritionFacts `json:"nutrition_facts"`
	Tags           *[]string       `json:"tags"`
	Weight         *string         `json:"weight"`
	Origin         *string         `json:"origin"`
	SKU            *string         `json:"sku"`
}

// Apply merges the set fields of upd into p and reports whether anything changed.
func (upd ProductUpdate) Apply(p *Product) bool {
	changed := false
	changed = setIfPresent(&p.Name, upd.Name) || changed
	changed = setIfPresent(&p.Price, upd.Price) || changed
	changed = setOptionalIfPresent(&p.OriginalPrice, upd.OriginalPrice) || changed
	changed = setIfPresent(&p.Image, upd.Image) || changed
	changed = setSliceIfPresent(&p.Images, upd.Images) || changed
	changed = setIfPresent(&p.Category, upd.Category) || changed
	changed = setIfPresent(&p.CategoryID, upd.CategoryID) || changed
	changed = setIfPresent(&p.Brand, upd.Brand) || changed
	changed = setIfPresent(&p.InStock, upd.InStock) || changed
	changed = setIfPresent(&p.StockCount, upd.StockCount) || changed
	changed = setIfPresent(&p.Description, upd.Description) || changed
	changed = setSliceIfPresent(&p.Features, upd.Features) || changed
	changed = setIfPresent(&p.NutritionFacts, upd.NutritionFacts) || changed
	changed = setSliceIfPresent(&p.Tags, upd.Tags) || changed
	changed = setIfPresent(&p.Weight, upd.Weight) || changed
	changed = setIfPresent(&p.Origin, upd.Origin) || changed
	changed = setIfPresent(&p.SKU, upd.SKU) || changed
	return changed
}
