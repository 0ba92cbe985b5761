package models

// Conventional column names in the published sheet. The decoder itself is
// column-name-agnostic; these are only conventions the catalog layer reads.
const (
	ColID          = "id"
	ColCategory    = "category"
	ColPhotoURL    = "photo_url"
	ColDescription = "description"
	ColPrice18mm   = "price_18mm"
	ColPrice12mm   = "price_12mm"
	ColPrice8mm    = "price_8mm"
	ColPrice6mm    = "price_6mm"
	ColStock       = "stock"
	ColVisible     = "visible"
)

// Product is one catalog entry lifted from a Record.
type Product struct {
	ID          string `json:"id"`
	Category    string `json:"category"`
	PhotoURL    string `json:"photo_url,omitempty"`
	Description string `json:"description,omitempty"`
	Price18mm   string `json:"price_18mm,omitempty"`
	Price12mm   string `json:"price_12mm,omitempty"`
	Price8mm    string `json:"price_8mm,omitempty"`
	Price6mm    string `json:"price_6mm,omitempty"`
	Stock       string `json:"stock,omitempty"`
	// Visibility is the raw value of the visible column.
	Visibility string `json:"visible,omitempty"`
}

// ProductFromRecord lifts a decoded record into a Product using the
// conventional column names. Absent columns yield empty fields.
func ProductFromRecord(r Record) Product {
	return Product{
		ID:          r.Get(ColID),
		Category:    r.Get(ColCategory),
		PhotoURL:    r.Get(ColPhotoURL),
		Description: r.Get(ColDescription),
		Price18mm:   r.Get(ColPrice18mm),
		Price12mm:   r.Get(ColPrice12mm),
		Price8mm:    r.Get(ColPrice8mm),
		Price6mm:    r.Get(ColPrice6mm),
		Stock:       r.Get(ColStock),
		Visibility:  r.Get(ColVisible),
	}
}

// Visible reports whether the product should be shown: an empty visible
// cell, "true", or "1" shows the row; any other value hides it.
func (p Product) Visible() bool {
	switch p.Visibility {
	case "", "true", "1":
		return true
	}
	return false
}
