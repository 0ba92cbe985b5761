package models

// Catalog is the loaded result: the raw decoded table plus the product
// view over it.
type Catalog struct {
	// Table is the decoded sheet, unfiltered.
	Table Table `json:"table"`
	// Products are the catalog entries, filtered by visibility unless the
	// caller asked for hidden rows too.
	Products []Product `json:"products"`
}
