package products

import "time"

type Product struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	OldPrice    *float64  `json:"oldPrice"`
	SalePrice   *float64  `json:"salePrice"`
	StockCount  int       `json:"stockCount"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	ImageURLs   []string  `json:"imageURLs"`
	CargoWeight float64   `json:"cargoWeight"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ApplySalePrice sets the listed price from the regular and sale price.
// With a sale, the sale becomes the price and the regular price is kept as OldPrice.
func (p *Product) ApplySalePrice(regular float64, sale *float64) {
	if sale == nil {
		p.Price = regular
		p.OldPrice = nil
		p.SalePrice = nil
		return
	}
	old, s := regular, *sale
	p.Price = s
	p.OldPrice = &old
	p.SalePrice = &s
}
