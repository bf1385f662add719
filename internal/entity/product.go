package entity

import (
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
)

// ShopSnapshot is the copy of the owning seller stored on each product.
type ShopSnapshot struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Avatar  string `json:"avatar"`
	Address string `json:"address,omitempty"`
}

type Product struct {
	ID            string       `json:"_id"`
	Name          string       `json:"name"`
	Description   string       `json:"description"`
	Category      string       `json:"category"`
	Tags          string       `json:"tags"`
	OriginalPrice float64      `json:"originalPrice"`
	DiscountPrice float64      `json:"discountPrice"`
	Stock         int          `json:"stock"`
	Images        []string     `json:"images"`
	ShopID        string       `json:"shopId"`
	Shop          ShopSnapshot `json:"shop"`
	SoldOut       int          `json:"sold_out"`
	CreatedAt     time.Time    `json:"createdAt"`
}

// ProductInput is the unvalidated product payload. Numeric fields are
// pointers so that an absent value can be told apart from zero.
type ProductInput struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	Category      string   `json:"category"`
	Tags          string   `json:"tags"`
	OriginalPrice *float64 `json:"originalPrice"`
	DiscountPrice *float64 `json:"discountPrice"`
	Stock         *int     `json:"stock"`
	Images        []string `json:"images"`
	ShopID        string   `json:"shopId"`
}

// Validate reports every missing or malformed field, keyed by its JSON name.
func (p ProductInput) Validate() error {
	return validation.ValidateStruct(&p,
		validation.Field(&p.Name, validation.Required.Error("Please enter your product name!")),
		validation.Field(&p.Description, validation.Required.Error("Please enter your product description!")),
		validation.Field(&p.Category, validation.Required.Error("Please enter your product category!")),
		validation.Field(&p.Tags, validation.Required.Error("Please enter your product tags!")),
		validation.Field(&p.OriginalPrice,
			validation.NotNil.Error("Please enter the original Price!"),
			validation.Min(0.0).Error("must not be negative"),
		),
		validation.Field(&p.DiscountPrice,
			validation.NotNil.Error("Please enter your product price!"),
			validation.Min(0.0).Error("must not be negative"),
		),
		validation.Field(&p.Stock,
			validation.NotNil.Error("Please enter your product stock!"),
			validation.Min(0).Error("must not be negative"),
		),
		validation.Field(&p.ShopID, validation.Required.Error("Shop Id is invalid!")),
	)
}

// NewProduct validates in and builds a product owned by shop. SoldOut starts
// at zero and CreatedAt at now.
func NewProduct(in ProductInput, shop ShopSnapshot, now time.Time) (*Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	images := in.Images
	if images == nil {
		images = []string{}
	}
	return &Product{
		Name:          in.Name,
		Description:   in.Description,
		Category:      in.Category,
		Tags:          in.Tags,
		OriginalPrice: *in.OriginalPrice,
		DiscountPrice: *in.DiscountPrice,
		Stock:         *in.Stock,
		Images:        images,
		ShopID:        in.ShopID,
		Shop:          shop,
		SoldOut:       0,
		CreatedAt:     now,
	}, nil
}
