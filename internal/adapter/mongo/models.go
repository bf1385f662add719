package mongo

import (
	"fmt"
	"time"

	"github.com/EhteshamRajpot/shop-o-backend/internal/entity"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type accountDocument struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	Name        string             `bson:"name"`
	Email       string             `bson:"email"`
	Password    string             `bson:"password,omitempty"`
	Avatar      string             `bson:"avatar"`
	Role        string             `bson:"role"`
	Address     string             `bson:"address,omitempty"`
	PhoneNumber string             `bson:"phoneNumber,omitempty"`
	ZipCode     string             `bson:"zipCode,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt"`
}

type shopDocument struct {
	ID      string `bson:"_id"`
	Name    string `bson:"name"`
	Email   string `bson:"email"`
	Avatar  string `bson:"avatar"`
	Address string `bson:"address,omitempty"`
}

type productDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	Name          string             `bson:"name"`
	Description   string             `bson:"description"`
	Category      string             `bson:"category"`
	Tags          string             `bson:"tags"`
	OriginalPrice float64            `bson:"originalPrice"`
	DiscountPrice float64            `bson:"discountPrice"`
	Stock         int                `bson:"stock"`
	Images        []string           `bson:"images"`
	ShopID        string             `bson:"shopId"`
	Shop          shopDocument       `bson:"shop"`
	SoldOut       int                `bson:"sold_out"`
	CreatedAt     time.Time          `bson:"createdAt"`
}

func toAccountDocument(a *entity.Account) (*accountDocument, error) {
	doc := &accountDocument{
		Name:        a.Name,
		Email:       a.Email,
		Password:    a.Password,
		Avatar:      a.Avatar,
		Role:        a.Role,
		Address:     a.Address,
		PhoneNumber: a.PhoneNumber,
		ZipCode:     a.ZipCode,
		CreatedAt:   a.CreatedAt,
	}
	if a.ID != "" {
		id, err := primitive.ObjectIDFromHex(a.ID)
		if err != nil {
			return nil, fmt.Errorf("invalid account id %q: %w", a.ID, err)
		}
		doc.ID = id
	}
	return doc, nil
}

func (d *accountDocument) toEntity(kind entity.Kind) *entity.Account {
	return &entity.Account{
		ID:          d.ID.Hex(),
		Kind:        kind,
		Name:        d.Name,
		Email:       d.Email,
		Password:    d.Password,
		Avatar:      d.Avatar,
		Role:        d.Role,
		Address:     d.Address,
		PhoneNumber: d.PhoneNumber,
		ZipCode:     d.ZipCode,
		CreatedAt:   d.CreatedAt,
	}
}

func toProductDocument(p *entity.Product) *productDocument {
	images := p.Images
	if images == nil {
		images = []string{}
	}
	return &productDocument{
		Name:          p.Name,
		Description:   p.Description,
		Category:      p.Category,
		Tags:          p.Tags,
		OriginalPrice: p.OriginalPrice,
		DiscountPrice: p.DiscountPrice,
		Stock:         p.Stock,
		Images:        images,
		ShopID:        p.ShopID,
		Shop: shopDocument{
			ID:      p.Shop.ID,
			Name:    p.Shop.Name,
			Email:   p.Shop.Email,
			Avatar:  p.Shop.Avatar,
			Address: p.Shop.Address,
		},
		SoldOut:   p.SoldOut,
		CreatedAt: p.CreatedAt,
	}
}

func (d *productDocument) toEntity() entity.Product {
	images := d.Images
	if images == nil {
		images = []string{}
	}
	return entity.Product{
		ID:            d.ID.Hex(),
		Name:          d.Name,
		Description:   d.Description,
		Category:      d.Category,
		Tags:          d.Tags,
		OriginalPrice: d.OriginalPrice,
		DiscountPrice: d.DiscountPrice,
		Stock:         d.Stock,
		Images:        images,
		ShopID:        d.ShopID,
		Shop: entity.ShopSnapshot{
			ID:      d.Shop.ID,
			Name:    d.Shop.Name,
			Email:   d.Shop.Email,
			Avatar:  d.Shop.Avatar,
			Address: d.Shop.Address,
		},
		SoldOut:   d.SoldOut,
		CreatedAt: d.CreatedAt,
	}
}
