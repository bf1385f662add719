package usecase

import "time"

const (
	SubjectAccountActivated = "account.activated"
	SubjectProductCreated   = "product.created"
	SubjectProductDeleted   = "product.deleted"
)

type AccountActivatedEvent struct {
	AccountID   string    `json:"account_id"`
	Kind        string    `json:"kind"`
	Email       string    `json:"email"`
	ActivatedAt time.Time `json:"activated_at"`
}

type ProductEvent struct {
	ProductID  string    `json:"product_id"`
	ShopID     string    `json:"shop_id"`
	OccurredAt time.Time `json:"occurred_at"`
}
