package customers

import "context"

// Customer is a user with order, review and subscription rollups.
type Customer struct {
	UserID             int64   `json:"userId"`
	Email              string  `json:"email"`
	FullName           string  `json:"fullName"`
	TotalOrderCount    int     `json:"totalOrderCount"`
	TotalReviewCount   int     `json:"totalReviewCount"`
	SubscriptionStatus *string `json:"subscriptionStatus"`
}

type Store interface {
	List(ctx context.Context, limit, offset int) ([]*Customer, int, error)
	GetByID(ctx context.Context, id int64) (*Customer, error)
}
