package orders

import (
	"context"
	"time"
)

const (
	StatusPending   = "pending"
	StatusShipping  = "shipping"
	StatusDelivered = "delivered"
	StatusReturned  = "returned"
	StatusCancelled = "cancelled"
)

// Statuses lists every status an order may hold.
var Statuses = []string{StatusPending, StatusShipping, StatusDelivered, StatusReturned, StatusCancelled}

// SalesStatuses are the statuses counted as sales.
var SalesStatuses = []string{StatusPending, StatusShipping, StatusDelivered}

func IsValidStatus(s string) bool {
	for _, v := range Statuses {
		if s == v {
			return true
		}
	}
	return false
}

// Order is a row of the orders table.
type Order struct {
	ID                int64     `json:"id"`
	UserID            int64     `json:"userId"`
	DeliveryAddressID *int64    `json:"deliveryAddressId"`
	PaymentIntentID   *string   `json:"paymentIntentId"`
	Amount            float64   `json:"amount"`
	Currency          string    `json:"currency"`
	Status            string    `json:"status"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

type Buyer struct {
	UserID    int64  `json:"userId"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
}

// FeedItem is an order line joined with its product. Title and ImageURL are
// null when the product no longer exists.
type FeedItem struct {
	Title    *string `json:"title"`
	ImageURL *string `json:"imageURL"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

// FeedOrder is the admin list view of an order.
type FeedOrder struct {
	OrderID    int64      `json:"orderId"`
	Status     string     `json:"status"`
	Items      []FeedItem `json:"items"`
	User       Buyer      `json:"user"`
	CreatedAt  time.Time  `json:"createdAt"`
	ItemsCount int        `json:"itemsCount"`
	Amount     float64    `json:"amount"`
}

type DeliveryAddress struct {
	FullName    string `json:"fullName"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
	City        string `json:"city"`
	State       string `json:"state"`
	PostalCode  string `json:"postalCode"`
	Country     string `json:"country"`
	AddressType string `json:"addressType"`
}

type DetailItem struct {
	ProductID   *int64   `json:"productId"`
	Title       *string  `json:"title"`
	ImageURL    *string  `json:"imageURL"`
	Price       *float64 `json:"price"`
	SalePrice   *float64 `json:"salePrice"`
	CargoWeight *float64 `json:"cargoWeight"`
	Quantity    int      `json:"quantity"`
}

// OrderDetail is the full admin view of one order.
type OrderDetail struct {
	OrderID         int64            `json:"orderId"`
	CreatedAt       time.Time        `json:"createdAt"`
	User            Buyer            `json:"user"`
	DeliveryAddress *DeliveryAddress `json:"deliveryAddress"`
	PaymentIntentID *string          `json:"paymentIntentId"`
	Amount          float64          `json:"amount"`
	Currency        string           `json:"currency"`
	Status          string           `json:"status"`
	Items           []DetailItem     `json:"items"`
}

type Store interface {
	ListFeed(ctx context.Context, status string, limit, offset int) ([]*FeedOrder, int, error)
	GetFeedOrder(ctx context.Context, id int64) (*FeedOrder, error)
	GetDetail(ctx context.Context, id int64) (*OrderDetail, error)
	UpdateStatus(ctx context.Context, id int64, status string) (*Order, error)
}
