package admindashboard

import (
	"context"
	"time"
)

type Overview struct {
	TotalUsers           int64               `json:"totalUsers"`
	TotalSubscribers     int64               `json:"totalSubscribers"`
	TotalSalesAmount     float64             `json:"totalSalesAmount"`
	SalesInLast24h       float64             `json:"salesInLast24h"`
	UsersInLast24h       int64               `json:"usersInLast24h"`
	SubscribersInLast24h int64               `json:"subscribersInLast24h"`
	LatestReviews        []ReviewSummary     `json:"latestReviews"`
	RecentSubscribers    []SubscriberSummary `json:"recentSubscribers"`
}

type ReviewSummary struct {
	ProductName   *string   `json:"productName"`
	UserFirstName *string   `json:"userFirstName"`
	Rating        int       `json:"rating"`
	Comment       string    `json:"comment"`
	CreatedAt     time.Time `json:"createdAt"`
}

type SubscriberSummary struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"userId"`
	Status    string    `json:"status"`
	IsActive  bool      `json:"isActive"`
	CreatedAt time.Time `json:"createdAt"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
}

type Store interface {
	GetOverview(ctx context.Context) (*Overview, error)
}
