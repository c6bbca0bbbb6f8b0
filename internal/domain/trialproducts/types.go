package trialproducts

import "time"

type TrialProduct struct {
	ID             int64     `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	TrialPeriod    int       `json:"trialPeriod"`
	AvailableCount int       `json:"availableCount"`
	Category       string    `json:"category"`
	Tags           []string  `json:"tags"`
	ImageURLs      []string  `json:"imageURLs"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
