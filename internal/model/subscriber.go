// internal/model/subscriber.go
package model

import "time"

type Subscriber struct {
	ID               string     `db:"id" json:"id"`
	Email            string     `db:"email" json:"email"`
	Name             *string    `db:"name" json:"name,omitempty"`
	Subscribed       bool       `db:"subscribed" json:"subscribed"`
	SubscribedAt     time.Time  `db:"subscribed_at" json:"subscribed_at"`
	UnsubscribedAt   *time.Time `db:"unsubscribed_at" json:"unsubscribed_at,omitempty"`
	UnsubscribeToken string     `db:"unsubscribe_token" json:"-"`
}

// SubscriberStats aggregates directory counts for the admin dashboard.
type SubscriberStats struct {
	Total        int           `json:"total"`
	ThisMonth    int           `json:"thisMonth"`
	LastMonth    int           `json:"lastMonth"`
	GrowthRate   float64       `json:"growthRate"`
	RecentGrowth []DailyGrowth `json:"recentGrowth"`
}

type DailyGrowth struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}
