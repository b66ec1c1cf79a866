package domain

import "time"

// Client represents a registered rental client.
type Client struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	Document  string
	CreatedAt time.Time
}
