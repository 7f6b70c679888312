package model

import "time"

// Customer is a storefront client record.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Email     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CustomerInput carries customer fields from a request.
type CustomerInput struct {
	Name  string
	Phone string
	Email string
}
