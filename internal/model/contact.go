package model

import "time"

// RawContact is a contact as submitted, before normalization.
type RawContact struct {
	Name        string `json:"name"`
	Phone       string `json:"phone"`
	CountryCode string `json:"country_code,omitempty"`
}

// Contact is the DB entity persisted in the contacts table. FullNumber is
// unique per client.
type Contact struct {
	ID          string    `db:"id" json:"id"`
	ClientID    int64     `db:"client_id" json:"client_id"`
	Name        string    `db:"name" json:"name"`
	RawPhone    string    `db:"raw_phone" json:"raw_phone"`
	CountryCode string    `db:"country_code" json:"country_code"`
	FullNumber  string    `db:"full_number" json:"full_number"`
	LocalNumber string    `db:"local_number" json:"local_number"`
	Region      string    `db:"region" json:"region,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}
