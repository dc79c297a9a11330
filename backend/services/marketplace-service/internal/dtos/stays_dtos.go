package dtos

import "time"

type StayProperty struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	Address    string `json:"address"`
	OwnerName  string `json:"owner_name,omitempty"`
	OwnerEmail string `json:"owner_email,omitempty"`
}

// StaySummary is one entry of the public stays collection.
type StaySummary struct {
	ID          string       `json:"id"`
	Slug        string       `json:"slug"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	NightlyRate int          `json:"nightly_rate"`
	CleaningFee int          `json:"cleaning_fee"`
	MaxGuests   int          `json:"max_guests"`
	Currency    string       `json:"currency"`
	PublishedAt *time.Time   `json:"published_at"`
	HeroImage   *string      `json:"hero_image"`
	Property    StayProperty `json:"property"`
}

// StayDetail is a single published stay with every photo.
type StayDetail struct {
	ID          string       `json:"id"`
	Slug        string       `json:"slug"`
	Title       string       `json:"title"`
	Description *string      `json:"description"`
	NightlyRate int          `json:"nightly_rate"`
	CleaningFee int          `json:"cleaning_fee"`
	MaxGuests   int          `json:"max_guests"`
	Currency    string       `json:"currency"`
	PublishedAt *time.Time   `json:"published_at"`
	Photos      []string     `json:"photos"`
	Property    StayProperty `json:"property"`
}
