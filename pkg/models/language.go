package models

import "time"

// Language represents a studied language whose words form one ordered catalog
type Language struct {
	ID        int64     `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Code      string    `json:"code" db:"code"` // ISO 639-1 code, e.g. "fi"
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
