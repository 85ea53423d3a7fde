package entity

import "time"

// Category representa una familia de equipos (split, chiller, fan coil...).
type Category struct {
	ID          string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
