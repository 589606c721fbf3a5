package models

import (
	"time"
)

// ContactMessage is a submission of the public contact form
type ContactMessage struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name" validate:"required,max=120"`
	Email     string    `json:"email" db:"email" validate:"required,email"`
	Message   string    `json:"message" db:"message" validate:"required,max=5000"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
