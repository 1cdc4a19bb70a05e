package model

import "time"

// Notification is an ambient server-authored message. Clients never create
// these; the only mutation is marking them read.
type Notification struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
	IsRead    bool      `json:"is_read"`
}
