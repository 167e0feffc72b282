package notifications

import "time"

const (
	TypeInfo    = "info"
	TypeWarning = "warning"
	TypeSuccess = "success"
	TypeError   = "error"
)

type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	IsRead    bool      `json:"is_read"`
	Link      string    `json:"link,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
