package model

import "time"

type User struct {
	ID        int64
	Name      string
	UserID    string
	CreatedAt time.Time
}
