package entity

import "time"

type User struct {
	ID            int64
	WalletAddress string
	CreatedAt     time.Time
	LastLogin     time.Time
}
