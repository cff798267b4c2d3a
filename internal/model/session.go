package model

import "time"

// AdminSession is the payload stored behind an admin session token.
type AdminSession struct {
	Subject   string    `json:"subject"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}
