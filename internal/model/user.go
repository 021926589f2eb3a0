package model

import "time"

// UserProfile is a user's profile document, keyed by the identity
// provider's uid. Created lazily on the first profile read.
type UserProfile struct {
	UID         string    `json:"uid" bson:"_id"`
	Email       string    `json:"email" bson:"email"`
	DisplayName string    `json:"display_name" bson:"display_name"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}
