package client

import (
	"encoding/json"

	"bookhaven/internal/cart"
	"bookhaven/internal/domain"
)

// Session is the locally cached credential: the opaque bearer token plus
// the profile it was issued for, persisted through the same Storage
// abstraction the cart uses.
type Session struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user,omitempty"`
}

func LoadSession(store cart.Storage) Session {
	var s Session
	if data, err := store.Load(); err == nil && len(data) > 0 {
		_ = json.Unmarshal(data, &s)
	}
	return s
}

func SaveSession(store cart.Storage, s Session) error {
	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	return store.Save(data)
}
