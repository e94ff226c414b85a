package models

// Auth is the session artifact returned after a successful addUser or login:
// a signed token plus a snapshot of the user's public data. It is never
// persisted.
type Auth struct {
	Token string `json:"token"`
	User  *User  `json:"user"`
}
