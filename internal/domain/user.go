package domain

// User is the identity established by a verified Firebase ID token. It lives
// for the duration of a request and is never persisted here; the auth
// provider owns the account.
type User struct {
	UID   string
	Email string
	Name  string
}
