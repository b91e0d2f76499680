package domain

// User is a registered account as seen by the login service. The user
// directory owns the persistent representation; a User returned from a
// lookup carries no password material.
type User struct {
	Email             Email
	Password          Password
	RequiresTwoFactor bool
}
