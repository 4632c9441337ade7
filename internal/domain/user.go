package domain

// User identifies the owner of scenarios. User management lives outside
// this service; only the identity carried by a verified token is needed
// here.
type User struct {
	ID    string
	Email string
}
