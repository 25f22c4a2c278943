package user

// Principal is the caller identified by a verified access token.
type Principal struct {
	Subject string
	Email   string
	Role    string
}
