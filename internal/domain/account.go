package domain

// Account is a registered user identity.
// Password is stored and compared as plaintext.
type Account struct {
	ID       int64
	Username string
	Password string
}
