package model

// LoginParams are the inputs of a password login.
type LoginParams struct {
	Email    string
	Password string
	Caller   Caller
}

// RegisterParams are the inputs of a self-service registration.
type RegisterParams struct {
	Email    string
	Password string
	// BypassLogin creates the account without counting it as a login.
	BypassLogin bool
	Caller      Caller
}
