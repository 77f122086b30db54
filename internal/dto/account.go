package dto

// AccountRequest is the JSON body for POST /register and POST /login.
type AccountRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AccountResponse mirrors the stored account, password included.
type AccountResponse struct {
	ID       int64  `json:"account_id"`
	Username string `json:"username"`
	Password string `json:"password"`
}
