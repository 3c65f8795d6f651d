package dto

// IssueTokenRequest body de POST /jwt.
type IssueTokenRequest struct {
	Email string `json:"email"`
}

// IssueTokenResponse respuesta de POST /jwt.
type IssueTokenResponse struct {
	Token string `json:"token"`
}
