package models

type RegisterResponse struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	Username   string `json:"username"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	SuperAdmin bool   `json:"super_admin"`
	Token      string `json:"token"`
}
