package dto

// RegisterRequest is the DTO for creating a new user account.
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks credential shape before any storage access.
func (r *RegisterRequest) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if len(r.Username) < 6 || len(r.Username) > 128 {
		errs["username"] = "must be between 6 and 128 characters"
	}
	if len(r.Password) < 6 || len(r.Password) > 128 {
		errs["password"] = "must be between 6 and 128 characters"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// LoginRequest is the DTO for exchanging credentials for a token.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate checks credential shape before any storage access.
func (r *LoginRequest) Validate() ValidationErrors {
	reg := RegisterRequest{Username: r.Username, Password: r.Password}
	return reg.Validate()
}

// TokenResponse carries the issued auth token.
type TokenResponse struct {
	AuthToken string `json:"auth_token"`
}
