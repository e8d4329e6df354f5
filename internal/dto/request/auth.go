package request

type RegisterRequest struct {
	FullName        string  `json:"fullName" validate:"required,min=2,max=100"`
	ClubName        string  `json:"clubName" validate:"required,min=2,max=100"`
	Email           string  `json:"email" validate:"required,email"`
	Phone           *string `json:"phone,omitempty" validate:"omitempty,min=7,max=20"`
	Password        string  `json:"password" validate:"required,min=6"`
	ConfirmPassword string  `json:"confirmPassword" validate:"required,eqfield=Password"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ClientInfo is what the transport knows about the caller.
type ClientInfo struct {
	UserAgent string
	IPAddress string
}
