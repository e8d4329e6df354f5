package request

type ListDancersRequest struct {
	PaginatedRequest
	Search string `json:"search" validate:"max=100"`
}

type CreateDancerRequest struct {
	StageName   string  `json:"stageName" validate:"required,max=100"`
	FirstName   *string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	LastName    *string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Phone       *string `json:"phone,omitempty" validate:"omitempty,max=20"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	DateOfBirth *string `json:"dateOfBirth,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Notes       *string `json:"notes,omitempty" validate:"omitempty,max=1000"`
}
