package response

import (
	"time"

	"clubops/internal/data/entity"
)

type AuthResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      UserResponse `json:"user"`
}

type UserResponse struct {
	ID        string                   `json:"id"`
	Email     string                   `json:"email"`
	FirstName string                   `json:"firstName"`
	LastName  string                   `json:"lastName"`
	Phone     *string                  `json:"phone,omitempty"`
	Clubs     []ClubMembershipResponse `json:"clubs"`
}

type ClubMembershipResponse struct {
	ID   string          `json:"id"`
	Name string          `json:"name"`
	Role entity.ClubRole `json:"role"`
}

// Helper converters
func UserToResponse(user *entity.User, memberships []*entity.Membership) UserResponse {
	clubs := make([]ClubMembershipResponse, 0, len(memberships))
	for _, m := range memberships {
		clubs = append(clubs, ClubMembershipResponse{
			ID:   m.ClubID.String(),
			Name: m.ClubName,
			Role: m.Role,
		})
	}

	return UserResponse{
		ID:        user.ID.String(),
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Phone:     user.Phone,
		Clubs:     clubs,
	}
}

func AuthToResponse(token string, expiresAt time.Time, user *entity.User, memberships []*entity.Membership) AuthResponse {
	return AuthResponse{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      UserToResponse(user, memberships),
	}
}
