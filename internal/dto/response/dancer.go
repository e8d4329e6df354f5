package response

import (
	"time"

	"clubops/internal/data/entity"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

type DancerResponse struct {
	ID             string                 `json:"id"`
	StageName      string                 `json:"stageName"`
	FirstName      *string                `json:"firstName,omitempty"`
	LastName       *string                `json:"lastName,omitempty"`
	Phone          *string                `json:"phone,omitempty"`
	Email          *string                `json:"email,omitempty"`
	DateOfBirth    *string                `json:"dateOfBirth,omitempty"`
	Notes          *string                `json:"notes,omitempty"`
	IsActive       bool                   `json:"isActive"`
	CreatedAt      time.Time              `json:"createdAt"`
	Licenses       []LicenseResponse      `json:"licenses"`
	CurrentSession *DancerSessionResponse `json:"currentSession"`
}

type LicenseResponse struct {
	ID               string  `json:"id"`
	LicenseType      string  `json:"licenseType"`
	LicenseNumber    string  `json:"licenseNumber"`
	IssueDate        string  `json:"issueDate"`
	ExpirationDate   string  `json:"expirationDate"`
	IssuingAuthority *string `json:"issuingAuthority,omitempty"`
}

type DancerSessionResponse struct {
	ID           string           `json:"id"`
	DancerID     string           `json:"dancerId"`
	CheckInTime  time.Time        `json:"checkInTime"`
	CheckOutTime *time.Time       `json:"checkOutTime"`
	BarFeePaid   bool             `json:"barFeePaid"`
	BarFeeAmount *decimal.Decimal `json:"barFeeAmount"`
}

type DancerListResponse struct {
	Dancers    []DancerResponse `json:"dancers"`
	Pagination PaginationMeta   `json:"pagination"`
}

// LicenseAlertResponse lists a dancer with the licenses that need renewal.
type LicenseAlertResponse struct {
	DancerID  string            `json:"dancerId"`
	StageName string            `json:"stageName"`
	Licenses  []LicenseResponse `json:"licenses"`
}

type AlertsResponse struct {
	Alerts []LicenseAlertResponse `json:"alerts"`
}

func DancerToResponse(d *entity.Dancer, licenses []*entity.DancerLicense, session *entity.DancerSession) DancerResponse {
	resp := DancerResponse{
		ID:        d.ID.String(),
		StageName: d.StageName,
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Phone:     d.Phone,
		Email:     d.Email,
		Notes:     d.Notes,
		IsActive:  d.IsActive,
		CreatedAt: d.CreatedAt,
		Licenses:  LicensesToResponse(licenses),
	}

	if d.DateOfBirth != nil {
		dob := d.DateOfBirth.Format(dateLayout)
		resp.DateOfBirth = &dob
	}
	if session != nil {
		s := DancerSessionToResponse(session)
		resp.CurrentSession = &s
	}

	return resp
}

func LicensesToResponse(licenses []*entity.DancerLicense) []LicenseResponse {
	out := make([]LicenseResponse, 0, len(licenses))
	for _, l := range licenses {
		out = append(out, LicenseResponse{
			ID:               l.ID.String(),
			LicenseType:      l.LicenseType,
			LicenseNumber:    l.LicenseNumber,
			IssueDate:        l.IssueDate.Format(dateLayout),
			ExpirationDate:   l.ExpirationDate.Format(dateLayout),
			IssuingAuthority: l.IssuingAuthority,
		})
	}
	return out
}

func DancerSessionToResponse(s *entity.DancerSession) DancerSessionResponse {
	resp := DancerSessionResponse{
		ID:           s.ID.String(),
		DancerID:     s.DancerID.String(),
		CheckInTime:  s.CheckInTime,
		CheckOutTime: s.CheckOutTime,
		BarFeePaid:   s.BarFeePaid,
	}
	if s.BarFeeAmount.Valid {
		amount := s.BarFeeAmount.Decimal
		resp.BarFeeAmount = &amount
	}
	return resp
}
