package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"clubops/internal/data/entity"
	"clubops/internal/data/repository"
	"clubops/internal/dto/request"
	"clubops/internal/dto/response"
	"clubops/internal/realtime"
	"clubops/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// licenseAlertWindow is how far ahead license expirations are flagged.
const licenseAlertWindow = 14 * 24 * time.Hour

type DancerService interface {
	List(ctx context.Context, clubID uuid.UUID, req *request.ListDancersRequest) (*response.DancerListResponse, error)
	Create(ctx context.Context, clubID, userID uuid.UUID, req *request.CreateDancerRequest) (*response.DancerResponse, error)
	Alerts(ctx context.Context, clubID uuid.UUID) (*response.AlertsResponse, error)
	CheckIn(ctx context.Context, clubID, dancerID uuid.UUID) (*response.DancerSessionResponse, error)
	CheckOut(ctx context.Context, clubID, dancerID uuid.UUID) (*response.DancerSessionResponse, error)
}

type dancerService struct {
	repo   *repository.Repository
	events realtime.Broadcaster
	log    *zap.Logger
	now    func() time.Time
}

func NewDancerService(repo *repository.Repository, events realtime.Broadcaster, log *zap.Logger) DancerService {
	return &dancerService{
		repo:   repo,
		events: events,
		log:    log.With(zap.String("service", "dancer")),
		now:    time.Now,
	}
}

func (s *dancerService) List(ctx context.Context, clubID uuid.UUID, req *request.ListDancersRequest) (*response.DancerListResponse, error) {
	search := strings.TrimSpace(req.Search)
	window := req.Window()

	dancers, err := s.repo.Dancer.List(ctx, clubID, search, window.Limit, window.Offset)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Dancer.Count(ctx, clubID, search)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(dancers))
	for _, d := range dancers {
		ids = append(ids, d.ID)
	}

	licenses, err := s.repo.Dancer.FindActiveLicenses(ctx, ids)
	if err != nil {
		return nil, err
	}
	sessions, err := s.repo.DancerSession.FindOpenByDancers(ctx, ids)
	if err != nil {
		return nil, err
	}

	resp := &response.DancerListResponse{
		Dancers:    make([]response.DancerResponse, 0, len(dancers)),
		Pagination: response.NewPaginationMeta(window.Page, window.Limit, total),
	}
	for _, d := range dancers {
		resp.Dancers = append(resp.Dancers, response.DancerToResponse(d, licenses[d.ID], sessions[d.ID]))
	}

	return resp, nil
}

func (s *dancerService) Create(ctx context.Context, clubID, userID uuid.UUID, req *request.CreateDancerRequest) (*response.DancerResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Create dancer validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	now := s.now()
	dancer := &entity.Dancer{
		Base:      entity.NewBase(now),
		ClubID:    clubID,
		StageName: strings.TrimSpace(req.StageName),
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Phone:     req.Phone,
		Email:     req.Email,
		Notes:     req.Notes,
		IsActive:  true,
		CreatedBy: &userID,
	}
	if req.DateOfBirth != nil {
		// format already checked by the datetime tag
		dob, _ := time.Parse("2006-01-02", *req.DateOfBirth)
		dancer.DateOfBirth = &dob
	}

	if err := s.repo.Dancer.Create(ctx, dancer); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newError(ErrConflict, "A dancer with this stage name already exists")
		}
		return nil, err
	}

	s.log.Info("Dancer created",
		zap.String("dancer_id", dancer.ID.String()),
		zap.String("club_id", clubID.String()))

	resp := response.DancerToResponse(dancer, nil, nil)
	s.events.Emit(clubID, realtime.EventDancerCreated, resp)

	return &resp, nil
}

// Alerts lists dancers holding an active license that expires within the
// alert window. Already expired licenses are included.
func (s *dancerService) Alerts(ctx context.Context, clubID uuid.UUID) (*response.AlertsResponse, error) {
	licenses, err := s.repo.Dancer.FindExpiringLicenses(ctx, clubID, s.now().Add(licenseAlertWindow))
	if err != nil {
		return nil, err
	}

	var order []uuid.UUID
	byDancer := make(map[uuid.UUID][]*entity.DancerLicense)
	for _, l := range licenses {
		if _, seen := byDancer[l.DancerID]; !seen {
			order = append(order, l.DancerID)
		}
		byDancer[l.DancerID] = append(byDancer[l.DancerID], l)
	}

	resp := &response.AlertsResponse{Alerts: make([]response.LicenseAlertResponse, 0, len(order))}
	for _, dancerID := range order {
		dancer, err := s.repo.Dancer.FindByID(ctx, clubID, dancerID)
		if err != nil {
			return nil, err
		}
		if dancer == nil {
			continue
		}
		resp.Alerts = append(resp.Alerts, response.LicenseAlertResponse{
			DancerID:  dancer.ID.String(),
			StageName: dancer.StageName,
			Licenses:  response.LicensesToResponse(byDancer[dancerID]),
		})
	}

	return resp, nil
}

func (s *dancerService) CheckIn(ctx context.Context, clubID, dancerID uuid.UUID) (*response.DancerSessionResponse, error) {
	if _, err := s.findDancer(ctx, clubID, dancerID); err != nil {
		return nil, err
	}

	now := s.now()
	session := &entity.DancerSession{
		BaseSimple:  entity.NewBaseSimple(now),
		DancerID:    dancerID,
		CheckInTime: now,
	}

	if err := s.repo.DancerSession.Open(ctx, session); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, newError(ErrConflict, "Dancer is already checked in")
		}
		return nil, err
	}

	s.log.Info("Dancer checked in", zap.String("dancer_id", dancerID.String()))

	resp := response.DancerSessionToResponse(session)
	return &resp, nil
}

func (s *dancerService) CheckOut(ctx context.Context, clubID, dancerID uuid.UUID) (*response.DancerSessionResponse, error) {
	if _, err := s.findDancer(ctx, clubID, dancerID); err != nil {
		return nil, err
	}

	session, err := s.repo.DancerSession.Close(ctx, dancerID, s.now())
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, newError(ErrNotFound, "Dancer is not checked in")
	}

	s.log.Info("Dancer checked out", zap.String("dancer_id", dancerID.String()))

	resp := response.DancerSessionToResponse(session)
	return &resp, nil
}

func (s *dancerService) findDancer(ctx context.Context, clubID, dancerID uuid.UUID) (*entity.Dancer, error) {
	dancer, err := s.repo.Dancer.FindByID(ctx, clubID, dancerID)
	if err != nil {
		return nil, err
	}
	if dancer == nil {
		return nil, newError(ErrNotFound, "Dancer not found")
	}
	return dancer, nil
}
