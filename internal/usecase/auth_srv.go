package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"clubops/internal/data/entity"
	"clubops/internal/data/repository"
	"clubops/internal/dto/request"
	"clubops/internal/dto/response"
	"clubops/pkg/token"
	"clubops/pkg/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Identity is the authenticated caller of a request.
type Identity struct {
	UserID       uuid.UUID
	SessionToken uuid.UUID
}

type AuthService interface {
	Register(ctx context.Context, req *request.RegisterRequest, client request.ClientInfo) (*response.AuthResponse, error)
	Login(ctx context.Context, req *request.LoginRequest, client request.ClientInfo) (*response.AuthResponse, error)
	Logout(ctx context.Context, sessionToken string) error
	Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error)

	// Authenticate resolves a bearer JWT to its live session.
	Authenticate(ctx context.Context, accessToken string) (*Identity, error)
	// Membership returns the caller's role in the club, or ErrForbidden.
	Membership(ctx context.Context, userID, clubID uuid.UUID) (*entity.Membership, error)
}

type authService struct {
	repo   *repository.Repository
	tokens *token.Service
	log    *zap.Logger
	now    func() time.Time
}

func NewAuthService(repo *repository.Repository, tokens *token.Service, log *zap.Logger) AuthService {
	return &authService{
		repo:   repo,
		tokens: tokens,
		log:    log.With(zap.String("service", "auth")),
		now:    time.Now,
	}
}

func (s *authService) Register(ctx context.Context, req *request.RegisterRequest, client request.ClientInfo) (*response.AuthResponse, error) {
	// 1. Validate input
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Register validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	// 2. Email must be free
	existing, err := s.repo.User.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, newError(ErrConflict, "Email already registered")
	}

	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		s.log.Error("Failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("hash password: %w", err)
	}

	// 3. User, club and owner role are created together
	now := s.now()
	firstName, lastName := splitFullName(req.FullName)
	user := &entity.User{
		Base:         entity.NewBase(now),
		Email:        email,
		PasswordHash: hashedPassword,
		FirstName:    firstName,
		LastName:     lastName,
		Phone:        req.Phone,
		IsActive:     true,
	}
	club := &entity.Club{
		Base:     entity.NewBase(now),
		Name:     strings.TrimSpace(req.ClubName),
		Email:    &email,
		Phone:    req.Phone,
		IsActive: true,
	}

	err = s.repo.WithTx(ctx, func(tx *repository.Repository) error {
		if err := tx.User.Create(ctx, user); err != nil {
			return err
		}
		if err := tx.Club.Create(ctx, club); err != nil {
			return err
		}
		return tx.User.AddRole(ctx, &entity.UserClubRole{
			BaseSimple: entity.NewBaseSimple(now),
			UserID:     user.ID,
			ClubID:     club.ID,
			Role:       entity.RoleOwner,
		})
	})
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, newError(ErrConflict, "Email already registered")
	}
	if err != nil {
		return nil, err
	}

	s.log.Info("User registered",
		zap.String("user_id", user.ID.String()),
		zap.String("club_id", club.ID.String()))

	// 4. Log the new owner in
	memberships := []*entity.Membership{{ClubID: club.ID, ClubName: club.Name, Role: entity.RoleOwner}}
	return s.issue(ctx, user, memberships, client)
}

func (s *authService) Login(ctx context.Context, req *request.LoginRequest, client request.ClientInfo) (*response.AuthResponse, error) {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		s.log.Warn("Login validation failed", zap.Any("errors", errs))
		return nil, validationError(errs)
	}

	user, err := s.repo.User.FindByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		return nil, err
	}

	// unknown email, inactive account and wrong password look the same to the caller
	if user == nil || !user.IsActive || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		s.log.Warn("Login rejected", zap.String("email", req.Email), zap.String("ip", client.IPAddress))
		return nil, newError(ErrUnauthorized, "Invalid credentials")
	}

	memberships, err := s.repo.User.FindMemberships(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	resp, err := s.issue(ctx, user, memberships, client)
	if err != nil {
		return nil, err
	}

	s.log.Info("User logged in", zap.String("user_id", user.ID.String()))
	return resp, nil
}

func (s *authService) Logout(ctx context.Context, sessionToken string) error {
	tokenUUID, err := uuid.Parse(sessionToken)
	if err != nil {
		return newError(ErrUnauthorized, "Invalid session")
	}

	if err := s.repo.Session.Revoke(ctx, tokenUUID, s.now()); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return newError(ErrUnauthorized, "Session already ended")
		}
		return err
	}

	s.log.Info("User logged out", zap.String("session", tokenUUID.String()))
	return nil
}

func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*response.UserResponse, error) {
	user, err := s.repo.User.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, newError(ErrUnauthorized, "User not found or inactive")
	}

	memberships, err := s.repo.User.FindMemberships(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	resp := response.UserToResponse(user, memberships)
	return &resp, nil
}

// Authenticate maps a bad signature or expired JWT to ErrForbidden and a
// revoked session or deactivated user to ErrUnauthorized.
func (s *authService) Authenticate(ctx context.Context, accessToken string) (*Identity, error) {
	claims, err := s.tokens.Validate(accessToken)
	if err != nil {
		s.log.Debug("Token rejected", zap.Error(err))
		return nil, newError(ErrForbidden, "Invalid or expired token")
	}

	sessionToken, err := claims.SessionToken()
	if err != nil {
		return nil, newError(ErrForbidden, "Invalid or expired token")
	}

	session, err := s.repo.Session.FindByToken(ctx, sessionToken)
	if err != nil {
		return nil, err
	}
	if session == nil || session.UserID != claims.UserID || !session.Live(s.now()) {
		return nil, newError(ErrUnauthorized, "Session expired or revoked")
	}

	user, err := s.repo.User.FindByID(ctx, session.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, newError(ErrUnauthorized, "User not found or inactive")
	}

	return &Identity{UserID: user.ID, SessionToken: sessionToken}, nil
}

func (s *authService) Membership(ctx context.Context, userID, clubID uuid.UUID) (*entity.Membership, error) {
	membership, err := s.repo.User.FindMembership(ctx, userID, clubID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, newError(ErrForbidden, "Access denied to this club")
	}
	return membership, nil
}

// issue opens a session and signs the JWT that points at it.
func (s *authService) issue(ctx context.Context, user *entity.User, memberships []*entity.Membership, client request.ClientInfo) (*response.AuthResponse, error) {
	now := s.now()
	sessionToken := utils.GenerateSessionToken()

	signed, expiresAt, err := s.tokens.Generate(user.ID, user.Email, sessionToken, now)
	if err != nil {
		s.log.Error("Failed to sign token", zap.Error(err), zap.String("user_id", user.ID.String()))
		return nil, err
	}

	session := &entity.Session{
		BaseSimple: entity.NewBaseSimple(now),
		UserID:     user.ID,
		Token:      sessionToken,
		ExpiresAt:  expiresAt,
	}
	if client.UserAgent != "" {
		device := utils.ParseUserAgent(client.UserAgent).Describe()
		session.UserAgent = &device
	}
	if client.IPAddress != "" {
		ip := client.IPAddress
		session.IPAddress = &ip
	}

	if err := s.repo.Session.Create(ctx, session); err != nil {
		return nil, err
	}

	resp := response.AuthToResponse(signed, expiresAt, user, memberships)
	return &resp, nil
}

func splitFullName(fullName string) (string, string) {
	parts := strings.Fields(fullName)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}
