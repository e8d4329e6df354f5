// Package seed loads a sample club so a fresh database has something to
// operate on: two staff accounts, two stages with queues, three dancers,
// two VIP rooms and a couple of transactions.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"clubops/internal/data/entity"
	"clubops/internal/data/repository"
	"clubops/pkg/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const AdminEmail = "admin@eliteclub.com"

// Result reports what a seed run created.
type Result struct {
	Skipped bool
	ClubID  uuid.UUID
	Users   int
	Dancers int
	Stages  int
	Rooms   int
}

type account struct {
	email, password, first, last, phone string
	role                                entity.ClubRole
}

type sampleDancer struct {
	stageName, first, last, phone, email string
	licenseDays                          int // days until the license expires
}

var (
	accounts = []account{
		{AdminEmail, "admin123", "John", "Manager", "(555) 987-6543", entity.RoleManager},
		{"dj@eliteclub.com", "dj123", "Mike", "DJ", "(555) 555-0123", entity.RoleDJ},
	}

	dancers = []sampleDancer{
		{"Aria", "Sarah", "Johnson", "(555) 111-2222", "aria@email.com", 10},
		{"Bella", "Emily", "Davis", "(555) 333-4444", "bella@email.com", 200},
		{"Crystal", "Jessica", "Wilson", "(555) 555-6666", "crystal@email.com", 365},
	}
)

// Run creates the sample club inside one transaction. It does nothing when
// the sample manager account already exists.
func Run(ctx context.Context, repo *repository.Repository, now time.Time, log *zap.Logger) (*Result, error) {
	existing, err := repo.User.FindByEmail(ctx, AdminEmail)
	if err != nil {
		return nil, fmt.Errorf("check existing seed: %w", err)
	}
	if existing != nil {
		log.Info("Seed data already present", zap.String("email", AdminEmail))
		return &Result{Skipped: true}, nil
	}

	// bcrypt is slow; hash before opening the transaction
	hashes := make([]string, len(accounts))
	for i, a := range accounts {
		if hashes[i], err = utils.HashPassword(a.password); err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
	}

	result := &Result{}
	err = repo.WithTx(ctx, func(tx *repository.Repository) error {
		club := &entity.Club{
			Base:          entity.NewBase(now),
			Name:          "Elite Gentlemen's Club",
			Address:       ptr("123 Entertainment Blvd"),
			City:          ptr("Las Vegas"),
			State:         ptr("Nevada"),
			ZipCode:       ptr("89101"),
			Phone:         ptr("(555) 123-4567"),
			Email:         ptr("info@eliteclub.com"),
			LicenseNumber: ptr("LV-2025-001"),
			IsActive:      true,
		}
		if err := tx.Club.Create(ctx, club); err != nil {
			return fmt.Errorf("create club: %w", err)
		}
		result.ClubID = club.ID

		var managerID uuid.UUID
		for i, a := range accounts {
			user := &entity.User{
				Base:         entity.NewBase(now),
				Email:        a.email,
				PasswordHash: hashes[i],
				FirstName:    a.first,
				LastName:     a.last,
				Phone:        ptr(a.phone),
				IsActive:     true,
			}
			if err := tx.User.Create(ctx, user); err != nil {
				return fmt.Errorf("create user %s: %w", a.email, err)
			}
			if err := tx.User.AddRole(ctx, &entity.UserClubRole{
				BaseSimple: entity.NewBaseSimple(now),
				UserID:     user.ID,
				ClubID:     club.ID,
				Role:       a.role,
			}); err != nil {
				return fmt.Errorf("add role for %s: %w", a.email, err)
			}
			if a.role == entity.RoleManager {
				managerID = user.ID
			}
			result.Users++
		}

		queues := make([]*entity.DJQueue, 0, 2)
		for _, s := range []struct{ name, description string }{
			{"Main Stage", "Primary performance area"},
			{"Side Stage", "Secondary performance area"},
		} {
			stage := &entity.Stage{
				BaseSimple:  entity.NewBaseSimple(now),
				ClubID:      club.ID,
				Name:        s.name,
				Description: ptr(s.description),
				MaxCapacity: ptr(1),
			}
			if err := tx.Stage.Create(ctx, stage); err != nil {
				return fmt.Errorf("create stage %s: %w", s.name, err)
			}
			queue := &entity.DJQueue{
				Base:    entity.NewBase(now),
				ClubID:  club.ID,
				StageID: stage.ID,
				Name:    s.name + " Queue",
			}
			if err := tx.Queue.Create(ctx, queue); err != nil {
				return fmt.Errorf("create queue for %s: %w", s.name, err)
			}
			queues = append(queues, queue)
			result.Stages++
		}

		created := make([]*entity.Dancer, 0, len(dancers))
		for _, d := range dancers {
			dancer := &entity.Dancer{
				Base:      entity.NewBase(now),
				ClubID:    club.ID,
				StageName: d.stageName,
				FirstName: ptr(d.first),
				LastName:  ptr(d.last),
				Phone:     ptr(d.phone),
				Email:     ptr(d.email),
				IsActive:  true,
				CreatedBy: &managerID,
			}
			if err := tx.Dancer.Create(ctx, dancer); err != nil {
				return fmt.Errorf("create dancer %s: %w", d.stageName, err)
			}
			if err := tx.Dancer.CreateLicense(ctx, &entity.DancerLicense{
				BaseSimple:       entity.NewBaseSimple(now),
				DancerID:         dancer.ID,
				LicenseType:      "ENTERTAINMENT",
				LicenseNumber:    "ENT-" + strings.ToUpper(dancer.ID.String()[:6]),
				IssueDate:        now.AddDate(-1, 0, 0),
				ExpirationDate:   now.AddDate(0, 0, d.licenseDays),
				IssuingAuthority: ptr("Nevada Gaming Commission"),
				IsActive:         true,
			}); err != nil {
				return fmt.Errorf("create license for %s: %w", d.stageName, err)
			}
			created = append(created, dancer)
			result.Dancers++
		}

		rooms := []*entity.VipRoom{
			{
				Base:        entity.NewBase(now),
				ClubID:      club.ID,
				Name:        "VIP Suite 1",
				Description: ptr("Luxury private room with bar service"),
				HourlyRate:  decimal.NewFromInt(150),
				Capacity:    4,
				Amenities:   []string{"Private bar", "Sound system", "Comfortable seating"},
				IsActive:    true,
			},
			{
				Base:        entity.NewBase(now),
				ClubID:      club.ID,
				Name:        "VIP Suite 2",
				Description: ptr("Premium private room"),
				HourlyRate:  decimal.NewFromInt(125),
				Capacity:    2,
				Amenities:   []string{"Sound system", "Private seating"},
				IsActive:    true,
			},
		}
		for _, room := range rooms {
			if err := tx.VipRoom.Create(ctx, room); err != nil {
				return fmt.Errorf("create room %s: %w", room.Name, err)
			}
			result.Rooms++
		}

		for i, song := range []struct {
			title, artist string
			seconds       int
		}{
			{"Sexy Back", "Justin Timberlake", 240},
			{"Crazy", "Gnarls Barkley", 180},
		} {
			if err := tx.Queue.CreateEntry(ctx, &entity.QueueEntry{
				Base:      entity.NewBase(now),
				QueueID:   queues[0].ID,
				DancerID:  created[i].ID,
				Position:  i + 1,
				SongTitle: ptr(song.title),
				Artist:    ptr(song.artist),
				Duration:  ptr(song.seconds),
				Status:    entity.QueueEntryActive,
			}); err != nil {
				return fmt.Errorf("create queue entry: %w", err)
			}
		}

		for _, t := range []struct {
			category, description, reference string
			amount                           int64
			method                           entity.PaymentMethod
		}{
			{entity.CategoryBarFee, "Bar fee - " + created[0].StageName, created[0].ID.String(), 25, entity.PaymentCash},
			{entity.CategoryVipRoom, rooms[0].Name + " - 1 hour", rooms[0].ID.String(), 150, entity.PaymentCreditCard},
		} {
			if err := tx.Transaction.Create(ctx, &entity.FinancialTransaction{
				BaseSimple:      entity.NewBaseSimple(now),
				ClubID:          club.ID,
				TransactionType: entity.TransactionRevenue,
				Category:        t.category,
				Amount:          decimal.NewFromInt(t.amount),
				PaymentMethod:   t.method,
				Description:     t.description,
				Reference:       ptr(t.reference),
				CreatedBy:       &managerID,
				ProcessedAt:     now,
			}); err != nil {
				return fmt.Errorf("create transaction: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Seed completed",
		zap.String("club_id", result.ClubID.String()),
		zap.Int("users", result.Users),
		zap.Int("dancers", result.Dancers),
		zap.Int("stages", result.Stages),
		zap.Int("rooms", result.Rooms))

	return result, nil
}

func ptr[T any](v T) *T {
	return &v
}
