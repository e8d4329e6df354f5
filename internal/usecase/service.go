package usecase

import (
	"clubops/internal/data/repository"
	"clubops/internal/realtime"
	"clubops/pkg/token"

	"go.uber.org/zap"
)

type Service struct {
	Auth      AuthService
	Dancer    DancerService
	Queue     QueueService
	Vip       VipService
	Financial FinancialService
}

func NewService(repo *repository.Repository, tokens *token.Service, events realtime.Broadcaster, log *zap.Logger) *Service {
	return &Service{
		Auth:      NewAuthService(repo, tokens, log),
		Dancer:    NewDancerService(repo, events, log),
		Queue:     NewQueueService(repo, events, log),
		Vip:       NewVipService(repo, events, log),
		Financial: NewFinancialService(repo, events, log),
	}
}
