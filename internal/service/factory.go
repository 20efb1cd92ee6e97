package service

import (
	"log/slog"

	"spotcheck.app/survey/core/config"
	"spotcheck.app/survey/internal/queue"
	"spotcheck.app/survey/internal/storage"
	"spotcheck.app/survey/internal/store"
)

type Services struct {
	stores   *store.Stores
	txRunner TxRunner
	resolver *storage.Resolver
	producer queue.Producer
	cfg      config.SurveyConfig
	logger   *slog.Logger
}

func NewServices(stores *store.Stores, txRunner TxRunner, resolver *storage.Resolver, producer queue.Producer, cfg config.SurveyConfig, logger *slog.Logger) *Services {
	return &Services{
		stores:   stores,
		txRunner: txRunner,
		resolver: resolver,
		producer: producer,
		cfg:      cfg,
		logger:   logger,
	}
}

func (s *Services) Participants() ParticipantService {
	return NewParticipantService(s.stores.Participants())
}

func (s *Services) Assignments() AssignmentService {
	return NewAssignmentService(s.txRunner, s.stores.Images(), s.stores.Assignments(), s.cfg)
}

func (s *Services) Survey() SurveyService {
	return NewSurveyService(s.stores.Responses(), s.stores.Images(), s.Assignments(), s.resolver, s.producer, s.cfg, s.logger)
}

func (s *Services) Practice() PracticeService {
	return NewPracticeService(s.Participants(), s.stores.Responses(), s.stores.Images(), s.resolver, s.producer, s.cfg, s.logger)
}
