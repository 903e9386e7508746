package services

import (
	"context"

	"github.com/campusvote/pollz/internal/logger"
	"github.com/campusvote/pollz/internal/repository"
)

// StatsService exposes platform-wide statistics
type StatsService struct {
	log  logger.Logger
	repo repository.StatsRepository
}

// NewStatsService creates a new StatsService
func NewStatsService(log logger.Logger, repo repository.StatsRepository) *StatsService {
	return &StatsService{log: log, repo: repo}
}

// VotingStats returns counts across all three voting domains
func (s *StatsService) VotingStats(ctx context.Context) (map[string]interface{}, error) {
	return s.repo.GetVotingStats(ctx)
}
