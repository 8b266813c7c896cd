package usecase

import (
	"context"
	"fmt"
	"sync"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/fantasy-roster/internal/domain/position"
	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
	"github.com/riskibarqy/fantasy-roster/internal/platform/logging"
)

type PositionStatus struct {
	Position       position.Position
	Capacity       int
	Started        int
	CanAdd         bool
	CanStart       bool
	SwapCandidates int
}

type LeagueOverview struct {
	LeagueID     string
	LeagueName   string
	MemberCount  int
	StartedCount int
	Occupancy    roster.Occupancy
	Positions    []PositionStatus
	// Problem is set when the league cannot be evaluated, e.g. missing
	// roster settings. Other leagues are still reported.
	Problem string
}

// OverviewService summarizes add and start legality for every league the
// caller belongs to.
type OverviewService struct {
	leagues    roster.Repository
	maxWorkers int
	logger     *logging.Logger
}

func NewOverviewService(leagues roster.Repository, maxWorkers int, logger *logging.Logger) *OverviewService {
	if maxWorkers < 1 {
		maxWorkers = 1
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &OverviewService{
		leagues:    leagues,
		maxWorkers: maxWorkers,
		logger:     logger,
	}
}

func (s *OverviewService) List(ctx context.Context) ([]LeagueOverview, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.OverviewService.List")
	defer span.End()

	leagues, err := s.leagues.ListLeagues(ctx)
	if err != nil {
		err = fmt.Errorf("list leagues: %w", err)
		recordSpanError(span, err)
		return nil, err
	}
	if len(leagues) == 0 {
		return []LeagueOverview{}, nil
	}

	workerCount := min(s.maxWorkers, len(leagues))
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	out := make([]LeagueOverview, len(leagues))
	var workers sync.WaitGroup
	for i, league := range leagues {
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			out[i] = summarizeLeague(league)
		}); err != nil {
			workers.Done()
			workers.Wait()
			return nil, fmt.Errorf("submit league summary: %w", err)
		}
	}
	workers.Wait()

	s.logger.DebugContext(ctx, "league overview built", "leagues", len(out), "workers", workerCount)
	return out, nil
}

func summarizeLeague(league roster.League) LeagueOverview {
	overview := LeagueOverview{
		LeagueID:     league.ID,
		LeagueName:   league.Name,
		MemberCount:  len(league.Players) + len(league.Defenses),
		StartedCount: len(league.StartedIDs()),
	}
	if league.Settings == nil {
		overview.Problem = "league has no roster settings"
		return overview
	}
	if err := league.Settings.Validate(); err != nil {
		overview.Problem = err.Error()
		return overview
	}

	overview.Occupancy = roster.Simulate(league)
	started := make(map[position.Position]int, len(position.Order()))
	for _, m := range league.Members() {
		if m.Picked {
			started[m.Position]++
		}
	}

	for _, pos := range position.Order() {
		status := PositionStatus{
			Position: pos,
			Capacity: league.Settings.SlotsFor(pos.Slot()),
			Started:  started[pos],
			CanAdd:   roster.IsSpaceRemainingForPlayerAtPosition(league, pos),
		}
		if pos == position.DEF {
			status.CanStart = roster.CanDefenseStartAtPosition(league)
		} else {
			status.CanStart = roster.CanPlayerStartAtPosition(league, pos)
		}
		if !status.CanStart {
			status.SwapCandidates = len(roster.PlayersToSwapForNewStarter(league, pos))
		}
		overview.Positions = append(overview.Positions, status)
	}
	return overview
}
