package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/riskibarqy/fantasy-roster/internal/domain/position"
	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
	"github.com/riskibarqy/fantasy-roster/internal/platform/logging"
	"github.com/riskibarqy/fantasy-roster/internal/platform/resilience"
)

// RosterView is a league snapshot with members in display order.
type RosterView struct {
	LeagueID  string
	Name      string
	Settings  *roster.Settings
	Players   []roster.Member
	Defenses  []roster.Member
	Occupancy roster.Occupancy
}

// PoolPlayer is a player from the position pool, annotated against the
// current roster.
type PoolPlayer struct {
	Member   roster.Member
	OnRoster bool
	CanAdd   bool
	CanStart bool
}

type PlayerBrowse struct {
	LeagueID string
	Position position.Position
	Players  []PoolPlayer
}

type AddMemberInput struct {
	UserID          string
	LeagueID        string
	MemberID        string
	IsDefense       bool
	Position        string
	ReplaceMemberID string
}

// AddResult reports whether the member was added. When the roster has no
// room and no replacement was named, NeedsSwap is set and Candidates lists
// the members that may be dropped.
type AddResult struct {
	Added      bool
	NeedsSwap  bool
	Replaced   *roster.Member
	Candidates []roster.Member
}

type RemoveMemberInput struct {
	UserID    string
	LeagueID  string
	MemberID  string
	IsDefense bool
}

type RosterService struct {
	leagues roster.Repository
	updater roster.Updater
	pool    roster.PlayerPool
	gate    *resilience.KeyedGate
	logger  *logging.Logger
}

func NewRosterService(
	leagues roster.Repository,
	updater roster.Updater,
	pool roster.PlayerPool,
	gate *resilience.KeyedGate,
	logger *logging.Logger,
) *RosterService {
	if gate == nil {
		gate = resilience.NewKeyedGate()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &RosterService{
		leagues: leagues,
		updater: updater,
		pool:    pool,
		gate:    gate,
		logger:  logger,
	}
}

func (s *RosterService) GetRoster(ctx context.Context, leagueID string) (RosterView, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.GetRoster")
	defer span.End()

	league, err := loadLeague(ctx, s.leagues, leagueID)
	if err != nil {
		recordSpanError(span, err)
		return RosterView{}, err
	}

	return RosterView{
		LeagueID:  league.ID,
		Name:      league.Name,
		Settings:  league.Settings,
		Players:   roster.SortForDisplay(league.Players),
		Defenses:  roster.SortForDisplay(league.Defenses),
		Occupancy: roster.Simulate(league),
	}, nil
}

func (s *RosterService) Occupancy(ctx context.Context, leagueID string) (roster.Occupancy, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.Occupancy")
	defer span.End()

	league, err := loadLeague(ctx, s.leagues, leagueID)
	if err != nil {
		recordSpanError(span, err)
		return roster.Occupancy{}, err
	}
	return roster.Simulate(league), nil
}

// HasSpaceFor reports whether a new member at rawPosition can be added.
func (s *RosterService) HasSpaceFor(ctx context.Context, leagueID, rawPosition string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.HasSpaceFor")
	defer span.End()

	pos, err := parsePosition(rawPosition)
	if err != nil {
		return false, err
	}
	league, err := loadLeague(ctx, s.leagues, leagueID)
	if err != nil {
		recordSpanError(span, err)
		return false, err
	}
	return roster.IsSpaceRemainingForPlayerAtPosition(league, pos), nil
}

// CanStartAt reports whether one more member at rawPosition may start.
func (s *RosterService) CanStartAt(ctx context.Context, leagueID, rawPosition string) (bool, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.CanStartAt")
	defer span.End()

	pos, err := parsePosition(rawPosition)
	if err != nil {
		return false, err
	}
	league, err := loadLeague(ctx, s.leagues, leagueID)
	if err != nil {
		recordSpanError(span, err)
		return false, err
	}
	if pos == position.DEF {
		return roster.CanDefenseStartAtPosition(league), nil
	}
	return roster.CanPlayerStartAtPosition(league, pos), nil
}

func (s *RosterService) SwapCandidates(ctx context.Context, leagueID, rawPosition string) ([]roster.Member, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.SwapCandidates")
	defer span.End()

	pos, err := parsePosition(rawPosition)
	if err != nil {
		return nil, err
	}
	league, err := loadLeague(ctx, s.leagues, leagueID)
	if err != nil {
		recordSpanError(span, err)
		return nil, err
	}
	return roster.PlayersToSwapForNewStarter(league, pos), nil
}

// BrowsePlayers lists the backend pool at rawPosition. Each entry says
// whether it is already rostered, whether it could be added now, and
// whether one more starter at that position fits. search filters by name,
// ignoring case.
func (s *RosterService) BrowsePlayers(ctx context.Context, leagueID, rawPosition, search string) (PlayerBrowse, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.BrowsePlayers")
	defer span.End()

	pos, err := parsePosition(rawPosition)
	if err != nil {
		return PlayerBrowse{}, err
	}
	league, err := loadLeague(ctx, s.leagues, leagueID)
	if err != nil {
		recordSpanError(span, err)
		return PlayerBrowse{}, err
	}
	if s.pool == nil {
		return PlayerBrowse{}, fmt.Errorf("%w: player pool is not configured", ErrDependencyUnavailable)
	}

	pool, err := s.pool.ListPlayersByPosition(ctx, pos)
	if err != nil {
		err = fmt.Errorf("list %s pool: %w", pos, err)
		recordSpanError(span, err)
		return PlayerBrowse{}, err
	}

	hasSpace := roster.IsSpaceRemainingForPlayerAtPosition(league, pos)
	canStart := roster.CanPlayerStartAtPosition(league, pos)
	if pos == position.DEF {
		canStart = roster.CanDefenseStartAtPosition(league)
	}

	needle := strings.ToLower(strings.TrimSpace(search))
	out := PlayerBrowse{LeagueID: league.ID, Position: pos, Players: make([]PoolPlayer, 0, len(pool))}
	for _, m := range pool {
		if needle != "" && !strings.Contains(strings.ToLower(m.Name), needle) {
			continue
		}
		_, findErr := league.FindMember(m.ID, m.IsDefense())
		onRoster := findErr == nil
		out.Players = append(out.Players, PoolPlayer{
			Member:   m,
			OnRoster: onRoster,
			CanAdd:   !onRoster && hasSpace,
			CanStart: canStart,
		})
	}
	return out, nil
}

func (s *RosterService) AddMember(ctx context.Context, input AddMemberInput) (AddResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.AddMember")
	defer span.End()

	input.MemberID = strings.TrimSpace(input.MemberID)
	input.ReplaceMemberID = strings.TrimSpace(input.ReplaceMemberID)
	if input.MemberID == "" {
		return AddResult{}, fmt.Errorf("%w: member id is required", ErrInvalidInput)
	}
	pos := position.DEF
	if !input.IsDefense {
		var err error
		if pos, err = parsePosition(input.Position); err != nil {
			return AddResult{}, err
		}
		if pos == position.DEF {
			return AddResult{}, fmt.Errorf("%w: defenses must be added with is_defense", ErrInvalidInput)
		}
	}

	release, ok := s.gate.TryAcquire(workflowKey(input.UserID, input.LeagueID))
	if !ok {
		return AddResult{}, fmt.Errorf("%w: league=%s", ErrToggleInFlight, input.LeagueID)
	}
	defer release()

	league, err := loadLeague(ctx, s.leagues, input.LeagueID)
	if err != nil {
		recordSpanError(span, err)
		return AddResult{}, err
	}
	if _, err := league.FindMember(input.MemberID, input.IsDefense); err == nil {
		return AddResult{}, fmt.Errorf("%w: member %s is already on the roster", ErrInvalidInput, input.MemberID)
	}

	update := roster.MemberUpdate{
		LeagueID:  league.ID,
		MemberID:  input.MemberID,
		IsDefense: input.IsDefense,
	}

	if roster.IsSpaceRemainingForPlayerAtPosition(league, pos) {
		if err := s.updater.AddMember(ctx, update); err != nil {
			err = fmt.Errorf("%w: add member %s: %w", ErrRosterUpdateFailed, input.MemberID, err)
			recordSpanError(span, err)
			return AddResult{}, err
		}
		s.logger.InfoContext(ctx, "roster member added",
			"league_id", league.ID,
			"member_id", input.MemberID,
			"position", pos.String(),
		)
		return AddResult{Added: true}, nil
	}

	candidates := roster.MembersToReplaceForNewMember(league, pos)
	if input.ReplaceMemberID == "" {
		return AddResult{NeedsSwap: true, Candidates: candidates}, nil
	}

	replaced, found := findCandidate(candidates, input.ReplaceMemberID)
	if !found {
		return AddResult{}, fmt.Errorf("%w: member %s cannot be replaced by a %s", ErrInvalidInput, input.ReplaceMemberID, pos)
	}

	// The two calls below run to completion even if the caller goes away.
	applyCtx := context.WithoutCancel(ctx)
	if err := s.updater.RemoveMember(applyCtx, roster.MemberUpdate{
		LeagueID:  league.ID,
		MemberID:  replaced.ID,
		IsDefense: replaced.IsDefense(),
	}); err != nil {
		err = fmt.Errorf("%w: remove member %s: %w", ErrRosterUpdateFailed, replaced.ID, err)
		recordSpanError(span, err)
		return AddResult{}, err
	}
	if err := s.updater.AddMember(applyCtx, update); err != nil {
		s.logger.ErrorContext(ctx, "roster left without replacement member",
			"league_id", league.ID,
			"removed_member_id", replaced.ID,
			"member_id", input.MemberID,
			"error", err,
		)
		err = fmt.Errorf("%w: removed %s but adding %s failed: %w", ErrRosterInconsistent, replaced.ID, input.MemberID, err)
		recordSpanError(span, err)
		return AddResult{}, err
	}

	s.logger.InfoContext(ctx, "roster member replaced",
		"league_id", league.ID,
		"member_id", input.MemberID,
		"replaced_member_id", replaced.ID,
	)
	return AddResult{Added: true, Replaced: &replaced}, nil
}

func (s *RosterService) RemoveMember(ctx context.Context, input RemoveMemberInput) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.RosterService.RemoveMember")
	defer span.End()

	input.MemberID = strings.TrimSpace(input.MemberID)
	if input.MemberID == "" {
		return fmt.Errorf("%w: member id is required", ErrInvalidInput)
	}

	release, ok := s.gate.TryAcquire(workflowKey(input.UserID, input.LeagueID))
	if !ok {
		return fmt.Errorf("%w: league=%s", ErrToggleInFlight, input.LeagueID)
	}
	defer release()

	league, err := loadLeague(ctx, s.leagues, input.LeagueID)
	if err != nil {
		recordSpanError(span, err)
		return err
	}
	member, err := league.FindMember(input.MemberID, input.IsDefense)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	if err := s.updater.RemoveMember(ctx, roster.MemberUpdate{
		LeagueID:  league.ID,
		MemberID:  member.ID,
		IsDefense: member.IsDefense(),
	}); err != nil {
		err = fmt.Errorf("%w: remove member %s: %w", ErrRosterUpdateFailed, member.ID, err)
		recordSpanError(span, err)
		return err
	}

	s.logger.InfoContext(ctx, "roster member removed", "league_id", league.ID, "member_id", member.ID)
	return nil
}

func loadLeague(ctx context.Context, leagues roster.Repository, leagueID string) (roster.League, error) {
	leagueID = strings.TrimSpace(leagueID)
	if leagueID == "" {
		return roster.League{}, fmt.Errorf("%w: league id is required", ErrInvalidInput)
	}

	league, exists, err := leagues.GetLeague(ctx, leagueID)
	if err != nil {
		return roster.League{}, fmt.Errorf("get league %s: %w", leagueID, err)
	}
	if !exists {
		return roster.League{}, fmt.Errorf("%w: league=%s", ErrNotFound, leagueID)
	}
	if league.Settings == nil {
		return roster.League{}, fmt.Errorf("%w: league %s has no roster settings", ErrInvalidInput, leagueID)
	}
	if err := league.Settings.Validate(); err != nil {
		return roster.League{}, fmt.Errorf("%w: league %s: %w", ErrInvalidInput, leagueID, err)
	}
	return league, nil
}

func parsePosition(raw string) (position.Position, error) {
	pos, ok := position.Parse(raw)
	if !ok {
		return "", fmt.Errorf("%w: %w %q", ErrInvalidInput, roster.ErrUnknownPosition, raw)
	}
	return pos, nil
}

func findCandidate(candidates []roster.Member, memberID string) (roster.Member, bool) {
	for _, c := range candidates {
		if c.ID == memberID {
			return c, true
		}
	}
	return roster.Member{}, false
}

func workflowKey(userID, leagueID string) string {
	return strings.TrimSpace(userID) + ":" + strings.TrimSpace(leagueID)
}

func isMemberNotFound(err error) bool {
	return errors.Is(err, roster.ErrMemberNotFound)
}
