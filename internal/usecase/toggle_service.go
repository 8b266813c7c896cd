package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
	"github.com/riskibarqy/fantasy-roster/internal/platform/id"
	"github.com/riskibarqy/fantasy-roster/internal/platform/logging"
	"github.com/riskibarqy/fantasy-roster/internal/platform/resilience"
)

// ToggleState is where a start/sit workflow stands after a call.
type ToggleState string

const (
	ToggleStateIdle               ToggleState = "idle"
	ToggleStateConfirmingToggle   ToggleState = "confirming_toggle"
	ToggleStateAwaitingSwapChoice ToggleState = "awaiting_swap_choice"
)

type ToggleAction string

const (
	ToggleActionStart ToggleAction = "start"
	ToggleActionBench ToggleAction = "bench"
)

type ToggleInput struct {
	UserID       string
	LeagueID     string
	MemberID     string
	IsDefense    bool
	SwapMemberID string
	Confirmed    bool
}

type ToggleResult struct {
	OperationID string
	State       ToggleState
	Action      ToggleAction
	Member      roster.Member
	Applied     bool
	Benched     *roster.Member
	Candidates  []roster.Member
}

// ToggleService flips a member between started and benched, asking the
// caller to pick a starter to bench when no slot is open.
type ToggleService struct {
	leagues roster.Repository
	updater roster.Updater
	gate    *resilience.KeyedGate
	ids     id.Generator
	logger  *logging.Logger
}

func NewToggleService(
	leagues roster.Repository,
	updater roster.Updater,
	gate *resilience.KeyedGate,
	ids id.Generator,
	logger *logging.Logger,
) *ToggleService {
	if gate == nil {
		gate = resilience.NewKeyedGate()
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ToggleService{
		leagues: leagues,
		updater: updater,
		gate:    gate,
		ids:     ids,
		logger:  logger,
	}
}

func (s *ToggleService) Toggle(ctx context.Context, input ToggleInput) (ToggleResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ToggleService.Toggle")
	defer span.End()

	input.MemberID = strings.TrimSpace(input.MemberID)
	input.SwapMemberID = strings.TrimSpace(input.SwapMemberID)
	if input.MemberID == "" {
		return ToggleResult{}, fmt.Errorf("%w: member id is required", ErrInvalidInput)
	}

	if !input.Confirmed {
		league, member, err := s.loadMember(ctx, input)
		if err != nil {
			recordSpanError(span, err)
			return ToggleResult{}, err
		}
		return ToggleResult{
			State:  ToggleStateConfirmingToggle,
			Action: actionFor(member),
			Member: member,
			// Preview only; the confirmed call re-evaluates on fresh data.
			Candidates: previewCandidates(league, member),
		}, nil
	}

	release, ok := s.gate.TryAcquire(workflowKey(input.UserID, input.LeagueID))
	if !ok {
		return ToggleResult{}, fmt.Errorf("%w: league=%s", ErrToggleInFlight, input.LeagueID)
	}
	defer release()

	operationID, err := s.ids.NewID()
	if err != nil {
		return ToggleResult{}, fmt.Errorf("generate operation id: %w", err)
	}

	league, member, err := s.loadMember(ctx, input)
	if err != nil {
		recordSpanError(span, err)
		return ToggleResult{}, err
	}

	result := ToggleResult{
		OperationID: operationID,
		State:       ToggleStateIdle,
		Action:      actionFor(member),
		Member:      member,
	}
	logger := s.logger.With(
		"operation_id", operationID,
		"league_id", league.ID,
		"member_id", member.ID,
		"is_defense", member.IsDefense(),
	)

	// Updates settle on their own once started; the caller leaving does not
	// cancel the second half of a swap.
	applyCtx := context.WithoutCancel(ctx)

	if member.Picked {
		if err := s.setPicked(applyCtx, league.ID, member, false); err != nil {
			recordSpanError(span, err)
			return ToggleResult{}, err
		}
		logger.InfoContext(ctx, "roster member benched")
		result.Member.Picked = false
		result.Applied = true
		return result, nil
	}

	if roster.CanStart(league, member) {
		if err := s.setPicked(applyCtx, league.ID, member, true); err != nil {
			recordSpanError(span, err)
			return ToggleResult{}, err
		}
		logger.InfoContext(ctx, "roster member started")
		result.Member.Picked = true
		result.Applied = true
		return result, nil
	}

	candidates := roster.PlayersToSwapForNewStarter(league, member.Position)
	if len(candidates) == 0 {
		return ToggleResult{}, fmt.Errorf("%w: no started member can make room for %s at %s", ErrInvalidInput, member.ID, member.Position)
	}
	if input.SwapMemberID == "" {
		result.State = ToggleStateAwaitingSwapChoice
		result.Candidates = candidates
		return result, nil
	}

	benched, found := findCandidate(candidates, input.SwapMemberID)
	if !found {
		return ToggleResult{}, fmt.Errorf("%w: member %s is not a swap candidate for %s", ErrInvalidInput, input.SwapMemberID, member.ID)
	}

	if err := s.setPicked(applyCtx, league.ID, benched, false); err != nil {
		recordSpanError(span, err)
		return ToggleResult{}, err
	}
	if err := s.setPicked(applyCtx, league.ID, member, true); err != nil {
		logger.ErrorContext(ctx, "swap stopped after benching candidate",
			"benched_member_id", benched.ID,
			"error", err,
		)
		err = fmt.Errorf("%w: benched %s but starting %s failed: %w", ErrRosterInconsistent, benched.ID, member.ID, err)
		recordSpanError(span, err)
		return ToggleResult{}, err
	}

	logger.InfoContext(ctx, "roster members swapped", "benched_member_id", benched.ID)
	benched.Picked = false
	result.Member.Picked = true
	result.Applied = true
	result.Benched = &benched
	return result, nil
}

func (s *ToggleService) loadMember(ctx context.Context, input ToggleInput) (roster.League, roster.Member, error) {
	league, err := loadLeague(ctx, s.leagues, input.LeagueID)
	if err != nil {
		return roster.League{}, roster.Member{}, err
	}
	member, err := league.FindMember(input.MemberID, input.IsDefense)
	if err != nil {
		if isMemberNotFound(err) {
			return roster.League{}, roster.Member{}, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		return roster.League{}, roster.Member{}, err
	}
	return league, member, nil
}

func (s *ToggleService) setPicked(ctx context.Context, leagueID string, member roster.Member, picked bool) error {
	err := s.updater.SetPicked(ctx, roster.MemberUpdate{
		LeagueID:  leagueID,
		MemberID:  member.ID,
		IsDefense: member.IsDefense(),
		Picked:    &picked,
	})
	if err != nil {
		return fmt.Errorf("%w: set picked=%t for %s: %w", ErrRosterUpdateFailed, picked, member.ID, err)
	}
	return nil
}

func actionFor(member roster.Member) ToggleAction {
	if member.Picked {
		return ToggleActionBench
	}
	return ToggleActionStart
}

func previewCandidates(league roster.League, member roster.Member) []roster.Member {
	if member.Picked || roster.CanStart(league, member) {
		return nil
	}
	return roster.PlayersToSwapForNewStarter(league, member.Position)
}
