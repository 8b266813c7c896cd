package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/fantasy-roster/internal/domain/position"
	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
	rostermock "github.com/riskibarqy/fantasy-roster/internal/mocks/domain/roster"
	"github.com/stretchr/testify/mock"
)

func memberUpdate(memberID string) any {
	return mock.MatchedBy(func(u roster.MemberUpdate) bool {
		return u.MemberID == memberID && u.LeagueID == "l1" && u.Picked == nil
	})
}

func fullRBLeague() roster.League {
	return roster.League{
		ID:       "l1",
		Settings: &roster.Settings{RB: 1, WR: 1, Flex: 1, Bench: 1},
		Players: []roster.Member{
			testPlayer("rb1", position.RB, true),
			testPlayer("rb2", position.RB, true),
			testPlayer("wr1", position.WR, false),
			testPlayer("rb3", position.RB, false),
		},
	}
}

func TestRosterService_GetRosterSortsForDisplay(t *testing.T) {
	t.Parallel()

	repo := rostermock.NewRepository(t)
	service := NewRosterService(repo, rostermock.NewUpdater(t), nil, nil, nil)

	league := roster.League{
		ID:       "l1",
		Name:     "Sunday League",
		Settings: &roster.Settings{QB: 1, RB: 1, Bench: 3},
		Players: []roster.Member{
			testPlayer("rb1", position.RB, false),
			testPlayer("qb1", position.QB, false),
			testPlayer("rb2", position.RB, true),
		},
	}
	repo.On("GetLeague", mock.Anything, "l1").Return(league, true, nil).Once()

	got, err := service.GetRoster(context.Background(), "l1")
	if err != nil {
		t.Fatalf("get roster: %v", err)
	}
	want := []string{"qb1", "rb2", "rb1"}
	for i, id := range want {
		if got.Players[i].ID != id {
			t.Fatalf("player %d: got %s want %s", i, got.Players[i].ID, id)
		}
	}
	if got.Occupancy.UsedBench != 1 {
		t.Fatalf("unexpected occupancy: %+v", got.Occupancy)
	}
}

func TestRosterService_PositionQueries(t *testing.T) {
	t.Parallel()

	repo := rostermock.NewRepository(t)
	service := NewRosterService(repo, rostermock.NewUpdater(t), nil, nil, nil)
	repo.On("GetLeague", mock.Anything, "l1").Return(fullRBLeague(), true, nil)

	ctx := context.Background()
	if ok, err := service.HasSpaceFor(ctx, "l1", "rb"); err != nil || ok {
		t.Fatalf("expected no space for RB, ok=%t err=%v", ok, err)
	}
	if ok, err := service.CanStartAt(ctx, "l1", "RB"); err != nil || ok {
		t.Fatalf("expected RB start blocked, ok=%t err=%v", ok, err)
	}
	if ok, err := service.CanStartAt(ctx, "l1", "WR"); err != nil || !ok {
		t.Fatalf("expected WR start allowed, ok=%t err=%v", ok, err)
	}
	candidates, err := service.SwapCandidates(ctx, "l1", "RB")
	if err != nil {
		t.Fatalf("swap candidates: %v", err)
	}
	if len(candidates) != 2 {
		t.Fatalf("expected both started RBs as candidates, got %+v", candidates)
	}
	if _, err := service.HasSpaceFor(ctx, "l1", "FLEX"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected FLEX to be rejected as a member position, got %v", err)
	}
}

func TestRosterService_MissingSettingsIsInvalid(t *testing.T) {
	t.Parallel()

	repo := rostermock.NewRepository(t)
	service := NewRosterService(repo, rostermock.NewUpdater(t), nil, nil, nil)
	repo.On("GetLeague", mock.Anything, "l1").Return(roster.League{ID: "l1"}, true, nil).Once()

	if _, err := service.Occupancy(context.Background(), "l1"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestRosterService_AddMember(t *testing.T) {
	t.Parallel()

	t.Run("adds when space remains", func(t *testing.T) {
		repo := rostermock.NewRepository(t)
		updater := rostermock.NewUpdater(t)
		service := NewRosterService(repo, updater, nil, nil, nil)

		league := fullRBLeague()
		league.Settings = &roster.Settings{RB: 1, WR: 1, Flex: 1, Bench: 2}
		repo.On("GetLeague", mock.Anything, "l1").Return(league, true, nil).Once()
		updater.On("AddMember", mock.Anything, memberUpdate("wr9")).Return(nil).Once()

		got, err := service.AddMember(context.Background(), AddMemberInput{LeagueID: "l1", MemberID: "wr9", Position: "WR"})
		if err != nil {
			t.Fatalf("add member: %v", err)
		}
		if !got.Added || got.NeedsSwap {
			t.Fatalf("unexpected result: %+v", got)
		}
	})

	t.Run("asks for replacement when full", func(t *testing.T) {
		repo := rostermock.NewRepository(t)
		updater := rostermock.NewUpdater(t)
		service := NewRosterService(repo, updater, nil, nil, nil)

		repo.On("GetLeague", mock.Anything, "l1").Return(fullRBLeague(), true, nil).Once()

		got, err := service.AddMember(context.Background(), AddMemberInput{LeagueID: "l1", MemberID: "rb9", Position: "RB"})
		if err != nil {
			t.Fatalf("add member: %v", err)
		}
		if got.Added || !got.NeedsSwap || len(got.Candidates) != 3 {
			t.Fatalf("unexpected result: %+v", got)
		}
	})

	t.Run("replaces named member", func(t *testing.T) {
		repo := rostermock.NewRepository(t)
		updater := rostermock.NewUpdater(t)
		service := NewRosterService(repo, updater, nil, nil, nil)

		repo.On("GetLeague", mock.Anything, "l1").Return(fullRBLeague(), true, nil).Once()
		updater.On("RemoveMember", mock.Anything, memberUpdate("rb3")).Return(nil).Once()
		updater.On("AddMember", mock.Anything, memberUpdate("rb9")).Return(nil).Once()

		got, err := service.AddMember(context.Background(), AddMemberInput{
			LeagueID:        "l1",
			MemberID:        "rb9",
			Position:        "RB",
			ReplaceMemberID: "rb3",
		})
		if err != nil {
			t.Fatalf("add member: %v", err)
		}
		if !got.Added || got.Replaced == nil || got.Replaced.ID != "rb3" {
			t.Fatalf("unexpected result: %+v", got)
		}
	})

	t.Run("add after remove failure is inconsistent", func(t *testing.T) {
		repo := rostermock.NewRepository(t)
		updater := rostermock.NewUpdater(t)
		service := NewRosterService(repo, updater, nil, nil, nil)

		repo.On("GetLeague", mock.Anything, "l1").Return(fullRBLeague(), true, nil).Once()
		updater.On("RemoveMember", mock.Anything, memberUpdate("rb3")).Return(nil).Once()
		updater.On("AddMember", mock.Anything, memberUpdate("rb9")).Return(errors.New("status=500")).Once()

		_, err := service.AddMember(context.Background(), AddMemberInput{
			LeagueID:        "l1",
			MemberID:        "rb9",
			Position:        "RB",
			ReplaceMemberID: "rb3",
		})
		if !errors.Is(err, ErrRosterInconsistent) {
			t.Fatalf("expected ErrRosterInconsistent, got %v", err)
		}
	})

	t.Run("rejects duplicate member", func(t *testing.T) {
		repo := rostermock.NewRepository(t)
		service := NewRosterService(repo, rostermock.NewUpdater(t), nil, nil, nil)
		repo.On("GetLeague", mock.Anything, "l1").Return(fullRBLeague(), true, nil).Once()

		_, err := service.AddMember(context.Background(), AddMemberInput{LeagueID: "l1", MemberID: "rb1", Position: "RB"})
		if !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("rejects unknown position", func(t *testing.T) {
		service := NewRosterService(rostermock.NewRepository(t), rostermock.NewUpdater(t), nil, nil, nil)

		_, err := service.AddMember(context.Background(), AddMemberInput{LeagueID: "l1", MemberID: "x", Position: "LB"})
		if !errors.Is(err, ErrInvalidInput) || !errors.Is(err, roster.ErrUnknownPosition) {
			t.Fatalf("expected unknown position error, got %v", err)
		}
	})
}

func TestRosterService_RemoveMember(t *testing.T) {
	t.Parallel()

	repo := rostermock.NewRepository(t)
	updater := rostermock.NewUpdater(t)
	service := NewRosterService(repo, updater, nil, nil, nil)

	repo.On("GetLeague", mock.Anything, "l1").Return(fullRBLeague(), true, nil)
	updater.On("RemoveMember", mock.Anything, memberUpdate("wr1")).Return(nil).Once()

	if err := service.RemoveMember(context.Background(), RemoveMemberInput{LeagueID: "l1", MemberID: "wr1"}); err != nil {
		t.Fatalf("remove member: %v", err)
	}
	if err := service.RemoveMember(context.Background(), RemoveMemberInput{LeagueID: "l1", MemberID: "ghost"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRosterService_BrowsePlayersAnnotatesPool(t *testing.T) {
	t.Parallel()

	roomy := roster.League{
		ID:       "l1",
		Settings: &roster.Settings{QB: 1, RB: 2, Bench: 2},
		Players:  []roster.Member{testPlayer("rb1", position.RB, true)},
	}
	pool := []roster.Member{
		{ID: "rb1", Name: "Rostered Runner", Kind: roster.KindPlayer, Position: position.RB},
		{ID: "rb8", Name: "Saquon Barkley", Kind: roster.KindPlayer, Position: position.RB},
		{ID: "rb9", Name: "Derrick Henry", Kind: roster.KindPlayer, Position: position.RB},
	}

	tests := []struct {
		name       string
		league     roster.League
		search     string
		wantIDs    []string
		wantCanAdd []bool
		wantStart  bool
	}{
		{
			name:       "room on roster",
			league:     roomy,
			wantIDs:    []string{"rb1", "rb8", "rb9"},
			wantCanAdd: []bool{false, true, true},
			wantStart:  true,
		},
		{
			name:       "search matches name ignoring case",
			league:     roomy,
			search:     "  HENRY ",
			wantIDs:    []string{"rb9"},
			wantCanAdd: []bool{true},
			wantStart:  true,
		},
		{
			name:       "full roster",
			league:     fullRBLeague(),
			wantIDs:    []string{"rb1", "rb8", "rb9"},
			wantCanAdd: []bool{false, false, false},
			wantStart:  false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			repo := rostermock.NewRepository(t)
			players := rostermock.NewPlayerPool(t)
			service := NewRosterService(repo, rostermock.NewUpdater(t), players, nil, nil)

			repo.On("GetLeague", mock.Anything, "l1").Return(tc.league, true, nil).Once()
			players.On("ListPlayersByPosition", mock.Anything, position.RB).Return(pool, nil).Once()

			got, err := service.BrowsePlayers(context.Background(), "l1", "rb", tc.search)
			if err != nil {
				t.Fatalf("browse players: %v", err)
			}
			if got.Position != position.RB || len(got.Players) != len(tc.wantIDs) {
				t.Fatalf("unexpected browse: %+v", got)
			}
			for i, p := range got.Players {
				if p.Member.ID != tc.wantIDs[i] {
					t.Fatalf("player %d: got %s want %s", i, p.Member.ID, tc.wantIDs[i])
				}
				if p.CanAdd != tc.wantCanAdd[i] {
					t.Fatalf("player %s: can add %t want %t", p.Member.ID, p.CanAdd, tc.wantCanAdd[i])
				}
				if p.OnRoster != (p.Member.ID == "rb1") {
					t.Fatalf("player %s: on roster %t", p.Member.ID, p.OnRoster)
				}
				if p.CanStart != tc.wantStart {
					t.Fatalf("player %s: can start %t want %t", p.Member.ID, p.CanStart, tc.wantStart)
				}
			}
		})
	}
}

func TestRosterService_BrowsePlayersRejectsUnknownPosition(t *testing.T) {
	t.Parallel()

	players := rostermock.NewPlayerPool(t)
	service := NewRosterService(rostermock.NewRepository(t), rostermock.NewUpdater(t), players, nil, nil)

	_, err := service.BrowsePlayers(context.Background(), "l1", "FLEX", "")
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	players.AssertNotCalled(t, "ListPlayersByPosition", mock.Anything, mock.Anything)
}

func TestRosterService_BrowsePlayersPropagatesPoolFailure(t *testing.T) {
	t.Parallel()

	repo := rostermock.NewRepository(t)
	players := rostermock.NewPlayerPool(t)
	service := NewRosterService(repo, rostermock.NewUpdater(t), players, nil, nil)

	repo.On("GetLeague", mock.Anything, "l1").Return(fullRBLeague(), true, nil).Once()
	players.On("ListPlayersByPosition", mock.Anything, position.WR).Return(nil, ErrDependencyUnavailable).Once()

	_, err := service.BrowsePlayers(context.Background(), "l1", "WR", "")
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
}
