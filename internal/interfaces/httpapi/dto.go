package httpapi

import (
	"encoding/json"

	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
	"github.com/riskibarqy/fantasy-roster/internal/usecase"
)

type memberDTO struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	TeamID   string `json:"team_id,omitempty"`
	Kind     string `json:"kind"`
	Position string `json:"position"`
	Picked   bool   `json:"picked"`
}

type rosterSettingsDTO struct {
	QB    int `json:"qb"`
	RB    int `json:"rb"`
	WR    int `json:"wr"`
	TE    int `json:"te"`
	K     int `json:"k"`
	DEF   int `json:"def"`
	Flex  int `json:"flex"`
	Bench int `json:"bench"`
	IR    int `json:"ir"`
}

type occupancyDTO struct {
	PerPosition    map[string]int `json:"per_position"`
	UsedFlex       int            `json:"used_flex"`
	UsedBench      int            `json:"used_bench"`
	BenchRemaining int            `json:"bench_remaining"`
}

type rosterDTO struct {
	LeagueID   string             `json:"league_id"`
	LeagueName string             `json:"league_name"`
	Settings   *rosterSettingsDTO `json:"settings"`
	Players    []memberDTO        `json:"players"`
	Defenses   []memberDTO        `json:"defenses"`
	Occupancy  occupancyDTO       `json:"occupancy"`
}

type positionCheckDTO struct {
	LeagueID string `json:"league_id"`
	Position string `json:"position"`
	Allowed  bool   `json:"allowed"`
}

type swapCandidatesDTO struct {
	LeagueID   string      `json:"league_id"`
	Position   string      `json:"position"`
	Candidates []memberDTO `json:"candidates"`
}

type addMemberRequest struct {
	MemberID        string `json:"member_id" validate:"required,max=128"`
	IsDefense       bool   `json:"is_defense"`
	Position        string `json:"position" validate:"required_unless=IsDefense true,max=8"`
	ReplaceMemberID string `json:"replace_member_id" validate:"omitempty,max=128"`
}

type addMemberResultDTO struct {
	Added      bool        `json:"added"`
	NeedsSwap  bool        `json:"needs_swap"`
	Replaced   *memberDTO  `json:"replaced,omitempty"`
	Candidates []memberDTO `json:"candidates"`
}

type toggleMemberRequest struct {
	IsDefense    bool   `json:"is_defense"`
	Confirmed    bool   `json:"confirmed"`
	SwapMemberID string `json:"swap_member_id" validate:"omitempty,max=128"`
}

type toggleResultDTO struct {
	OperationID string      `json:"operation_id,omitempty"`
	State       string      `json:"state"`
	Action      string      `json:"action"`
	Member      memberDTO   `json:"member"`
	Applied     bool        `json:"applied"`
	Benched     *memberDTO  `json:"benched,omitempty"`
	Candidates  []memberDTO `json:"candidates"`
}

type adviceDTO struct {
	LeagueID  string            `json:"league_id"`
	PlayerIDs []string          `json:"player_ids"`
	Cached    bool              `json:"cached"`
	Advice    []json.RawMessage `json:"advice"`
}

type poolPlayerDTO struct {
	memberDTO
	OnRoster bool `json:"on_roster"`
	CanAdd   bool `json:"can_add"`
	CanStart bool `json:"can_start"`
}

type playerBrowseDTO struct {
	LeagueID string          `json:"league_id"`
	Position string          `json:"position"`
	Players  []poolPlayerDTO `json:"players"`
}

type recommendationDTO struct {
	Position  string `json:"position"`
	PlayerID  string `json:"player_id"`
	Picked    bool   `json:"picked"`
	Reasoning string `json:"reasoning"`
}

type comparisonDTO struct {
	LeagueID        string              `json:"league_id"`
	TargetID        string              `json:"target_id"`
	CompareID       string              `json:"compare_id"`
	Position        string              `json:"position"`
	Recommendations []recommendationDTO `json:"recommendations"`
}

type positionStatusDTO struct {
	Position       string `json:"position"`
	Capacity       int    `json:"capacity"`
	Started        int    `json:"started"`
	CanAdd         bool   `json:"can_add"`
	CanStart       bool   `json:"can_start"`
	SwapCandidates int    `json:"swap_candidates"`
}

type leagueOverviewDTO struct {
	LeagueID     string              `json:"league_id"`
	LeagueName   string              `json:"league_name"`
	MemberCount  int                 `json:"member_count"`
	StartedCount int                 `json:"started_count"`
	Occupancy    occupancyDTO        `json:"occupancy"`
	Positions    []positionStatusDTO `json:"positions"`
	Problem      string              `json:"problem,omitempty"`
}

func memberToDTO(m roster.Member) memberDTO {
	return memberDTO{
		ID:       m.ID,
		Name:     m.Name,
		TeamID:   m.TeamID,
		Kind:     string(m.Kind),
		Position: m.Position.String(),
		Picked:   m.Picked,
	}
}

func membersToDTO(items []roster.Member) []memberDTO {
	out := make([]memberDTO, 0, len(items))
	for _, m := range items {
		out = append(out, memberToDTO(m))
	}
	return out
}

func optionalMemberToDTO(m *roster.Member) *memberDTO {
	if m == nil {
		return nil
	}
	dto := memberToDTO(*m)
	return &dto
}

func settingsToDTO(s *roster.Settings) *rosterSettingsDTO {
	if s == nil {
		return nil
	}
	return &rosterSettingsDTO{
		QB:    s.QB,
		RB:    s.RB,
		WR:    s.WR,
		TE:    s.TE,
		K:     s.K,
		DEF:   s.DEF,
		Flex:  s.Flex,
		Bench: s.Bench,
		IR:    s.IR,
	}
}

func occupancyToDTO(o roster.Occupancy) occupancyDTO {
	perPosition := make(map[string]int, len(o.PerPosition))
	for pos, count := range o.PerPosition {
		perPosition[pos.String()] = count
	}
	return occupancyDTO{
		PerPosition:    perPosition,
		UsedFlex:       o.UsedFlex,
		UsedBench:      o.UsedBench,
		BenchRemaining: o.BenchRemaining,
	}
}

func rosterToDTO(v usecase.RosterView) rosterDTO {
	return rosterDTO{
		LeagueID:   v.LeagueID,
		LeagueName: v.Name,
		Settings:   settingsToDTO(v.Settings),
		Players:    membersToDTO(v.Players),
		Defenses:   membersToDTO(v.Defenses),
		Occupancy:  occupancyToDTO(v.Occupancy),
	}
}

func addResultToDTO(v usecase.AddResult) addMemberResultDTO {
	return addMemberResultDTO{
		Added:      v.Added,
		NeedsSwap:  v.NeedsSwap,
		Replaced:   optionalMemberToDTO(v.Replaced),
		Candidates: membersToDTO(v.Candidates),
	}
}

func toggleResultToDTO(v usecase.ToggleResult) toggleResultDTO {
	return toggleResultDTO{
		OperationID: v.OperationID,
		State:       string(v.State),
		Action:      string(v.Action),
		Member:      memberToDTO(v.Member),
		Applied:     v.Applied,
		Benched:     optionalMemberToDTO(v.Benched),
		Candidates:  membersToDTO(v.Candidates),
	}
}

func adviceToDTO(v usecase.AdviceResult) adviceDTO {
	items := make([]json.RawMessage, 0, len(v.Items))
	for _, item := range v.Items {
		items = append(items, json.RawMessage(item))
	}
	playerIDs := v.PlayerIDs
	if playerIDs == nil {
		playerIDs = []string{}
	}
	return adviceDTO{
		LeagueID:  v.LeagueID,
		PlayerIDs: playerIDs,
		Cached:    v.Cached,
		Advice:    items,
	}
}

func browseToDTO(v usecase.PlayerBrowse) playerBrowseDTO {
	players := make([]poolPlayerDTO, 0, len(v.Players))
	for _, p := range v.Players {
		players = append(players, poolPlayerDTO{
			memberDTO: memberToDTO(p.Member),
			OnRoster:  p.OnRoster,
			CanAdd:    p.CanAdd,
			CanStart:  p.CanStart,
		})
	}
	return playerBrowseDTO{
		LeagueID: v.LeagueID,
		Position: v.Position.String(),
		Players:  players,
	}
}

func comparisonToDTO(v usecase.ComparisonResult) comparisonDTO {
	recs := make([]recommendationDTO, 0, len(v.Recommendations))
	for _, r := range v.Recommendations {
		recs = append(recs, recommendationDTO{
			Position:  r.Position,
			PlayerID:  r.PlayerID,
			Picked:    r.Picked,
			Reasoning: r.Reasoning,
		})
	}
	return comparisonDTO{
		LeagueID:        v.LeagueID,
		TargetID:        v.TargetID,
		CompareID:       v.CompareID,
		Position:        v.Position.String(),
		Recommendations: recs,
	}
}

func overviewToDTO(v usecase.LeagueOverview) leagueOverviewDTO {
	positions := make([]positionStatusDTO, 0, len(v.Positions))
	for _, p := range v.Positions {
		positions = append(positions, positionStatusDTO{
			Position:       p.Position.String(),
			Capacity:       p.Capacity,
			Started:        p.Started,
			CanAdd:         p.CanAdd,
			CanStart:       p.CanStart,
			SwapCandidates: p.SwapCandidates,
		})
	}
	return leagueOverviewDTO{
		LeagueID:     v.LeagueID,
		LeagueName:   v.LeagueName,
		MemberCount:  v.MemberCount,
		StartedCount: v.StartedCount,
		Occupancy:    occupancyToDTO(v.Occupancy),
		Positions:    positions,
		Problem:      v.Problem,
	}
}
