package backend

import (
	"strings"

	"github.com/riskibarqy/fantasy-roster/internal/domain/advice"
	"github.com/riskibarqy/fantasy-roster/internal/domain/position"
	"github.com/riskibarqy/fantasy-roster/internal/domain/roster"
	"github.com/riskibarqy/fantasy-roster/internal/domain/user"
)

type userDataResponse struct {
	UserInfo userInfoDTO `json:"userInfo"`
	Leagues  []leagueDTO `json:"leagues"`
}

type userInfoDTO struct {
	ID         string  `json:"id"`
	Email      string  `json:"email"`
	FullName   *string `json:"fullname"`
	TokensLeft int     `json:"tokens_left"`
}

type leagueDTO struct {
	LeagueID       string             `json:"leagueId"`
	LeagueName     string             `json:"leagueName"`
	RosterSettings *rosterSettingsDTO `json:"rosterSettings"`
	Players        []playerEntryDTO   `json:"players"`
	Defenses       []defenseEntryDTO  `json:"defenses"`
}

type rosterSettingsDTO struct {
	QB    int `json:"qb_count"`
	RB    int `json:"rb_count"`
	WR    int `json:"wr_count"`
	TE    int `json:"te_count"`
	K     int `json:"k_count"`
	DEF   int `json:"def_count"`
	Flex  int `json:"flex_count"`
	Bench int `json:"bench_count"`
	IR    int `json:"ir_count"`
}

type playerEntryDTO struct {
	Player playerInfoDTO `json:"player"`
	Picked bool          `json:"picked"`
}

type playerInfoDTO struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Position string  `json:"position"`
	TeamID   *string `json:"team_id"`
}

type defenseEntryDTO struct {
	Team   teamInfoDTO `json:"team"`
	Picked bool        `json:"picked"`
}

type teamInfoDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type memberMutationRequest struct {
	LeagueID  string `json:"leagueId"`
	MemberID  string `json:"memberId"`
	IsDefense bool   `json:"isDefense"`
	Picked    *bool  `json:"picked,omitempty"`
}

type adviceEnvelope struct {
	Advice []advice.Item `json:"advice"`
}

type comparisonResponse struct {
	Recommendations []advice.Recommendation `json:"recommendations"`
}

func (u userInfoDTO) toDomain() user.Principal {
	out := user.Principal{
		UserID:     strings.TrimSpace(u.ID),
		Email:      strings.TrimSpace(u.Email),
		TokensLeft: u.TokensLeft,
	}
	if u.FullName != nil {
		out.FullName = strings.TrimSpace(*u.FullName)
	}
	return out
}

func (l leagueDTO) toDomain() roster.League {
	out := roster.League{
		ID:       l.LeagueID,
		Name:     l.LeagueName,
		Players:  make([]roster.Member, 0, len(l.Players)),
		Defenses: make([]roster.Member, 0, len(l.Defenses)),
	}
	if l.RosterSettings != nil {
		s := l.RosterSettings.toDomain()
		out.Settings = &s
	}
	for _, item := range l.Players {
		out.Players = append(out.Players, item.toDomain())
	}
	for _, item := range l.Defenses {
		out.Defenses = append(out.Defenses, item.toDomain())
	}
	return out
}

func (s rosterSettingsDTO) toDomain() roster.Settings {
	return roster.Settings{
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

func (p playerEntryDTO) toDomain() roster.Member {
	pos, ok := position.Parse(p.Player.Position)
	if !ok {
		// Unknown positions stay as listed; allocation benches them.
		pos = position.Position(strings.ToUpper(strings.TrimSpace(p.Player.Position)))
	}
	member := roster.Member{
		ID:       p.Player.ID,
		Name:     p.Player.Name,
		Kind:     roster.KindPlayer,
		Position: pos,
		Picked:   p.Picked,
	}
	if p.Player.TeamID != nil {
		member.TeamID = *p.Player.TeamID
	}
	return member
}

func (d defenseEntryDTO) toDomain() roster.Member {
	return roster.Member{
		ID:       d.Team.ID,
		Name:     d.Team.Name,
		TeamID:   d.Team.ID,
		Kind:     roster.KindDefense,
		Position: position.DEF,
		Picked:   d.Picked,
	}
}

func mutationFromUpdate(update roster.MemberUpdate) memberMutationRequest {
	return memberMutationRequest{
		LeagueID:  update.LeagueID,
		MemberID:  update.MemberID,
		IsDefense: update.IsDefense,
		Picked:    update.Picked,
	}
}
