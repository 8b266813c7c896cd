package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fantasy-roster/internal/usecase"
)

func (h *Handler) GetRoster(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetRoster")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	view, err := h.rosterService.GetRoster(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get roster failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, rosterToDTO(view))
}

func (h *Handler) GetOccupancy(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOccupancy")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	occupancy, err := h.rosterService.Occupancy(ctx, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get occupancy failed", "league_id", leagueID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, occupancyToDTO(occupancy))
}

func (h *Handler) GetSpace(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetSpace")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	rawPosition := r.URL.Query().Get("position")
	allowed, err := h.rosterService.HasSpaceFor(ctx, leagueID, rawPosition)
	if err != nil {
		h.logger.WarnContext(ctx, "check roster space failed", "league_id", leagueID, "position", rawPosition, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, positionCheckDTO{
		LeagueID: leagueID,
		Position: strings.ToUpper(strings.TrimSpace(rawPosition)),
		Allowed:  allowed,
	})
}

func (h *Handler) GetStartEligibility(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStartEligibility")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	rawPosition := r.URL.Query().Get("position")
	allowed, err := h.rosterService.CanStartAt(ctx, leagueID, rawPosition)
	if err != nil {
		h.logger.WarnContext(ctx, "check start eligibility failed", "league_id", leagueID, "position", rawPosition, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, positionCheckDTO{
		LeagueID: leagueID,
		Position: strings.ToUpper(strings.TrimSpace(rawPosition)),
		Allowed:  allowed,
	})
}

func (h *Handler) ListSwapCandidates(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSwapCandidates")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	rawPosition := r.URL.Query().Get("position")
	candidates, err := h.rosterService.SwapCandidates(ctx, leagueID, rawPosition)
	if err != nil {
		h.logger.WarnContext(ctx, "list swap candidates failed", "league_id", leagueID, "position", rawPosition, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, swapCandidatesDTO{
		LeagueID:   leagueID,
		Position:   strings.ToUpper(strings.TrimSpace(rawPosition)),
		Candidates: membersToDTO(candidates),
	})
}

func (h *Handler) BrowsePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.BrowsePlayers")
	defer span.End()

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	query := r.URL.Query()
	rawPosition := query.Get("position")
	browse, err := h.rosterService.BrowsePlayers(ctx, leagueID, rawPosition, query.Get("search"))
	if err != nil {
		h.logger.WarnContext(ctx, "browse players failed", "league_id", leagueID, "position", rawPosition, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, browseToDTO(browse))
}

func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddMember")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	var req addMemberRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.rosterService.AddMember(ctx, usecase.AddMemberInput{
		UserID:          principal.UserID,
		LeagueID:        leagueID,
		MemberID:        strings.TrimSpace(req.MemberID),
		IsDefense:       req.IsDefense,
		Position:        req.Position,
		ReplaceMemberID: strings.TrimSpace(req.ReplaceMemberID),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "add roster member failed",
			"league_id", leagueID,
			"user_id", principal.UserID,
			"member_id", req.MemberID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if result.Added {
		status = http.StatusCreated
	}
	writeSuccess(ctx, w, status, addResultToDTO(result))
}

func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveMember")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	memberID := strings.TrimSpace(r.PathValue("memberID"))
	isDefense, err := parseOptionalBool(r.URL.Query().Get("is_defense"), "is_defense")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.rosterService.RemoveMember(ctx, usecase.RemoveMemberInput{
		UserID:    principal.UserID,
		LeagueID:  leagueID,
		MemberID:  memberID,
		IsDefense: isDefense,
	}); err != nil {
		h.logger.WarnContext(ctx, "remove roster member failed",
			"league_id", leagueID,
			"user_id", principal.UserID,
			"member_id", memberID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"member_id": memberID, "status": "removed"})
}

func (h *Handler) ListOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListOverview")
	defer span.End()

	overviews, err := h.overviewService.List(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list overview failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]leagueOverviewDTO, 0, len(overviews))
	for _, item := range overviews {
		items = append(items, overviewToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}
