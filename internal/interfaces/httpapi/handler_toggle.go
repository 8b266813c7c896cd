package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fantasy-roster/internal/usecase"
)

// ToggleMember drives the start/bench workflow. The first call without
// confirmed=true only previews; a confirmed call applies the change or asks
// for a swap_member_id when every slot is taken.
func (h *Handler) ToggleMember(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ToggleMember")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	memberID := strings.TrimSpace(r.PathValue("memberID"))
	var req toggleMemberRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.toggleService.Toggle(ctx, usecase.ToggleInput{
		UserID:       principal.UserID,
		LeagueID:     leagueID,
		MemberID:     memberID,
		IsDefense:    req.IsDefense,
		SwapMemberID: strings.TrimSpace(req.SwapMemberID),
		Confirmed:    req.Confirmed,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "toggle roster member failed",
			"league_id", leagueID,
			"user_id", principal.UserID,
			"member_id", memberID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, toggleResultToDTO(result))
}
