package httpapi

import (
	"net/http"
	"strings"

	"github.com/riskibarqy/fantasy-roster/internal/usecase"
)

func (h *Handler) GetAdvice(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetAdvice")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	leagueID := strings.TrimSpace(r.PathValue("leagueID"))
	result, err := h.adviceService.Get(ctx, principal, leagueID)
	if err != nil {
		h.logger.WarnContext(ctx, "get advice failed", "league_id", leagueID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, adviceToDTO(result))
}

func (h *Handler) ComparePlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ComparePlayers")
	defer span.End()

	principal, err := requirePrincipal(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	input := usecase.CompareInput{
		LeagueID:  strings.TrimSpace(r.PathValue("leagueID")),
		TargetID:  strings.TrimSpace(r.PathValue("targetID")),
		CompareID: strings.TrimSpace(r.PathValue("compareID")),
		Position:  r.URL.Query().Get("position"),
	}
	result, err := h.adviceService.Compare(ctx, principal, input)
	if err != nil {
		h.logger.WarnContext(ctx, "compare players failed",
			"league_id", input.LeagueID,
			"user_id", principal.UserID,
			"target_id", input.TargetID,
			"compare_id", input.CompareID,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, comparisonToDTO(result))
}
