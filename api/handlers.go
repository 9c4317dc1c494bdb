package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"fortuna/application"
	"fortuna/domain/entities"

	"github.com/google/uuid"
)

// Handler exposes the platform operations over HTTP. Authentication is
// out of scope; the calling user is identified by the X-User-ID header
// set by the gateway in front of this service.
type Handler struct {
	games *application.GameService
	users *application.UserService
}

// NewHandler creates a new HTTP handler set
func NewHandler(games *application.GameService, users *application.UserService) *Handler {
	return &Handler{games: games, users: users}
}

// userID extracts the calling user from the X-User-ID header.
func userID(r *http.Request) (int64, error) {
	raw := r.Header.Get("X-User-ID")
	if raw == "" {
		return 0, fmt.Errorf("missing X-User-ID header")
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid X-User-ID header")
	}
	return id, nil
}

func decode[T any](r *http.Request) (T, error) {
	var payload T
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return payload, fmt.Errorf("invalid request body: %w", err)
	}
	return payload, nil
}

type registerRequest struct {
	Username string `json:"username"`
}

// Register creates a new account with the starting balance.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	payload, err := decode[registerRequest](r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	user, err := h.users.Register(r.Context(), payload.Username)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, user)
}

// Profile returns the calling user's account and lifetime wagered total.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	profile, err := h.users.GetProfile(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, profile)
}

// History returns the calling user's recent ledger entries.
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	transactions, err := h.users.GetHistory(r.Context(), id, limit)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, transactions)
}

type amountRequest struct {
	Amount int64 `json:"amount"`
}

// SlotsSpin runs one slot machine spin.
func (h *Handler) SlotsSpin(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	payload, err := decode[amountRequest](r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := h.games.PlaySlots(r.Context(), id, payload.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// DiceRoll runs one dice roll against the requested target.
func (h *Handler) DiceRoll(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	bet, err := decode[entities.DiceBet](r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := h.games.PlayDice(r.Context(), id, bet)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type rouletteRequest struct {
	Bets []entities.RouletteBet `json:"bets"`
}

// RouletteSpin spins the wheel once against a slate of bets.
func (h *Handler) RouletteSpin(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	payload, err := decode[rouletteRequest](r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := h.games.PlayRoulette(r.Context(), id, payload.Bets)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// PlinkoDrop drops one ball at the requested risk tier.
func (h *Handler) PlinkoDrop(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	bet, err := decode[entities.PlinkoBet](r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := h.games.PlayPlinko(r.Context(), id, bet)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// CrashStart opens a crash round and debits the stake.
func (h *Handler) CrashStart(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	payload, err := decode[amountRequest](r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := h.games.StartCrash(r.Context(), id, payload.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type crashCashoutRequest struct {
	RoundID      uuid.UUID `json:"roundId"`
	CashoutPoint float64   `json:"cashoutPoint"`
}

// CrashCashout settles an active crash round.
func (h *Handler) CrashCashout(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	payload, err := decode[crashCashoutRequest](r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := h.games.CashoutCrash(r.Context(), id, payload.RoundID, payload.CashoutPoint)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// BlackjackDeal starts a blackjack round.
func (h *Handler) BlackjackDeal(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	payload, err := decode[amountRequest](r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := h.games.StartBlackjack(r.Context(), id, payload.Amount)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

type blackjackActionRequest struct {
	State     *entities.BlackjackState `json:"state"`
	Action    entities.BlackjackAction `json:"action"`
	HandIndex int                      `json:"handIndex"`
}

// BlackjackAction applies one player action to an in-flight round.
func (h *Handler) BlackjackAction(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	payload, err := decode[blackjackActionRequest](r)
	if err != nil || payload.State == nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	result, err := h.games.BlackjackAction(r.Context(), id, payload.State, payload.Action, payload.HandIndex)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// StreakClaim pays the daily streak reward.
func (h *Handler) StreakClaim(w http.ResponseWriter, r *http.Request) {
	id, err := userID(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}

	result, err := h.games.ClaimStreak(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}
