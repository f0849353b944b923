package handlers

import (
	"net/http"

	"github.com/Dosada05/magic-tournament/middleware"
	"github.com/Dosada05/magic-tournament/services"
)

type DeckHandler struct {
	deckService services.DeckService
}

func NewDeckHandler(ds services.DeckService) *DeckHandler {
	return &DeckHandler{deckService: ds}
}

// ListDecks godoc
// @Summary Список колод
// @Tags decks
// @Produce json
// @Param player_id query int false "Только колоды этого игрока"
// @Success 200 {array} models.Deck
// @Router /decks [get]
func (h *DeckHandler) ListDecks(w http.ResponseWriter, r *http.Request) {
	ownerID, err := optionalIntQuery(r, "player_id")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	h.writeDecks(w, r, ownerID)
}

// ListPlayerDecks обрабатывает GET /players/{playerID}/decks
func (h *DeckHandler) ListPlayerDecks(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "playerID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	h.writeDecks(w, r, &id)
}

func (h *DeckHandler) writeDecks(w http.ResponseWriter, r *http.Request, ownerID *int) {
	decks, err := h.deckService.ListDecks(r.Context(), ownerID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"decks": decks}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DeckHandler) GetDeck(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "deckID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	deck, err := h.deckService.GetDeck(r.Context(), id)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"deck": deck}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// CreateDeck создаёт колоду от имени текущего игрока.
func (h *DeckHandler) CreateDeck(w http.ResponseWriter, r *http.Request) {
	currentPlayerID, err := middleware.GetPlayerIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current player")
		return
	}

	var input services.DeckInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	deck, err := h.deckService.CreateDeck(r.Context(), currentPlayerID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"deck": deck}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DeckHandler) UpdateDeck(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "deckID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentPlayerID, err := middleware.GetPlayerIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current player")
		return
	}

	var input services.UpdateDeckInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	deck, err := h.deckService.UpdateDeck(r.Context(), id, currentPlayerID, input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"deck": deck}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *DeckHandler) DeleteDeck(w http.ResponseWriter, r *http.Request) {
	id, err := getIDFromURL(r, "deckID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	currentPlayerID, err := middleware.GetPlayerIDFromContext(r.Context())
	if err != nil {
		unauthorizedResponse(w, r, "failed to identify current player")
		return
	}

	if err := h.deckService.DeleteDeck(r.Context(), id, currentPlayerID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
