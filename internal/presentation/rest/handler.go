package rest

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/vehiclefin/financing-offer/internal/application/dto"
	"github.com/vehiclefin/financing-offer/internal/application/usecase"
)

// FinancingHandler serves the /api routes.
type FinancingHandler struct {
	uc     usecase.Set
	logger *slog.Logger
}

func NewFinancingHandler(uc usecase.Set, logger *slog.Logger) *FinancingHandler {
	return &FinancingHandler{uc: uc, logger: logger}
}

// RegisterRoutes attaches the API routes to r.
func (h *FinancingHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/auth/login", h.login).Methods(http.MethodPost)
	r.HandleFunc("/auth/register", h.register).Methods(http.MethodPost)
	r.HandleFunc("/countries", h.listCountries).Methods(http.MethodGet)

	r.HandleFunc("/settings", h.getSettings).Methods(http.MethodGet)
	r.HandleFunc("/settings", h.updateSettings).Methods(http.MethodPatch)
	r.HandleFunc("/settings/history", h.settingsHistory).Methods(http.MethodGet)

	r.HandleFunc("/financing-offers", h.simulateOffer).Methods(http.MethodPost)
	r.HandleFunc("/financing-offers", h.listOffers).Methods(http.MethodGet)
	r.HandleFunc("/financing-offers/{id}", h.getOffer).Methods(http.MethodGet)
}

func (h *FinancingHandler) login(w http.ResponseWriter, r *http.Request) {
	var req dto.CredentialsRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	resp, err := h.uc.Login.Execute(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *FinancingHandler) register(w http.ResponseWriter, r *http.Request) {
	var req dto.CredentialsRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	resp, err := h.uc.Register.Execute(r.Context(), req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, resp)
}

func (h *FinancingHandler) listCountries(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.uc.ListCountries.Execute())
}

func (h *FinancingHandler) getSettings(w http.ResponseWriter, r *http.Request) {
	resp, err := h.uc.GetSettings.Execute(r.Context(), dto.GetSettingsRequest{Country: r.URL.Query().Get("country")})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *FinancingHandler) updateSettings(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	var req dto.UpdateSettingsRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	if req.Country == "" {
		req.Country = r.URL.Query().Get("country")
	}
	resp, err := h.uc.UpdateSettings.Execute(r.Context(), actor, req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *FinancingHandler) settingsHistory(w http.ResponseWriter, r *http.Request) {
	resp, err := h.uc.SettingsHistory.Execute(r.Context(), dto.GetSettingsRequest{Country: r.URL.Query().Get("country")})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *FinancingHandler) simulateOffer(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	var req dto.SimulateOfferRequest
	if err := readJSON(w, r, &req); err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	resp, err := h.uc.SimulateOffer.Execute(r.Context(), actor, req)
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *FinancingHandler) listOffers(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	q := r.URL.Query()
	resp, err := h.uc.ListOffers.Execute(r.Context(), actor, dto.ListOffersRequest{
		Country: q.Get("country"),
		DealID:  q.Get("dealId"),
	})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *FinancingHandler) getOffer(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.requireActor(w, r)
	if !ok {
		return
	}
	resp, err := h.uc.GetOffer.Execute(r.Context(), actor, dto.GetOfferRequest{OfferID: mux.Vars(r)["id"]})
	if err != nil {
		writeError(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *FinancingHandler) requireActor(w http.ResponseWriter, r *http.Request) (dto.Actor, bool) {
	actor, ok := actorFrom(r)
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "authentication required"})
	}
	return actor, ok
}
