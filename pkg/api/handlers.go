// Package api exposes the HTTP surface of the service and maps the
// portal error taxonomy onto response codes and fixed messages. Raw
// internal error text never reaches a response body; phase failures are
// logged server-side and answered with their generic message.
package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/owornex/ssotica-api/pkg/browser"
	"github.com/owornex/ssotica-api/pkg/installment"
	"github.com/owornex/ssotica-api/pkg/portal"
)

// External messages, fixed per outcome. User-facing text stays in
// Portuguese to match the portal the service fronts.
const (
	msgMissingName       = "Nome do cliente é obrigatório"
	msgMissingVenda      = "Número da venda é obrigatório"
	msgMissingVencimento = "Data de vencimento é obrigatória"

	msgNoInstallments = "Nenhuma parcela encontrada."
	msgNoEligible     = "Nenhuma parcela em aberto ou em atraso com data de vencimento válida encontrada."

	msgNoResultsForClient = "Nenhuma parcela encontrada para este cliente."
	msgRecordNotFound     = "Parcela não encontrada para os dados informados."

	msgLoginFailed      = "Falha ao realizar login no sistema externo."
	msgNavigationFailed = "Falha ao navegar ou buscar dados no sistema externo."
	msgControlNotFound  = "Não foi encontrado o controle de baixa na parcela."
	msgInvocationFailed = "Falha ao executar a baixa da parcela."

	msgBrowserNotReady = "Navegador não está pronto. Tente novamente em instantes."

	msgSettleAccepted = "Baixa solicitada com sucesso."
)

// InstallmentService is what the handlers need from the portal layer.
type InstallmentService interface {
	Ready() bool
	CurrentInstallment(name string) (installment.Installment, error)
	Settle(name, venda, vencimento string) error
}

// Handler holds the HTTP handlers for the API.
type Handler struct {
	svc InstallmentService
	log *zap.Logger
}

// NewHandler creates the handler set.
func NewHandler(svc InstallmentService, log *zap.Logger) *Handler {
	return &Handler{svc: svc, log: log.Named("api")}
}

// NewRouter builds the service router.
func NewRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/health", h.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/api/consultar", h.handleConsultar).Methods(http.MethodPost)
	r.HandleFunc("/api/baixar", h.handleBaixar).Methods(http.MethodPost)
	return r
}

type consultarRequest struct {
	Nome string `json:"nome"`
}

type baixarRequest struct {
	Nome       string `json:"nome"`
	Venda      string `json:"venda"`
	Vencimento string `json:"vencimento"`
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "ok",
		"browserReady": h.svc.Ready(),
	})
}

func (h *Handler) handleConsultar(w http.ResponseWriter, r *http.Request) {
	var req consultarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Nome == "" {
		writeError(w, http.StatusBadRequest, msgMissingName)
		return
	}

	parcela, err := h.svc.CurrentInstallment(req.Nome)
	if err != nil {
		h.respondConsultarError(w, req.Nome, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cliente":       req.Nome,
		"parcela_atual": parcela,
	})
}

func (h *Handler) respondConsultarError(w http.ResponseWriter, nome string, err error) {
	switch {
	case errors.Is(err, browser.ErrNotReady):
		writeError(w, http.StatusServiceUnavailable, msgBrowserNotReady)
	case errors.Is(err, portal.ErrNoRecords):
		h.log.Info("no installments found", zap.String("cliente", nome))
		writeMessage(w, http.StatusNotFound, msgNoInstallments)
	case errors.Is(err, portal.ErrNoEligibleRecords):
		h.log.Info("no eligible installments", zap.String("cliente", nome))
		writeMessage(w, http.StatusNotFound, msgNoEligible)
	default:
		h.logPhaseFailure(nome, err)
		if phase, ok := portal.FailedPhase(err); ok && phase == portal.PhaseLogin {
			writeError(w, http.StatusInternalServerError, msgLoginFailed)
			return
		}
		writeError(w, http.StatusInternalServerError, msgNavigationFailed)
	}
}

func (h *Handler) handleBaixar(w http.ResponseWriter, r *http.Request) {
	var req baixarRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, msgMissingName)
		return
	}
	switch {
	case req.Nome == "":
		writeError(w, http.StatusBadRequest, msgMissingName)
		return
	case req.Venda == "":
		writeError(w, http.StatusBadRequest, msgMissingVenda)
		return
	case req.Vencimento == "":
		writeError(w, http.StatusBadRequest, msgMissingVencimento)
		return
	}

	if err := h.svc.Settle(req.Nome, req.Venda, req.Vencimento); err != nil {
		h.respondBaixarError(w, req, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": msgSettleAccepted,
	})
}

func (h *Handler) respondBaixarError(w http.ResponseWriter, req baixarRequest, err error) {
	switch {
	case errors.Is(err, browser.ErrNotReady):
		writeError(w, http.StatusServiceUnavailable, msgBrowserNotReady)
	case errors.Is(err, portal.ErrNoResultsForClient):
		h.log.Info("no results for client", zap.String("cliente", req.Nome))
		writeMessage(w, http.StatusNotFound, msgNoResultsForClient)
	case errors.Is(err, portal.ErrRecordNotFound):
		h.log.Info("installment not found",
			zap.String("cliente", req.Nome),
			zap.String("venda", req.Venda),
			zap.String("vencimento", req.Vencimento))
		writeMessage(w, http.StatusNotFound, msgRecordNotFound)
	case errors.Is(err, portal.ErrControlNotFound):
		h.log.Error("settle control not found",
			zap.String("cliente", req.Nome), zap.String("venda", req.Venda))
		writeError(w, http.StatusInternalServerError, msgControlNotFound)
	case errors.Is(err, portal.ErrInvocationFailed):
		h.log.Error("settle invocation failed",
			zap.String("cliente", req.Nome), zap.Error(err))
		writeError(w, http.StatusInternalServerError, msgInvocationFailed)
	default:
		h.logPhaseFailure(req.Nome, err)
		if phase, ok := portal.FailedPhase(err); ok && phase == portal.PhaseLogin {
			writeError(w, http.StatusInternalServerError, msgLoginFailed)
			return
		}
		writeError(w, http.StatusInternalServerError, msgNavigationFailed)
	}
}

// logPhaseFailure records the underlying automation error server-side.
// The detail stays out of the response body.
func (h *Handler) logPhaseFailure(nome string, err error) {
	phase, _ := portal.FailedPhase(err)
	h.log.Error("portal automation failed",
		zap.String("cliente", nome),
		zap.String("phase", string(phase)),
		zap.Error(err))
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"message": msg})
}
