package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/owornex/ssotica-api/pkg/browser"
	"github.com/owornex/ssotica-api/pkg/installment"
	"github.com/owornex/ssotica-api/pkg/portal"
)

// stubService scripts the portal layer for handler tests.
type stubService struct {
	ready      bool
	parcela    installment.Installment
	lookupErr  error
	settleErr  error
	settleArgs []string
}

func (s *stubService) Ready() bool { return s.ready }

func (s *stubService) CurrentInstallment(name string) (installment.Installment, error) {
	if s.lookupErr != nil {
		return installment.Installment{}, s.lookupErr
	}
	return s.parcela, nil
}

func (s *stubService) Settle(name, venda, vencimento string) error {
	s.settleArgs = []string{name, venda, vencimento}
	return s.settleErr
}

func doRequest(t *testing.T, svc InstallmentService, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	NewRouter(NewHandler(svc, zap.NewNop())).ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestConsultar_Success(t *testing.T) {
	svc := &stubService{
		ready: true,
		parcela: installment.Installment{
			Descricao:  "MANUTENCAO DE SISTEMA",
			Venda:      "12345",
			Valor:      "R$ 100,00",
			Vencimento: "10/11/2024",
			Status:     "EM ATRASO",
		},
	}

	rec := doRequest(t, svc, http.MethodPost, "/api/consultar", map[string]string{"nome": "Cliente Com Dados"})

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Cliente Com Dados", body["cliente"])

	parcela, ok := body["parcela_atual"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "10/11/2024", parcela["vencimento"])
	assert.Equal(t, "EM ATRASO", parcela["status"])
}

func TestConsultar_MissingName(t *testing.T) {
	tests := []struct {
		name string
		body interface{}
	}{
		{"empty object", map[string]string{}},
		{"empty name", map[string]string{"nome": ""}},
		{"no body", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &stubService{ready: true}, http.MethodPost, "/api/consultar", tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, msgMissingName, decodeBody(t, rec)["error"])
		})
	}
}

func TestConsultar_NotFoundMessagesAreDistinct(t *testing.T) {
	noRecords := doRequest(t, &stubService{lookupErr: portal.ErrNoRecords},
		http.MethodPost, "/api/consultar", map[string]string{"nome": "Sem Parcelas"})
	require.Equal(t, http.StatusNotFound, noRecords.Code)
	assert.Equal(t, msgNoInstallments, decodeBody(t, noRecords)["message"])

	noEligible := doRequest(t, &stubService{lookupErr: portal.ErrNoEligibleRecords},
		http.MethodPost, "/api/consultar", map[string]string{"nome": "Tudo Pago"})
	require.Equal(t, http.StatusNotFound, noEligible.Code)
	assert.Equal(t, msgNoEligible, decodeBody(t, noEligible)["message"])
}

func TestConsultar_LoginAndNavigationFailuresAreDistinct(t *testing.T) {
	loginErr := &portal.PhaseError{Phase: portal.PhaseLogin, Err: errors.New("#email missing")}
	rec := doRequest(t, &stubService{lookupErr: loginErr},
		http.MethodPost, "/api/consultar", map[string]string{"nome": "Cliente"})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, msgLoginFailed, decodeBody(t, rec)["error"])

	searchErr := &portal.PhaseError{Phase: portal.PhaseSearch, Err: errors.New("goto failed")}
	rec = doRequest(t, &stubService{lookupErr: searchErr},
		http.MethodPost, "/api/consultar", map[string]string{"nome": "Cliente"})
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, msgNavigationFailed, decodeBody(t, rec)["error"])
}

func TestConsultar_NoInternalDetailLeaks(t *testing.T) {
	loginErr := &portal.PhaseError{Phase: portal.PhaseLogin, Err: errors.New("selector button.button.bgBlue timed out")}

	rec := doRequest(t, &stubService{lookupErr: loginErr},
		http.MethodPost, "/api/consultar", map[string]string{"nome": "Cliente"})

	assert.NotContains(t, rec.Body.String(), "bgBlue")
	assert.NotContains(t, rec.Body.String(), "selector")
}

func TestConsultar_BrowserNotReady(t *testing.T) {
	rec := doRequest(t, &stubService{lookupErr: browser.ErrNotReady},
		http.MethodPost, "/api/consultar", map[string]string{"nome": "Cliente"})

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, msgBrowserNotReady, decodeBody(t, rec)["error"])
}

func TestBaixar_Success(t *testing.T) {
	svc := &stubService{ready: true}

	rec := doRequest(t, svc, http.MethodPost, "/api/baixar", map[string]string{
		"nome":       "Cliente",
		"venda":      "789",
		"vencimento": "25/12/2024",
	})

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, msgSettleAccepted, decodeBody(t, rec)["message"])
	assert.Equal(t, []string{"Cliente", "789", "25/12/2024"}, svc.settleArgs)
}

func TestBaixar_MissingFieldsHaveDistinctMessages(t *testing.T) {
	tests := []struct {
		name string
		body map[string]string
		want string
	}{
		{
			name: "missing nome",
			body: map[string]string{"venda": "789", "vencimento": "25/12/2024"},
			want: msgMissingName,
		},
		{
			name: "missing venda",
			body: map[string]string{"nome": "Cliente", "vencimento": "25/12/2024"},
			want: msgMissingVenda,
		},
		{
			name: "missing vencimento",
			body: map[string]string{"nome": "Cliente", "venda": "789"},
			want: msgMissingVencimento,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &stubService{ready: true}, http.MethodPost, "/api/baixar", tt.body)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.want, decodeBody(t, rec)["error"])
		})
	}
}

func TestBaixar_NotFoundSubCasesAreDistinct(t *testing.T) {
	body := map[string]string{"nome": "Cliente", "venda": "789", "vencimento": "25/12/2024"}

	emptySearch := doRequest(t, &stubService{settleErr: portal.ErrNoResultsForClient},
		http.MethodPost, "/api/baixar", body)
	require.Equal(t, http.StatusNotFound, emptySearch.Code)
	assert.Equal(t, msgNoResultsForClient, decodeBody(t, emptySearch)["message"])

	noMatch := doRequest(t, &stubService{settleErr: portal.ErrRecordNotFound},
		http.MethodPost, "/api/baixar", body)
	require.Equal(t, http.StatusNotFound, noMatch.Code)
	assert.Equal(t, msgRecordNotFound, decodeBody(t, noMatch)["message"])
}

func TestBaixar_ServerFailuresAreDistinct(t *testing.T) {
	body := map[string]string{"nome": "Cliente", "venda": "789", "vencimento": "25/12/2024"}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "login failure",
			err:  &portal.PhaseError{Phase: portal.PhaseLogin, Err: errors.New("bad credentials")},
			want: msgLoginFailed,
		},
		{
			name: "control not found",
			err:  portal.ErrControlNotFound,
			want: msgControlNotFound,
		},
		{
			name: "invocation failed",
			err:  fmt.Errorf("%w: %v", portal.ErrInvocationFailed, errors.New("element detached")),
			want: msgInvocationFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, &stubService{settleErr: tt.err}, http.MethodPost, "/api/baixar", body)

			require.Equal(t, http.StatusInternalServerError, rec.Code)
			assert.Equal(t, tt.want, decodeBody(t, rec)["error"])
		})
	}
}

func TestBaixar_BrowserNotReady(t *testing.T) {
	rec := doRequest(t, &stubService{settleErr: browser.ErrNotReady},
		http.MethodPost, "/api/baixar",
		map[string]string{"nome": "Cliente", "venda": "789", "vencimento": "25/12/2024"})

	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, msgBrowserNotReady, decodeBody(t, rec)["error"])
}

func TestHealth(t *testing.T) {
	rec := doRequest(t, &stubService{ready: true}, http.MethodGet, "/health", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, true, body["browserReady"])
}

func TestRoutes_MethodsAreRestricted(t *testing.T) {
	rec := doRequest(t, &stubService{ready: true}, http.MethodGet, "/api/consultar", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
