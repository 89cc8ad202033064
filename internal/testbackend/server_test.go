package testbackend

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bft-labs/distclient/internal/domain"
)

func do(t *testing.T, s *Server, method, path, token, body string) (*http.Response, map[string]any) {
	t.Helper()
	req, err := http.NewRequest(method, s.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp, out
}

func TestServer_LoginFlow(t *testing.T) {
	s := New()
	defer s.Close()
	s.AddUser("ivan@example.com", "secret", true)
	s.AddUser("off@example.com", "secret", false)

	resp, body := do(t, s, http.MethodPost, "/auth/login/json", "", `{"email":"ivan@example.com","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Incorrect email or password", body["detail"])

	resp, _ = do(t, s, http.MethodPost, "/auth/login/json", "", `{"email":"off@example.com","password":"secret"}`)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp, body = do(t, s, http.MethodPost, "/auth/login/json", "", `{"email":"ivan@example.com","password":"secret"}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token, _ := body["access_token"].(string)
	require.NotEmpty(t, token)

	resp, body = do(t, s, http.MethodGet, "/auth/me", token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ivan@example.com", body["email"])

	resp, _ = do(t, s, http.MethodPost, "/auth/logout", token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, _ = do(t, s, http.MethodGet, "/auth/me", token, "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, "revoked token is refused")
}

func TestServer_RequiresAuth(t *testing.T) {
	s := New()
	defer s.Close()

	resp, body := do(t, s, http.MethodGet, "/microinvest/partners", "", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "Not authenticated", body["detail"])

	resp, _ = do(t, s, http.MethodGet, "/microinvest/partners", "garbage", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestServer_PartnersFilterAndPage(t *testing.T) {
	s := New()
	defer s.Close()
	s.SetPartners([]domain.Partner{
		{ID: 1, Company: "Acme Ltd"},
		{ID: 2, Company: "Globex"},
		{ID: 3, Company: "ACME Foods"},
	})
	token := s.IssueToken("ivan@example.com", TokenTTL)

	resp, body := do(t, s, http.MethodGet, "/microinvest/partners?company=acme&page=1&limit=1", token, "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 2, body["total_records"])
	assert.Len(t, body["partners"], 1)

	resp, _ = do(t, s, http.MethodGet, "/microinvest/partners?limit=500", token, "")
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)

	reqs := s.RequestsTo("/microinvest/partners")
	require.Len(t, reqs, 2)
	assert.Equal(t, "acme", reqs[0].Query.Get("company"))
}

func TestServer_DashboardAndFailures(t *testing.T) {
	s := New()
	defer s.Close()
	token := s.IssueToken("ivan@example.com", TokenTTL)

	resp, _ := do(t, s, http.MethodGet, "/microinvest/dashboard?period=custom", token, "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, body := do(t, s, http.MethodGet, "/microinvest/dashboard", token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["total_sales"])

	s.FailPath("/microinvest/dashboard", http.StatusInternalServerError, "db down")
	resp, body = do(t, s, http.MethodGet, "/microinvest/dashboard", token, "")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "db down", body["detail"])

	s.FailPath("/microinvest/dashboard", 0, "")
	resp, _ = do(t, s, http.MethodGet, "/microinvest/dashboard", token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestServer_OperationByID(t *testing.T) {
	s := New()
	defer s.Close()
	s.SetOperations([]domain.Operation{{ID: 5, Name: "Sale"}})
	token := s.IssueToken("ivan@example.com", TokenTTL)

	resp, body := do(t, s, http.MethodGet, "/microinvest/operations/5", token, "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Sale", body["operation_name"])

	resp, body = do(t, s, http.MethodGet, "/microinvest/operations/6", token, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Operation not found", body["detail"])
}
