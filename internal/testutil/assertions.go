package testutil

import (
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/certiverify/api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AuthResponse mirrors the login envelope.
type AuthResponse struct {
	OK    bool   `json:"ok"`
	Token string `json:"token"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ErrorResponse mirrors the error envelope.
type ErrorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// ListResponse mirrors the certificate listing envelope.
type ListResponse struct {
	OK   bool                 `json:"ok"`
	Data []domain.Certificate `json:"data"`
}

// RecordResponse mirrors the issuance envelope.
type RecordResponse struct {
	OK     bool                `json:"ok"`
	Record *domain.Certificate `json:"record"`
}

// VerifyResponse mirrors the verification envelope.
type VerifyResponse struct {
	OK     bool `json:"ok"`
	Result struct {
		Status string              `json:"status"`
		Record *domain.Certificate `json:"record"`
	} `json:"result"`
}

// StatsResponse mirrors the stats envelope.
type StatsResponse struct {
	OK    bool         `json:"ok"`
	Stats domain.Stats `json:"stats"`
}

// AssertJSONResponse decodes the response body into v.
func AssertJSONResponse(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "failed to read response body")

	err = json.Unmarshal(body, v)
	require.NoError(t, err, "failed to unmarshal response: %s", string(body))
}

// AssertErrorResponse verifies the status code and the error envelope.
func AssertErrorResponse(t *testing.T, resp *http.Response, expectedStatus int, expectedMessage string) {
	t.Helper()

	assert.Equal(t, expectedStatus, resp.StatusCode, "unexpected status code")

	var errResp ErrorResponse
	AssertJSONResponse(t, resp, &errResp)
	assert.False(t, errResp.OK)
	assert.Contains(t, errResp.Error, expectedMessage, "error message mismatch")
}
