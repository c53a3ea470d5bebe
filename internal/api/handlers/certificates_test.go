package handlers_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"testing"

	"github.com/certiverify/api/internal/domain"
	"github.com/certiverify/api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sha256Hex(data string) string {
	digest := sha256.Sum256([]byte(data))
	return hex.EncodeToString(digest[:])
}

// registerAndLogin creates an account through the API and returns its token.
func registerAndLogin(t *testing.T, ts *testutil.TestServer, email, role string) string {
	t.Helper()

	body := map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": "pw12345",
	}
	if role != "" {
		body["role"] = role
	}
	resp := ts.Request(t, http.MethodPost, "/register", "", body)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	return ts.Login(t, email, "pw12345")
}

// TestCertificateLifecycle walks the full issue/verify/revoke/verify flow.
func TestCertificateLifecycle(t *testing.T) {
	ts := testutil.NewTestServer(t)
	token := registerAndLogin(t, ts, "a@x.com", "")

	// Issue with text fields and no file.
	resp := ts.Request(t, http.MethodPost, "/certificates", token, map[string]string{
		"studentName": "Bo",
		"studentId":   "S1",
		"program":     "CS",
		"issueDate":   "2024-01-01",
	})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var issued testutil.RecordResponse
	testutil.AssertJSONResponse(t, resp, &issued)
	require.NotNil(t, issued.Record)

	wantHash := sha256Hex("Bo|S1|CS|2024-01-01")
	assert.Equal(t, wantHash, issued.Record.Hash)
	assert.Equal(t, "Bo", issued.Record.StudentName)
	assert.Equal(t, "S1", issued.Record.StudentID)
	assert.Equal(t, "CS", issued.Record.Program)
	assert.Equal(t, "2024-01-01", issued.Record.IssueDate)
	assert.Equal(t, domain.StatusValid, issued.Record.Status)
	assert.Equal(t, "a@x.com", issued.Record.IssuerEmail)

	// Verify is public and returns the record with its status.
	resp = ts.Request(t, http.MethodPost, "/verify", "", map[string]string{"hash": wantHash})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var verified testutil.VerifyResponse
	testutil.AssertJSONResponse(t, resp, &verified)
	assert.Equal(t, domain.StatusValid, verified.Result.Status)
	require.NotNil(t, verified.Result.Record)
	assert.Equal(t, issued.Record.ID, verified.Result.Record.ID)

	// Revoke as owner.
	resp = ts.Request(t, http.MethodPost, "/revoke", token, map[string]string{"hash": wantHash})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Verify again: status flips to Revoked.
	resp = ts.Request(t, http.MethodPost, "/verify", "", map[string]string{"hash": wantHash})
	defer resp.Body.Close()

	var revoked testutil.VerifyResponse
	testutil.AssertJSONResponse(t, resp, &revoked)
	assert.Equal(t, domain.StatusRevoked, revoked.Result.Status)
}

func TestCertificateHandler_IssueWithFile(t *testing.T) {
	ts := testutil.NewTestServer(t)
	token := registerAndLogin(t, ts, "a@x.com", "")

	fileBytes := []byte("%PDF-1.4 test document body")
	resp := ts.Upload(t, "/certificates", token, map[string]string{
		"studentName": "Bo",
		"studentId":   "S1",
		"program":     "CS",
		"issueDate":   "2024-01-01",
	}, fileBytes)
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var issued testutil.RecordResponse
	testutil.AssertJSONResponse(t, resp, &issued)
	require.NotNil(t, issued.Record)

	digest := sha256.Sum256(fileBytes)
	assert.Equal(t, hex.EncodeToString(digest[:]), issued.Record.Hash, "file hash wins over text fields")
	assert.Equal(t, "Bo", issued.Record.StudentName)

	// Verify by uploading the same file.
	resp = ts.Upload(t, "/verify", "", nil, fileBytes)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var verified testutil.VerifyResponse
	testutil.AssertJSONResponse(t, resp, &verified)
	assert.Equal(t, domain.StatusValid, verified.Result.Status)
}

func TestCertificateHandler_IssueRequiresAuth(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := ts.Request(t, http.MethodPost, "/certificates", "", map[string]string{"studentName": "Bo"})
	defer resp.Body.Close()

	testutil.AssertErrorResponse(t, resp, http.StatusUnauthorized, "Unauthorized")
}

func TestCertificateHandler_VerifyUnknownHash(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := ts.Request(t, http.MethodPost, "/verify", "", map[string]string{"hash": sha256Hex("unknown")})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode, "unknown hash is a success, not an error")

	var verified testutil.VerifyResponse
	testutil.AssertJSONResponse(t, resp, &verified)
	assert.Equal(t, "Not Found", verified.Result.Status)
	assert.Nil(t, verified.Result.Record)
}

func TestCertificateHandler_VerifyWithoutHashOrFile(t *testing.T) {
	ts := testutil.NewTestServer(t)

	resp := ts.Request(t, http.MethodPost, "/verify", "", map[string]string{})
	defer resp.Body.Close()

	testutil.AssertErrorResponse(t, resp, http.StatusUnprocessableEntity, "hash or pdf required")
}

func TestCertificateHandler_RevokeErrors(t *testing.T) {
	ts := testutil.NewTestServer(t)
	ownerToken := registerAndLogin(t, ts, "owner@x.com", "")
	otherToken := registerAndLogin(t, ts, "other@x.com", "")

	cert := testutil.NewCertificateBuilder().WithIssuer("owner@x.com").Build(t, ts.Repos.Certificate)

	tests := []struct {
		name           string
		token          string
		hash           string
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "no token",
			hash:           cert.Hash,
			expectedStatus: http.StatusUnauthorized,
			expectedError:  "Unauthorized",
		},
		{
			name:           "missing hash",
			token:          ownerToken,
			expectedStatus: http.StatusUnprocessableEntity,
			expectedError:  "hash required",
		},
		{
			name:           "unknown hash",
			token:          ownerToken,
			hash:           sha256Hex("unknown"),
			expectedStatus: http.StatusNotFound,
			expectedError:  "Certificate not found or not owned by issuer",
		},
		{
			name:           "not the owner",
			token:          otherToken,
			hash:           cert.Hash,
			expectedStatus: http.StatusNotFound,
			expectedError:  "Certificate not found or not owned by issuer",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := ts.Request(t, http.MethodPost, "/revoke", tt.token, map[string]string{"hash": tt.hash})
			defer resp.Body.Close()

			testutil.AssertErrorResponse(t, resp, tt.expectedStatus, tt.expectedError)
		})
	}
}

func TestCertificateHandler_RevokeFanOutOverDuplicateHashes(t *testing.T) {
	ts := testutil.NewTestServer(t)
	token := registerAndLogin(t, ts, "a@x.com", "")

	shared := sha256Hex("shared")
	testutil.NewCertificateBuilder().WithHash(shared).WithIssuer("a@x.com").Build(t, ts.Repos.Certificate)
	testutil.NewCertificateBuilder().WithHash(shared).WithIssuer("a@x.com").Build(t, ts.Repos.Certificate)

	resp := ts.Request(t, http.MethodPost, "/revoke", token, map[string]string{"hash": shared})
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	certs, err := ts.Repos.Certificate.List(context.Background())
	require.NoError(t, err)
	require.Len(t, certs, 2)
	assert.Equal(t, domain.StatusRevoked, certs[0].Status)
	assert.Equal(t, domain.StatusRevoked, certs[1].Status)
}

func TestCertificateHandler_ListScopedByRole(t *testing.T) {
	ts := testutil.NewTestServer(t)
	issuerToken := registerAndLogin(t, ts, "a@x.com", "")
	adminToken := registerAndLogin(t, ts, "admin@x.com", domain.RoleAdmin)

	testutil.NewCertificateBuilder().WithIssuer("a@x.com").Build(t, ts.Repos.Certificate)
	testutil.NewCertificateBuilder().WithIssuer("b@x.com").Build(t, ts.Repos.Certificate)

	resp := ts.Request(t, http.MethodGet, "/certificates", issuerToken, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var mine testutil.ListResponse
	testutil.AssertJSONResponse(t, resp, &mine)
	require.Len(t, mine.Data, 1)
	assert.Equal(t, "a@x.com", mine.Data[0].IssuerEmail)

	resp = ts.Request(t, http.MethodGet, "/certificates", adminToken, nil)
	defer resp.Body.Close()

	var all testutil.ListResponse
	testutil.AssertJSONResponse(t, resp, &all)
	assert.Len(t, all.Data, 2)
}

func TestCertificateHandler_Stats(t *testing.T) {
	ts := testutil.NewTestServer(t)

	testutil.NewCertificateBuilder().Build(t, ts.Repos.Certificate)
	testutil.NewCertificateBuilder().Build(t, ts.Repos.Certificate)
	testutil.NewCertificateBuilder().WithStatus(domain.StatusRevoked).Build(t, ts.Repos.Certificate)

	resp := ts.Request(t, http.MethodGet, "/stats", "", nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var result testutil.StatsResponse
	testutil.AssertJSONResponse(t, resp, &result)
	assert.Equal(t, 3, result.Stats.Total)
	assert.Equal(t, 2, result.Stats.Valid)
	assert.Equal(t, 1, result.Stats.Revoked)
}
