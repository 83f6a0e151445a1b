package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kestrel-labs/tableau/server/api"
	"github.com/kestrel-labs/tableau/server/dao"
	"github.com/stretchr/testify/assert"
)

const testSecret = "unit-test-token-secret-at-least-32-bytes!"

// newTestServer builds a Server backed by an in-memory store and seeds it
// with one ordinary user, returning the server and a bearer token already
// valid for that user.
func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	assert := assert.New(t)

	srv, err := New(Config{
		TokenSecret:       []byte(testSecret),
		DB:                Database{Type: DatabaseInMemory},
		UnauthDelayMillis: -1,
	})
	assert.NoError(err)
	assert.NotNil(srv)

	_, err = srv.CreateUser(context.Background(), "alice", "hunter2", "alice@example.com", dao.Unverified)
	assert.NoError(err)

	tok := loginAndGetToken(t, srv, "alice", "hunter2")
	return srv, tok
}

func loginAndGetToken(t *testing.T, srv *Server, username, password string) string {
	t.Helper()
	assert := assert.New(t)

	body, err := json.Marshal(api.LoginRequest{Username: username, Password: password})
	assert.NoError(err)

	req := httptest.NewRequest(http.MethodPost, api.PathPrefix+"/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()

	srv.Router.ServeHTTP(rec, req)
	assert.Equal(http.StatusCreated, rec.Code)

	var loginResp api.LoginResponse
	assert.NoError(json.Unmarshal(rec.Body.Bytes(), &loginResp))
	assert.NotEmpty(loginResp.Token)

	return loginResp.Token
}

func doJSON(srv *Server, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Reader
	if payload != nil {
		b, _ := json.Marshal(payload)
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	srv.Router.ServeHTTP(rec, req)
	return rec
}

func Test_Server_Classify_requiresAuth(t *testing.T) {
	assert := assert.New(t)
	srv, _ := newTestServer(t)
	defer srv.Close()

	rec := doJSON(srv, http.MethodPost, api.PathPrefix+"/classify", "", api.ClassifyRequest{Formula: "p"})
	assert.Equal(http.StatusUnauthorized, rec.Code)
}

func Test_Server_Classify_withAuth(t *testing.T) {
	assert := assert.New(t)
	srv, tok := newTestServer(t)
	defer srv.Close()

	testCases := []struct {
		name     string
		formula  string
		expectCt string
	}{
		{name: "proposition", formula: "p", expectCt: "PROP_ATOM"},
		{name: "fol atom", formula: "P(a,a)", expectCt: "FOL_ATOM"},
		{name: "binary propositional", formula: "(p&q)", expectCt: "BINARY_PROP"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			rec := doJSON(srv, http.MethodPost, api.PathPrefix+"/classify", tok, api.ClassifyRequest{Formula: tc.formula})
			assert.Equal(http.StatusOK, rec.Code)

			var resp api.SubmissionModel
			assert.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(tc.formula, resp.Formula)
			assert.Contains(resp.Category, tc.expectCt)
		})
	}
}

func Test_Server_Classify_rejectsBadToken(t *testing.T) {
	assert := assert.New(t)
	srv, _ := newTestServer(t)
	defer srv.Close()

	rec := doJSON(srv, http.MethodPost, api.PathPrefix+"/classify", "not-a-real-token", api.ClassifyRequest{Formula: "p"})
	assert.Equal(http.StatusUnauthorized, rec.Code)
}

func Test_Server_Decide_requiresAuth(t *testing.T) {
	assert := assert.New(t)
	srv, _ := newTestServer(t)
	defer srv.Close()

	rec := doJSON(srv, http.MethodPost, api.PathPrefix+"/decide", "", api.DecideRequest{Formula: "(p&~p)"})
	assert.Equal(http.StatusUnauthorized, rec.Code)
}

func Test_Server_Decide_withAuth(t *testing.T) {
	assert := assert.New(t)
	srv, tok := newTestServer(t)
	defer srv.Close()

	testCases := []struct {
		name    string
		formula string
		verdict string
	}{
		{name: "contradiction is unsat", formula: "(p&~p)", verdict: "UNSAT"},
		{name: "disjunction is sat", formula: "(p\\/~p)", verdict: "SAT"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			rec := doJSON(srv, http.MethodPost, api.PathPrefix+"/decide", tok, api.DecideRequest{Formula: tc.formula})
			assert.Equal(http.StatusCreated, rec.Code)

			var resp api.SubmissionModel
			assert.NoError(json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.True(resp.Decided)
			assert.Equal(tc.verdict, resp.Verdict)
		})
	}
}

func Test_Server_Decide_rejectsEmptyFormula(t *testing.T) {
	assert := assert.New(t)
	srv, tok := newTestServer(t)
	defer srv.Close()

	rec := doJSON(srv, http.MethodPost, api.PathPrefix+"/decide", tok, api.DecideRequest{Formula: ""})
	assert.Equal(http.StatusBadRequest, rec.Code)
}

func Test_Server_GetInfo_worksWithAndWithoutAuth(t *testing.T) {
	assert := assert.New(t)
	srv, tok := newTestServer(t)
	defer srv.Close()

	anonRec := doJSON(srv, http.MethodGet, api.PathPrefix+"/info", "", nil)
	assert.Equal(http.StatusOK, anonRec.Code)

	authedRec := doJSON(srv, http.MethodGet, api.PathPrefix+"/info", tok, nil)
	assert.Equal(http.StatusOK, authedRec.Code)
}
