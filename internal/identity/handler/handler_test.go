package handler

import (
	"context"
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"perspective/internal/identity"
	"perspective/internal/reading/models"
	"perspective/pkg/testutil"
)

// stubSessions scripts sign-in and sign-out outcomes.
type stubSessions struct {
	session  *models.Session
	signedIn bool
	err      error

	lastCredential string
	signOutCalls   int
}

func (s *stubSessions) SignIn(_ context.Context, _ uuid.UUID, credential string) (*models.Session, bool, error) {
	s.lastCredential = credential
	return s.session, s.signedIn, s.err
}

func (s *stubSessions) SignOut(context.Context, uuid.UUID) (*models.Session, error) {
	s.signOutCalls++
	return s.session, s.err
}

type stubIdentity struct {
	rec *identity.Record
}

func (s *stubIdentity) Current() *identity.Record { return s.rec }
func (s *stubIdentity) IsSignedIn() bool          { return s.rec != nil }

func newRouter(sessions *stubSessions, ident *stubIdentity) chi.Router {
	r := chi.NewRouter()
	New(sessions, ident, slog.Default(), nil).Register(r)
	return r
}

func TestSignIn(t *testing.T) {
	session := models.NewSession(uuid.New())
	session.Step = models.StepResult

	t.Run("accepted credential returns the advanced session", func(t *testing.T) {
		sessions := &stubSessions{session: session, signedIn: true}
		router := newRouter(sessions, &stubIdentity{rec: &identity.Record{Email: "ann@example.com"}})

		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/sessions/"+session.ID.String()+"/signin",
			map[string]string{"credential": "header.payload.sig"})
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)
		assert.Equal(t, "header.payload.sig", sessions.lastCredential)

		resp := testutil.UnmarshalResponse[struct {
			SignedIn bool `json:"signedIn"`
			Session  struct {
				Step models.Step `json:"step"`
			} `json:"session"`
		}](t, rr)
		assert.True(t, resp.SignedIn)
		assert.Equal(t, models.StepResult, resp.Session.Step)
	})

	t.Run("rejected credential reports signedIn false with 200", func(t *testing.T) {
		sessions := &stubSessions{session: session, signedIn: false}
		router := newRouter(sessions, &stubIdentity{})

		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/sessions/"+session.ID.String()+"/signin",
			map[string]string{"credential": "garbage"})
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatus(t, rr, http.StatusOK)

		resp := testutil.UnmarshalResponse[struct {
			SignedIn bool `json:"signedIn"`
		}](t, rr)
		assert.False(t, resp.SignedIn)
	})

	t.Run("missing credential is a bad request", func(t *testing.T) {
		router := newRouter(&stubSessions{session: session}, &stubIdentity{})

		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/sessions/"+session.ID.String()+"/signin",
			map[string]string{})
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})

	t.Run("invalid session id", func(t *testing.T) {
		router := newRouter(&stubSessions{session: session}, &stubIdentity{})

		req := testutil.NewJSONRequest(t, http.MethodPost, "/auth/sessions/nope/signin",
			map[string]string{"credential": "x.y.z"})
		rr := testutil.DoRequest(router, req)
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})
}

func TestSignOut(t *testing.T) {
	session := models.NewSession(uuid.New())
	sessions := &stubSessions{session: session}
	router := newRouter(sessions, &stubIdentity{})

	req := testutil.NewRequest(t, http.MethodPost, "/auth/sessions/"+session.ID.String()+"/signout")
	rr := testutil.DoRequest(router, req)
	testutil.AssertStatus(t, rr, http.StatusOK)
	assert.Equal(t, 1, sessions.signOutCalls)

	resp := testutil.UnmarshalResponse[struct {
		Step     models.Step `json:"step"`
		SignedIn bool        `json:"signedIn"`
	}](t, rr)
	assert.Equal(t, models.StepLanding, resp.Step)
	assert.False(t, resp.SignedIn)
}

func TestMe(t *testing.T) {
	t.Run("signed in", func(t *testing.T) {
		router := newRouter(&stubSessions{}, &stubIdentity{rec: &identity.Record{Name: "Ann", Email: "ann@example.com"}})

		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/auth/me"))
		testutil.AssertStatus(t, rr, http.StatusOK)

		resp := testutil.UnmarshalResponse[identity.Record](t, rr)
		assert.Equal(t, "ann@example.com", resp.Email)
	})

	t.Run("signed out", func(t *testing.T) {
		router := newRouter(&stubSessions{}, &stubIdentity{})

		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/auth/me"))
		testutil.AssertStatus(t, rr, http.StatusUnauthorized)
	})
}
