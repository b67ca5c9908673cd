package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

type introspectionServer struct {
	*httptest.Server
	calls int64
}

func newIntrospectionServer(t *testing.T, handler http.HandlerFunc) *introspectionServer {
	t.Helper()
	s := &introspectionServer{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(&s.calls, 1)
		handler(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

func TestIntrospectionNotConfigured(t *testing.T) {
	s := NewIntrospectionStrategy(IntrospectionConfig{}, testDirectory())

	_, err := s.Resolve(context.Background(), "token")
	assertRejected(t, err, ReasonNotConfigured, http.StatusInternalServerError)
}

func TestIntrospectionUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	s := NewIntrospectionStrategy(IntrospectionConfig{URL: url}, testDirectory())

	_, err := s.Resolve(context.Background(), "token")
	assertRejected(t, err, ReasonIntrospectionUnreachable, http.StatusBadGateway)
}

func TestIntrospectionNonSuccessStatus(t *testing.T) {
	srv := newIntrospectionServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	s := NewIntrospectionStrategy(IntrospectionConfig{URL: srv.URL}, testDirectory())

	_, err := s.Resolve(context.Background(), "token")
	assertRejected(t, err, ReasonIntrospectionFailed, http.StatusUnauthorized)
}

func TestIntrospectionMalformedResponse(t *testing.T) {
	srv := newIntrospectionServer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "this is not json")
	})

	s := NewIntrospectionStrategy(IntrospectionConfig{URL: srv.URL}, testDirectory())

	_, err := s.Resolve(context.Background(), "token")
	assertRejected(t, err, ReasonMalformedIntrospectionResponse, http.StatusBadGateway)
}

func TestIntrospectionInactiveToken(t *testing.T) {
	for _, body := range []string{
		`{"active": false, "sub": "1"}`,
		`{"sub": "1"}`,
		`{"active": "yes", "sub": "1"}`,
	} {
		srv := newIntrospectionServer(t, func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, body)
		})

		s := NewIntrospectionStrategy(IntrospectionConfig{URL: srv.URL}, testDirectory())

		_, err := s.Resolve(context.Background(), "token")
		assertRejected(t, err, ReasonTokenInactive, http.StatusUnauthorized)
	}
}

func TestIntrospectionSubjectFieldMissing(t *testing.T) {
	srv := newIntrospectionServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"active": true, "username": "alice"}`)
	})

	s := NewIntrospectionStrategy(IntrospectionConfig{URL: srv.URL}, testDirectory())

	_, err := s.Resolve(context.Background(), "token")
	assertRejected(t, err, ReasonSubjectFieldMissing, http.StatusUnauthorized)
}

func TestIntrospectionPrincipalNotFound(t *testing.T) {
	srv := newIntrospectionServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"active": true, "sub": "999"}`)
	})

	s := NewIntrospectionStrategy(IntrospectionConfig{URL: srv.URL}, testDirectory())

	_, err := s.Resolve(context.Background(), "token")
	assertRejected(t, err, ReasonPrincipalNotFound, http.StatusUnauthorized)
}

func TestIntrospectionSuccess(t *testing.T) {
	var gotToken string
	var hadBasicAuth bool
	srv := newIntrospectionServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.NoError(t, r.ParseForm())
		gotToken = r.PostFormValue("token")
		_, _, hadBasicAuth = r.BasicAuth()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"active": true, "sub": "1"}`)
	})

	s := NewIntrospectionStrategy(IntrospectionConfig{URL: srv.URL}, testDirectory())

	user, err := s.Resolve(context.Background(), "opaque-token")
	assert.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
	assert.Equal(t, "opaque-token", gotToken)
	assert.False(t, hadBasicAuth, "no client credentials configured, no basic auth")
	assert.Equal(t, int64(1), srv.calls, "exactly one introspection call per Resolve")
}

func TestIntrospectionNumericSubject(t *testing.T) {
	srv := newIntrospectionServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"active": true, "sub": 1}`)
	})

	s := NewIntrospectionStrategy(IntrospectionConfig{URL: srv.URL}, testDirectory())

	user, err := s.Resolve(context.Background(), "token")
	assert.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
}

func TestIntrospectionBasicAuthOnlyWhenBothCredentialsSet(t *testing.T) {
	cases := []struct {
		name      string
		clientID  string
		secret    string
		wantBasic bool
	}{
		{"both", "client", "s3cret", true},
		{"id only", "client", "", false},
		{"secret only", "", "s3cret", false},
		{"neither", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var gotID, gotSecret string
			var hadBasic bool
			srv := newIntrospectionServer(t, func(w http.ResponseWriter, r *http.Request) {
				gotID, gotSecret, hadBasic = r.BasicAuth()
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprint(w, `{"active": true, "sub": "1"}`)
			})

			s := NewIntrospectionStrategy(IntrospectionConfig{
				URL:          srv.URL,
				ClientID:     tc.clientID,
				ClientSecret: tc.secret,
			}, testDirectory())

			_, err := s.Resolve(context.Background(), "token")
			assert.NoError(t, err)
			assert.Equal(t, tc.wantBasic, hadBasic)
			if tc.wantBasic {
				assert.Equal(t, tc.clientID, gotID)
				assert.Equal(t, tc.secret, gotSecret)
			}
		})
	}
}

func TestIntrospectionCustomSubjectField(t *testing.T) {
	srv := newIntrospectionServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"active": true, "user_id": "1"}`)
	})

	s := NewIntrospectionStrategy(IntrospectionConfig{
		URL:          srv.URL,
		SubjectField: "user_id",
	}, testDirectory())

	user, err := s.Resolve(context.Background(), "token")
	assert.NoError(t, err)
	assert.Equal(t, uint(1), user.ID)
}
