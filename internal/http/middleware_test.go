package http

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/example/campus-reservations/internal/application"
)

type verifierStub struct {
	principal application.Principal
	err       error
	seen      string
}

func (v *verifierStub) Verify(token string) (application.Principal, error) {
	v.seen = token
	if v.err != nil {
		return application.Principal{}, v.err
	}
	return v.principal, nil
}

func TestRequireToken(t *testing.T) {
	t.Parallel()

	t.Run("rejects requests without a bearer token", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name   string
			header string
		}{
			{name: "missing header"},
			{name: "empty header", header: " "},
			{name: "wrong scheme", header: "Basic dXNlcjpwYXNz"},
			{name: "bare token", header: "some-token"},
		}

		for _, tc := range tests {
			tc := tc
			t.Run(tc.name, func(t *testing.T) {
				t.Parallel()

				verifier := &verifierStub{}
				handler := RequireToken(verifier, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					t.Fatal("handler must not run")
				}))

				req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
				if tc.header != "" {
					req.Header.Set("Authorization", tc.header)
				}
				recorder := httptest.NewRecorder()
				handler.ServeHTTP(recorder, req)

				if recorder.Code != http.StatusUnauthorized {
					t.Fatalf("status = %d, want 401", recorder.Code)
				}
				if verifier.seen != "" {
					t.Fatalf("verifier should not be consulted, saw %q", verifier.seen)
				}
			})
		}
	})

	t.Run("rejects tokens the verifier refuses", func(t *testing.T) {
		t.Parallel()

		verifier := &verifierStub{err: errors.New("bad signature")}
		handler := RequireToken(verifier, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("handler must not run")
		}))

		req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
		req.Header.Set("Authorization", "Bearer forged")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusUnauthorized {
			t.Fatalf("status = %d, want 401", recorder.Code)
		}
		if verifier.seen != "forged" {
			t.Fatalf("verifier saw %q, want %q", verifier.seen, "forged")
		}
	})

	t.Run("stores the principal on the context", func(t *testing.T) {
		t.Parallel()

		want := application.Principal{UserID: "student-1", Privilege: application.PrivilegeOrdinary}
		verifier := &verifierStub{principal: want}

		var got application.Principal
		var found bool
		handler := RequireToken(verifier, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			got, found = PrincipalFromContext(r.Context())
			w.WriteHeader(http.StatusOK)
		}))

		req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
		req.Header.Set("Authorization", "Bearer valid-token")
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, req)

		if recorder.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", recorder.Code)
		}
		if !found || got != want {
			t.Fatalf("principal = %+v (found=%v), want %+v", got, found, want)
		}
	})
}

func TestRequestLoggerAttachesLogger(t *testing.T) {
	t.Parallel()

	var sawLogger bool
	handler := RequestLogger(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawLogger = LoggerFromContext(r.Context()) != nil
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodGet, "/bookings", nil)
	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", recorder.Code)
	}
	if !sawLogger {
		t.Fatal("request scoped logger should be attached to the context")
	}
}

func TestExtractBearerToken(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		header string
		want   string
	}{
		{name: "well formed", header: "Bearer abc123", want: "abc123"},
		{name: "padded", header: "Bearer   abc123  ", want: "abc123"},
		{name: "missing", header: "", want: ""},
		{name: "no scheme", header: "abc123", want: ""},
		{name: "wrong scheme", header: "Basic abc123", want: ""},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			if got := extractBearerToken(req); got != tc.want {
				t.Fatalf("extractBearerToken = %q, want %q", got, tc.want)
			}
		})
	}
}
