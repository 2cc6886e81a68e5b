package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLogging(t *testing.T) {
	t.Run("request ID is available to the handler", func(t *testing.T) {
		var seen string
		handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = RequestID(r.Context())
		}))

		req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
		handler.ServeHTTP(httptest.NewRecorder(), req)

		if seen == "" {
			t.Error("Expected a request ID in the handler context")
		}
	})

	t.Run("two requests get distinct IDs", func(t *testing.T) {
		var ids []string
		handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ids = append(ids, RequestID(r.Context()))
		}))

		for range 2 {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			handler.ServeHTTP(httptest.NewRecorder(), req)
		}
		if len(ids) != 2 || ids[0] == ids[1] {
			t.Errorf("Expected distinct request IDs, got %v", ids)
		}
	})

	t.Run("status passes through", func(t *testing.T) {
		handler := Logging(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		}))

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		if rec.Code != http.StatusTeapot {
			t.Errorf("Status = %d, want %d", rec.Code, http.StatusTeapot)
		}
	})
}

func TestRequestIDMissing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if id := RequestID(req.Context()); id != "" {
		t.Errorf("Expected empty request ID without middleware, got %q", id)
	}
}

func TestCORS(t *testing.T) {
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	}))

	t.Run("headers on normal requests", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "*" {
			t.Errorf("Allow-Origin = %q, want *", got)
		}
		if rec.Code != http.StatusCreated {
			t.Errorf("Status = %d, want %d", rec.Code, http.StatusCreated)
		}
	})

	t.Run("preflight short-circuits", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("Status = %d, want %d", rec.Code, http.StatusOK)
		}
	})
}

func TestMetricsRouteLabels(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/users/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := Metrics(mux)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/users/42", nil))
	if rec.Code != http.StatusOK {
		t.Errorf("Status = %d, want 200", rec.Code)
	}

	// Unmatched paths still get recorded, under a fixed label.
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", rec.Code)
	}
}
