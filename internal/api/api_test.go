package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"tabshare/internal/storage/sqlite"
)

// newTestServer spins up the full HTTP boundary over a temp-dir database.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	mux := http.NewServeMux()
	NewServer(store).RegisterRoutes(mux)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

// doJSON sends a request with a JSON body and decodes the JSON response
// into out (when non-nil). Returns the status code.
func doJSON(t *testing.T, ts *httptest.Server, method, path string, body, out any) int {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("Failed to marshal request: %v", err)
		}
		reqBody = bytes.NewBuffer(data)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, ts.URL+path, reqBody)
	if err != nil {
		t.Fatalf("Failed to build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := ts.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("Failed to decode %s %s response: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

func createUserViaAPI(t *testing.T, ts *httptest.Server, name string) int64 {
	t.Helper()

	var user struct {
		ID int64 `json:"id"`
	}
	status := doJSON(t, ts, http.MethodPost, "/api/users", map[string]any{"name": name}, &user)
	if status != http.StatusCreated {
		t.Fatalf("POST /api/users returned %d", status)
	}
	return user.ID
}

func TestUserEndpoints(t *testing.T) {
	ts := newTestServer(t)

	t.Run("create and list", func(t *testing.T) {
		id := createUserViaAPI(t, ts, "Alice")
		if id == 0 {
			t.Error("Expected a non-zero user ID")
		}

		var users []map[string]any
		if status := doJSON(t, ts, http.MethodGet, "/api/users", nil, &users); status != http.StatusOK {
			t.Fatalf("GET /api/users returned %d", status)
		}
		if len(users) != 1 || users[0]["name"] != "Alice" {
			t.Errorf("Unexpected users payload: %v", users)
		}
	})

	t.Run("missing name is a 400", func(t *testing.T) {
		var errResp struct {
			Error string `json:"error"`
		}
		status := doJSON(t, ts, http.MethodPost, "/api/users", map[string]any{}, &errResp)
		if status != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", status)
		}
		if errResp.Error != "name is required" {
			t.Errorf("Unexpected error message: %q", errResp.Error)
		}
	})

	t.Run("malformed body is a 400", func(t *testing.T) {
		resp, err := ts.Client().Post(ts.URL+"/api/users", "application/json", strings.NewReader("{not json"))
		if err != nil {
			t.Fatalf("POST failed: %v", err)
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", resp.StatusCode)
		}
	})
}

func TestGroupEndpoints(t *testing.T) {
	ts := newTestServer(t)
	alice := createUserViaAPI(t, ts, "Alice")

	t.Run("create group", func(t *testing.T) {
		var group struct {
			ID       int64  `json:"id"`
			Category string `json:"category"`
		}
		status := doJSON(t, ts, http.MethodPost, "/api/expense-groups", map[string]any{
			"name":         "Ski trip",
			"category":     "Trip",
			"total_amount": 120000,
			"participants": []map[string]any{
				{"user_id": alice, "amount_owed": 60000},
			},
		}, &group)
		if status != http.StatusCreated {
			t.Fatalf("POST /api/expense-groups returned %d", status)
		}
		if group.Category != "Trip" {
			t.Errorf("Category = %s, want Trip", group.Category)
		}
	})

	t.Run("invalid category is a 400", func(t *testing.T) {
		status := doJSON(t, ts, http.MethodPost, "/api/expense-groups", map[string]any{
			"name":         "Oops",
			"category":     "Vacation",
			"total_amount": 100,
			"participants": []map[string]any{{"user_id": alice, "amount_owed": 100}},
		}, nil)
		if status != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", status)
		}
	})

	t.Run("unknown group is a 404", func(t *testing.T) {
		var errResp struct {
			Error string `json:"error"`
		}
		status := doJSON(t, ts, http.MethodGet, "/api/expense-groups/9999", nil, &errResp)
		if status != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", status)
		}
		if errResp.Error != "Expense group not found" {
			t.Errorf("Unexpected error message: %q", errResp.Error)
		}
	})

	t.Run("malformed group ID is a 400", func(t *testing.T) {
		status := doJSON(t, ts, http.MethodGet, "/api/expense-groups/abc", nil, nil)
		if status != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", status)
		}
	})
}

func TestPaymentMethodEndpoints(t *testing.T) {
	ts := newTestServer(t)
	alice := createUserViaAPI(t, ts, "Alice")

	t.Run("create and list for user", func(t *testing.T) {
		status := doJSON(t, ts, http.MethodPost, "/api/payment-methods", map[string]any{
			"user_id":    alice,
			"type":       "debit_card",
			"last_four":  "4242",
			"provider":   "Visa",
			"is_default": true,
		}, nil)
		if status != http.StatusCreated {
			t.Fatalf("POST /api/payment-methods returned %d", status)
		}

		var methods []struct {
			LastFour  string `json:"last_four"`
			IsDefault bool   `json:"is_default"`
		}
		path := fmt.Sprintf("/api/users/%d/payment-methods", alice)
		if status := doJSON(t, ts, http.MethodGet, path, nil, &methods); status != http.StatusOK {
			t.Fatalf("GET %s returned %d", path, status)
		}
		if len(methods) != 1 || methods[0].LastFour != "4242" || !methods[0].IsDefault {
			t.Errorf("Unexpected methods payload: %+v", methods)
		}
	})

	t.Run("bad last_four is a 400", func(t *testing.T) {
		status := doJSON(t, ts, http.MethodPost, "/api/payment-methods", map[string]any{
			"user_id":   alice,
			"type":      "debit_card",
			"last_four": "42",
			"provider":  "Visa",
		}, nil)
		if status != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", status)
		}
	})

	t.Run("empty list is an array, not null", func(t *testing.T) {
		bob := createUserViaAPI(t, ts, "Bob")
		resp, err := ts.Client().Get(fmt.Sprintf("%s/api/users/%d/payment-methods", ts.URL, bob))
		if err != nil {
			t.Fatalf("GET failed: %v", err)
		}
		defer resp.Body.Close()

		var buf bytes.Buffer
		if _, err := buf.ReadFrom(resp.Body); err != nil {
			t.Fatalf("Failed to read body: %v", err)
		}
		if got := strings.TrimSpace(buf.String()); got != "[]" {
			t.Errorf("Expected empty JSON array, got %s", got)
		}
	})
}

// TestInviteFlow walks the full join protocol over HTTP: Alice creates a
// group, invites Bob, Bob inspects and redeems the code, payments land,
// and the detail view reports progress.
func TestInviteFlow(t *testing.T) {
	ts := newTestServer(t)

	alice := createUserViaAPI(t, ts, "Alice")
	bob := createUserViaAPI(t, ts, "Bob")

	var group struct {
		ID int64 `json:"id"`
	}
	status := doJSON(t, ts, http.MethodPost, "/api/expense-groups", map[string]any{
		"name":         "Dinner",
		"category":     "Dinner",
		"total_amount": 10000,
		"participants": []map[string]any{
			{"user_id": alice, "amount_owed": 5000},
		},
	}, &group)
	if status != http.StatusCreated {
		t.Fatalf("Group creation returned %d", status)
	}

	var invite struct {
		InviteCode string `json:"invite_code"`
		ExpiresAt  *int64 `json:"expires_at"`
	}
	invitePath := fmt.Sprintf("/api/expense-groups/%d/invites", group.ID)
	status = doJSON(t, ts, http.MethodPost, invitePath, map[string]any{"created_by": alice}, &invite)
	if status != http.StatusCreated {
		t.Fatalf("Invite creation returned %d", status)
	}
	if len(invite.InviteCode) != 12 {
		t.Fatalf("Invite code %q should be 12 hex chars", invite.InviteCode)
	}
	if invite.ExpiresAt != nil {
		t.Error("Expected no expiry by default")
	}

	t.Run("resolve shows group context before joining", func(t *testing.T) {
		var resolved struct {
			ExpenseGroupName     string `json:"expense_group_name"`
			ExpenseGroupCategory string `json:"expense_group_category"`
			CreatedByName        string `json:"created_by_name"`
			Used                 bool   `json:"used"`
			Expired              bool   `json:"expired"`
		}
		status := doJSON(t, ts, http.MethodGet, "/api/invites/"+invite.InviteCode, nil, &resolved)
		if status != http.StatusOK {
			t.Fatalf("Invite resolve returned %d", status)
		}
		if resolved.ExpenseGroupName != "Dinner" || resolved.CreatedByName != "Alice" {
			t.Errorf("Unexpected resolve payload: %+v", resolved)
		}
		if resolved.Used || resolved.Expired {
			t.Error("Fresh invite must resolve as neither used nor expired")
		}
	})

	t.Run("unknown code resolves to 404", func(t *testing.T) {
		if status := doJSON(t, ts, http.MethodGet, "/api/invites/nope", nil, nil); status != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", status)
		}
	})

	t.Run("join adds Bob to the group", func(t *testing.T) {
		var joined struct {
			Success        bool  `json:"success"`
			ExpenseGroupID int64 `json:"expense_group_id"`
		}
		status := doJSON(t, ts, http.MethodPost, "/api/invites/"+invite.InviteCode+"/join",
			map[string]any{"user_id": bob, "amount_owed": 5000}, &joined)
		if status != http.StatusOK {
			t.Fatalf("Invite join returned %d", status)
		}
		if !joined.Success || joined.ExpenseGroupID != group.ID {
			t.Errorf("Unexpected join payload: %+v", joined)
		}
	})

	t.Run("second join fails with the used message", func(t *testing.T) {
		carol := createUserViaAPI(t, ts, "Carol")
		var errResp struct {
			Error string `json:"error"`
		}
		status := doJSON(t, ts, http.MethodPost, "/api/invites/"+invite.InviteCode+"/join",
			map[string]any{"user_id": carol}, &errResp)
		if status != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", status)
		}
		if errResp.Error != "Invite has already been used" {
			t.Errorf("Unexpected error message: %q", errResp.Error)
		}
	})

	t.Run("payment moves the progress bar", func(t *testing.T) {
		status := doJSON(t, ts, http.MethodPost, "/api/payments", map[string]any{
			"expense_group_id": group.ID,
			"user_id":          bob,
			"amount":           4000,
		}, nil)
		if status != http.StatusCreated {
			t.Fatalf("Payment creation returned %d", status)
		}

		var detail struct {
			Participants []struct {
				ID   int64  `json:"id"`
				Name string `json:"name"`
			} `json:"participants"`
			Payments []struct {
				Amount   int64  `json:"amount"`
				UserName string `json:"user_name"`
			} `json:"payments"`
			Progress struct {
				TotalPaid       int64 `json:"total_paid"`
				ProgressPercent int   `json:"progress_percent"`
			} `json:"progress"`
		}
		path := fmt.Sprintf("/api/expense-groups/%d", group.ID)
		if status := doJSON(t, ts, http.MethodGet, path, nil, &detail); status != http.StatusOK {
			t.Fatalf("GET %s returned %d", path, status)
		}

		if len(detail.Participants) != 2 {
			t.Fatalf("Expected 2 participants, got %d", len(detail.Participants))
		}
		if detail.Participants[0].Name != "Alice" || detail.Participants[1].Name != "Bob" {
			t.Errorf("Participants out of join order: %+v", detail.Participants)
		}
		if len(detail.Payments) != 1 || detail.Payments[0].UserName != "Bob" {
			t.Errorf("Unexpected payments payload: %+v", detail.Payments)
		}
		if detail.Progress.TotalPaid != 4000 || detail.Progress.ProgressPercent != 40 {
			t.Errorf("Progress = %+v, want 4000 paid at 40%%", detail.Progress)
		}
	})

	t.Run("used invite stays in the active list for a day", func(t *testing.T) {
		var invites []struct {
			InviteCode string `json:"invite_code"`
			UsedBy     *int64 `json:"used_by"`
		}
		if status := doJSON(t, ts, http.MethodGet, invitePath, nil, &invites); status != http.StatusOK {
			t.Fatalf("GET %s returned %d", invitePath, status)
		}
		if len(invites) != 1 || invites[0].InviteCode != invite.InviteCode {
			t.Fatalf("Unexpected active invites: %+v", invites)
		}
		if invites[0].UsedBy == nil || *invites[0].UsedBy != bob {
			t.Errorf("UsedBy = %v, want %d", invites[0].UsedBy, bob)
		}
	})
}
