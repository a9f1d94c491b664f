package backend

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/pirates/party-console/internal/core/domain"
	"github.com/pirates/party-console/internal/core/ports"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewClient(Config{BaseURL: srv.URL + "/", Timeout: 2 * time.Second}, zerolog.Nop())
}

func TestLogin_PostsFormAndReturnsToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/manager/login" {
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Fatalf("unexpected content type %q", ct)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if r.PostForm.Get("username") != "mgr" || r.PostForm.Get("password") != "pw" {
			t.Fatalf("unexpected form %v", r.PostForm)
		}
		_, _ = io.WriteString(w, `{"access_token":"abc.def.ghi","token_type":"bearer"}`)
	})

	token, err := c.Login(context.Background(), domain.FamilyManager, "mgr", "pw")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if token != "abc.def.ghi" {
		t.Fatalf("unexpected token %q", token)
	}
}

func TestLogin_Unauthorized(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"detail":"Incorrect username or password"}`)
	})

	_, err := c.Login(context.Background(), domain.FamilyOwner, "x", "y")
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UserFamilyHasNoPasswordLogin(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("backend should not be called")
	})
	if _, err := c.Login(context.Background(), domain.FamilyUser, "x", "y"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestStaffSignup_PostsAccount(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/manager/signup" {
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
		if r.Header.Get("Authorization") != "" {
			t.Fatalf("signup must not send a token")
		}
		var body map[string]any
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if body["username"] != "park01" || body["phoneNumber"] != "01012345678" || body["owner_id"] != float64(3) {
			t.Fatalf("unexpected body %v", body)
		}
		_, _ = io.WriteString(w, `{"msg":"ok"}`)
	})

	err := c.StaffSignup(context.Background(), domain.FamilyManager, ports.StaffSignupInput{
		Username: "park01", Password: "pw1234!", Name: "park", PhoneNumber: "01012345678", OwnerID: 3,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestUsernameTaken_AsksDuplicateCheck(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/owner/duplicate" {
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
		dup := r.URL.Query().Get("username") == "kim001"
		_ = json.NewEncoder(w).Encode(map[string]bool{"duplicate": dup})
	})

	taken, err := c.UsernameTaken(context.Background(), domain.FamilyOwner, "kim001")
	if err != nil || !taken {
		t.Fatalf("expected kim001 to be taken, got %v %v", taken, err)
	}
	taken, err = c.UsernameTaken(context.Background(), domain.FamilyOwner, "lee002")
	if err != nil || taken {
		t.Fatalf("expected lee002 to be free, got %v %v", taken, err)
	}
	if _, err := c.UsernameTaken(context.Background(), domain.FamilyAdmin, "root"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("admins have no signup, got %v", err)
	}
}

func TestListManagers_SendsQueryAndBearer(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/owner/managers/7" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer tok" {
			t.Fatalf("unexpected auth header %q", got)
		}
		q := r.URL.Query()
		if q.Get("page") != "2" || q.Get("pageSize") != "5" || q.Get("isOldestOrders") != "true" || q.Get("name") != "lee" {
			t.Fatalf("unexpected query %v", q)
		}
		_, _ = io.WriteString(w, `{"data":[{"id":3,"name":"lee","username":"lee1","phoneNumber":"010","date":"2025-01-02","isAuth":false}],"totalCount":11}`)
	})

	got, err := c.ListManagers(context.Background(), "tok", 7, ports.ListQuery{Page: 2, PageSize: 5, Name: "lee", IsOldestOrders: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.TotalCount != 11 || len(got.Items) != 1 || got.Items[0].Username != "lee1" {
		t.Fatalf("unexpected list %+v", got)
	}
}

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		status int
		body   string
		want   error
	}{
		{http.StatusUnauthorized, `{"detail":"expired"}`, domain.ErrInvalidToken},
		{http.StatusNotFound, ``, domain.ErrNotFound},
		{http.StatusBadRequest, `{"detail":{"msg":"bad id"}}`, domain.ErrBackendUnavailable},
		{http.StatusInternalServerError, `oops`, domain.ErrBackendUnavailable},
	}
	for _, tt := range tests {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tt.status)
			_, _ = io.WriteString(w, tt.body)
		})
		err := c.ApproveOwner(context.Background(), "tok", 1)
		if !errors.Is(err, tt.want) {
			t.Fatalf("status %d: expected %v, got %v", tt.status, tt.want, err)
		}
	}
}

func TestMutation_FailAckIsNotFound(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut || r.URL.Path != "/admin/owner/deny/9" {
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
		_, _ = io.WriteString(w, `{"msg":"fail"}`)
	})
	if err := c.DenyOwner(context.Background(), "tok", 9); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestAssignTeams_Body(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Data []struct {
				ID   int64 `json:"id"`
				Team int   `json:"team"`
			} `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if len(body.Data) != 2 || body.Data[1].ID != 5 || body.Data[1].Team != 2 {
			t.Fatalf("unexpected body %+v", body)
		}
		_, _ = io.WriteString(w, `{"msg":"ok","updated_count":2}`)
	})

	err := c.AssignTeams(context.Background(), "tok", []domain.TeamAssignment{{UserID: 4, Team: 1}, {UserID: 5, Team: 2}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSetPartyUserOn_UsesQueryFlag(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/manager/partyUserOn/12" || r.URL.Query().Get("partyOn") != "false" {
			t.Fatalf("unexpected request %s", r.URL.String())
		}
		_, _ = io.WriteString(w, `{"msg":"ok"}`)
	})
	if err := c.SetPartyUserOn(context.Background(), "tok", 12, false); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestChat_UsesChatService(t *testing.T) {
	chat := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/messages/3":
			_, _ = io.WriteString(w, `[{"id":1,"content":"hi","timestamp":"2025-01-31T16:05:11","user_id":4,"chat_room_id":3}]`)
		case r.Method == http.MethodPost && r.URL.Path == "/chat_rooms/":
			_, _ = io.WriteString(w, `{"id":42,"user1_id":4,"user2_id":5}`)
		default:
			t.Fatalf("unexpected %s %s", r.Method, r.URL.Path)
		}
	}))
	defer chat.Close()
	c := NewClient(Config{BaseURL: "http://127.0.0.1:1", ChatURL: chat.URL}, zerolog.Nop())

	msgs, err := c.Messages(context.Background(), "tok", 3)
	if err != nil {
		t.Fatalf("messages: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Timestamp.Hour() != 16 {
		t.Fatalf("unexpected messages %+v", msgs)
	}

	roomID, err := c.CreateChatRoom(context.Background(), "tok", 4, 5)
	if err != nil || roomID != 42 {
		t.Fatalf("create room: id=%d err=%v", roomID, err)
	}
}

func TestCancelledContextReportsCause(t *testing.T) {
	release := make(chan struct{})
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		<-release
	})
	defer close(release)

	ctx, cancel := context.WithCancelCause(context.Background())
	cancel(domain.ErrSuperseded)

	_, err := c.ListOwners(ctx, "tok", ports.ListQuery{})
	if !errors.Is(err, domain.ErrSuperseded) {
		t.Fatalf("expected ErrSuperseded, got %v", err)
	}
}

func TestUnreachableBackend(t *testing.T) {
	c := NewClient(Config{BaseURL: "http://127.0.0.1:1", Timeout: time.Second}, zerolog.Nop())
	_, err := c.RegistrableAccommodations(context.Background(), "")
	if !errors.Is(err, domain.ErrBackendUnavailable) {
		t.Fatalf("expected ErrBackendUnavailable, got %v", err)
	}
}
