package sync

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hamzaahmad3006/Project-Management-System-sub001/internal/api"
)

func nextMsg(t *testing.T, r *Refresher) interface{} {
	t.Helper()
	done := make(chan interface{}, 1)
	go func() { done <- r.WaitForNextResult()() }()
	select {
	case msg := <-done:
		return msg
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for a refresh result")
		return nil
	}
}

func TestInitialFetchDeliversNotifications(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"n1","type":"update","title":"T"}]`))
	}))
	defer srv.Close()

	r := New(api.NewClient(srv.URL, func() string { return "tok" }), time.Hour)
	if cmd := r.Start(); cmd == nil {
		t.Fatal("Start returned no subscription command")
	}
	defer r.Stop()

	raw := nextMsg(t, r)
	msg, ok := raw.(RefreshResultMsg)
	if !ok {
		t.Fatalf("got %T, want RefreshResultMsg", raw)
	}
	if msg.Err != nil {
		t.Fatalf("fetch error: %v", msg.Err)
	}
	if len(msg.Notifications) != 1 || msg.Notifications[0].ID != "n1" {
		t.Fatalf("unexpected records: %+v", msg.Notifications)
	}

	state, lastSync, err := r.Status()
	if state != RefreshIdle || err != nil || lastSync.IsZero() {
		t.Fatalf("status = %v, %v, %v", state, lastSync, err)
	}
}

func TestRefreshNowTriggersFetch(t *testing.T) {
	calls := make(chan struct{}, 8)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls <- struct{}{}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	r := New(api.NewClient(srv.URL, func() string { return "tok" }), time.Hour)
	r.Start()
	defer r.Stop()

	nextMsg(t, r) // initial fetch
	<-calls

	r.RefreshNow()
	nextMsg(t, r)
	select {
	case <-calls:
	case <-time.After(5 * time.Second):
		t.Fatal("RefreshNow did not reach the server")
	}
}

func TestExpiredSessionReportedAsAuthExpired(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"Token expired"}`))
	}))
	defer srv.Close()

	r := New(api.NewClient(srv.URL, func() string { return "stale" }), time.Hour)
	r.Start()
	defer r.Stop()

	raw := nextMsg(t, r)
	msg, ok := raw.(AuthExpiredMsg)
	if !ok {
		t.Fatalf("got %T, want AuthExpiredMsg", raw)
	}
	if msg.Message != "Token expired" {
		t.Fatalf("message = %q", msg.Message)
	}
}

func TestStartWhileRunningIsNoOp(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	r := New(api.NewClient(srv.URL, func() string { return "tok" }), time.Hour)
	r.Start()
	defer r.Stop()

	if cmd := r.Start(); cmd != nil {
		t.Fatal("second Start must not launch another loop")
	}
}
