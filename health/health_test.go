package health

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ryanmat/mcp-server-logicmonitor-sub002/auth"
	"github.com/ryanmat/mcp-server-logicmonitor-sub002/lmapi"
)

func testClient(t *testing.T, baseURL string) *lmapi.Client {
	t.Helper()
	provider, err := auth.NewBearer("tok")
	if err != nil {
		t.Fatal(err)
	}
	c, err := lmapi.New(lmapi.Config{BaseURL: baseURL, Timeout: 2 * time.Second}, provider)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestHealthyWithoutConnectivity(t *testing.T) {
	c := testClient(t, "http://unused.example.com")
	checker := NewChecker(c, func() error { return nil })

	resp := checker.Run(context.Background(), false)
	if resp.Status != StatusHealthy {
		t.Errorf("status = %q, want healthy", resp.Status)
	}
	if _, ok := resp.Checks["connectivity"]; ok {
		t.Error("connectivity check should be skipped")
	}
	if resp.Version == "" {
		t.Error("version should be set")
	}
}

func TestUnhealthyWithoutClient(t *testing.T) {
	checker := NewChecker(nil, nil)
	resp := checker.Run(context.Background(), false)
	if resp.Status != StatusUnhealthy {
		t.Errorf("status = %q, want unhealthy", resp.Status)
	}
	if resp.Checks["client"].Status != StatusFail {
		t.Errorf("client check = %+v, want fail", resp.Checks["client"])
	}
}

func TestUnhealthyOnConfigError(t *testing.T) {
	c := testClient(t, "http://unused.example.com")
	checker := NewChecker(c, func() error { return errors.New("LM_PORTAL is required") })

	resp := checker.Run(context.Background(), false)
	if resp.Status != StatusUnhealthy {
		t.Errorf("status = %q, want unhealthy", resp.Status)
	}
}

func TestConnectivityPass(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/setting/admins" {
			t.Errorf("path = %q, want /setting/admins", r.URL.Path)
		}
		w.Write([]byte(`{"total":1}`))
	}))
	defer srv.Close()

	checker := NewChecker(testClient(t, srv.URL), func() error { return nil })
	resp := checker.Run(context.Background(), true)
	if resp.Status != StatusHealthy {
		t.Errorf("status = %q, want healthy", resp.Status)
	}
	if resp.Checks["connectivity"].Status != StatusPass {
		t.Errorf("connectivity = %+v", resp.Checks["connectivity"])
	}
}

func TestConnectivityFailureDegrades(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	checker := NewChecker(testClient(t, srv.URL), func() error { return nil })
	resp := checker.Run(context.Background(), true)
	if resp.Status != StatusDegraded {
		t.Errorf("status = %q, want degraded on connectivity warn", resp.Status)
	}
	if resp.Checks["connectivity"].Status != StatusWarn {
		t.Errorf("connectivity = %+v, want warn", resp.Checks["connectivity"])
	}
}
