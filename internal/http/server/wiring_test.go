package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/dropDatabas3/studyhub/internal/config"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T, driver string) *config.Config {
	t.Helper()
	t.Setenv("STORAGE_DRIVER", driver)
	t.Setenv("SQLITE_PATH", filepath.Join(t.TempDir(), "studyhub.db"))
	t.Setenv("PASSWORD_BCRYPT_COST", "4")
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func TestBuild_EndToEnd(t *testing.T) {
	for _, driver := range []string{"memory", "sqlite"} {
		t.Run(driver, func(t *testing.T) {
			app, err := Build(context.Background(), testConfig(t, driver))
			require.NoError(t, err)
			defer app.Close()

			body, _ := json.Marshal(map[string]string{"name": "Ann", "email": "ann@example.com", "password": "pw"})
			rec := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodPost, "/register", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			app.Handler.ServeHTTP(rec, req)
			require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

			var reg struct {
				Token string `json:"token"`
			}
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &reg))

			for i := 0; i < 2; i++ {
				rec = httptest.NewRecorder()
				req = httptest.NewRequest(http.MethodGet, "/me", nil)
				req.Header.Set("Authorization", "Bearer "+reg.Token)
				app.Handler.ServeHTTP(rec, req)
				require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
			}

			rec = httptest.NewRecorder()
			app.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
			require.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestRun_StopsOnCancel(t *testing.T) {
	cfg := testConfig(t, "memory")
	cfg.Server.Addr = "127.0.0.1:0"
	app, err := Build(context.Background(), cfg)
	require.NoError(t, err)
	defer app.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()
	cancel()
	require.NoError(t, <-done)
}
