package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matheustorresii/vitrine-sorocabana/internal/apiclient"
	"github.com/matheustorresii/vitrine-sorocabana/internal/db"
	"github.com/matheustorresii/vitrine-sorocabana/internal/live"
	"github.com/matheustorresii/vitrine-sorocabana/internal/metrics"
	"github.com/matheustorresii/vitrine-sorocabana/internal/middleware"
	"github.com/matheustorresii/vitrine-sorocabana/internal/pages"
	"github.com/matheustorresii/vitrine-sorocabana/internal/services"
)

type portal struct {
	srv   *httptest.Server
	store *services.Store
	m     *metrics.Metrics
}

func newPortal(t *testing.T, burst int) *portal {
	t.Helper()
	log := logrus.New()
	log.SetOutput(io.Discard)

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/produtos":
			_, _ = io.WriteString(w, `[{"id":1,"nome":"Cesta de Doces","preco":19.9}]`)
		case "/api/posts":
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = io.WriteString(w, `{"message":"Blog em manutenção"}`)
		default:
			_, _ = io.WriteString(w, `{"totalUsuarios":3,"totalProdutos":1,"totalPosts":0}`)
		}
	}))
	t.Cleanup(backend.Close)

	m := metrics.New()
	client := apiclient.New(backend.URL, apiclient.WithObserver(m.ObserveFetch))

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	store, err := services.New(ctx,
		services.NewJSONStorage(db.NewMemoryStorage(), services.StorageKey),
		services.WithLogger(log),
		services.WithRecorder(m.RecordMutation),
	)
	require.NoError(t, err)
	hub := live.NewHub(store.Services, log)
	store.Subscribe(hub.Publish)
	go hub.Run(ctx)

	ph, err := pages.NewHandler(client, store, log)
	require.NoError(t, err)

	r := NewRouter(Deps{
		Pages:    ph,
		Services: services.NewHandler(store),
		Hub:      hub,
		Metrics:  m,
		Limiter:  middleware.NewRateLimiter(0.001, burst, log),
		Log:      log,
	})
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return &portal{srv: srv, store: store, m: m}
}

func noRedirect(*http.Request, []*http.Request) error { return http.ErrUseLastResponse }

func get(t *testing.T, u string) (int, string) {
	t.Helper()
	resp, err := http.Get(u)
	require.NoError(t, err)
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func TestRouter_Pages(t *testing.T) {
	p := newPortal(t, 10)

	code, body := get(t, p.srv.URL+"/loja")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Cesta de Doces")
	assert.Contains(t, body, "19,90")

	code, body = get(t, p.srv.URL+"/blog")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, "Blog em manutenção")

	code, _ = get(t, p.srv.URL+"/static/portal.css")
	assert.Equal(t, http.StatusOK, code)

	code, body = get(t, p.srv.URL+"/metrics")
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, body, `vitrine_backend_fetches_total{endpoint="/api/produtos",outcome="ok"} 1`)
	assert.Contains(t, body, `vitrine_backend_fetches_total{endpoint="/api/posts",outcome="status"} 1`)
}

func TestRouter_AdminFormAndRateLimit(t *testing.T) {
	p := newPortal(t, 1)
	client := &http.Client{CheckRedirect: noRedirect}

	form := url.Values{"title": {"Aulas"}, "description": {"Reforço escolar"}, "category": {"Educação"}}
	resp, err := client.PostForm(p.srv.URL+"/admin/servicos", form)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Len(t, p.store.Services(), 7)

	resp, err = client.PostForm(p.srv.URL+"/admin/servicos/7/excluir", nil)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Len(t, p.store.Services(), 7)
}

func TestRouter_LiveFeed(t *testing.T) {
	p := newPortal(t, 10)

	wsURL := "ws" + strings.TrimPrefix(p.srv.URL, "http") + "/ws/servicos"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))

	var msg live.Message
	require.NoError(t, conn.ReadJSON(&msg))
	assert.Len(t, msg.Services, 6)

	resp, err := http.Post(p.srv.URL+"/api/servicos", "application/json",
		strings.NewReader(`{"title":"Aulas","description":"Reforço","category":"Educação"}`))
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	require.NoError(t, conn.ReadJSON(&msg))
	require.Len(t, msg.Services, 7)
	assert.Equal(t, "Aulas", msg.Services[6].Title)
}
