package cmd

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpin "shiptrack/internal/adapters/in/http"
	"shiptrack/internal/adapters/out/metrics"
	"shiptrack/internal/adapters/out/postgres/sqlitetest"
	"shiptrack/internal/core/application/usecases/queries"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestRoot(t *testing.T, configs Config) *CompositionRoot {
	t.Helper()
	root, err := NewCompositionRoot(configs, sqlitetest.Open(t), zap.NewNop(), metrics.New(prometheus.NewRegistry()))
	require.NoError(t, err)
	return root
}

func TestCompositionRoot_ServesRequests(t *testing.T) {
	root := newTestRoot(t, Config{NodeID: 3, TrackingPrefix: "PKG"})

	e, err := httpin.NewRouter(httpin.NewServer(root.CreateHTTPHandlers()), httpin.RouterConfig{})
	require.NoError(t, err)

	body := `{"client_id":"1","description":"box","weight":"1","length":"1","width":"1","height":"1",` +
		`"declared_value":"0","origin":"A","destination":"B"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/packages", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"tracking_number":"PKG-`)
}

func TestCompositionRoot_InvalidNodeID(t *testing.T) {
	_, err := NewCompositionRoot(Config{NodeID: 5000}, sqlitetest.Open(t), zap.NewNop(), nil)
	assert.Error(t, err)
}

func TestCompositionRoot_JobManager(t *testing.T) {
	root := newTestRoot(t, Config{NodeID: 1, OverdueScanSchedule: "@every 1h"})

	manager := root.CreateJobManager()
	require.NoError(t, manager.StartAll())
	manager.StopAll()

	query, err := queries.NewGetOverdueShipmentsQuery(root.clock.Now())
	require.NoError(t, err)
	views, err := root.CreateGetOverdueShipmentsQueryHandler().Handle(context.Background(), query)
	require.NoError(t, err)
	assert.Empty(t, views)
}

func TestCompositionRoot_InvalidSchedule(t *testing.T) {
	root := newTestRoot(t, Config{NodeID: 1, OverdueScanSchedule: "not a schedule"})

	assert.Error(t, root.CreateJobManager().StartAll())
}
