package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersAreExposed(t *testing.T) {
	before := testutil.ToFloat64(OrdersCreated)
	OrdersCreated.Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(OrdersCreated))

	PaymentsReconciled.WithLabelValues("paid").Inc()

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "grocery_orders_created_total")
	assert.Contains(t, rec.Body.String(), `grocery_payments_status_changes_total{status="paid"}`)
}
