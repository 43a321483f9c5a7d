package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/riskibarqy/futball/internal/config"
	"github.com/riskibarqy/futball/internal/platform/logging"
)

func TestStart_AllDisabled(t *testing.T) {
	t.Parallel()

	tel, err := Start(config.Config{UptraceEnabled: true, UptraceDSN: " "}, logging.NewNop())
	require.NoError(t, err)
	assert.Empty(t, tel.Running())
	assert.NoError(t, tel.Shutdown(context.Background()))
}

func TestStart_Pprof(t *testing.T) {
	t.Parallel()

	tel, err := Start(config.Config{PprofEnabled: true, PprofAddr: "127.0.0.1:0"}, logging.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"pprof"}, tel.Running())
	require.NoError(t, tel.Shutdown(context.Background()))
	assert.Empty(t, tel.Running())
}

func TestStart_PprofBadAddr(t *testing.T) {
	t.Parallel()

	_, err := Start(config.Config{PprofEnabled: true, PprofAddr: "not-an-addr"}, logging.NewNop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "start pprof")
}

func TestPprofMux_ServesIndex(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	pprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/debug/pprof/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "goroutine")
}

func TestShutdown_JoinsErrorsInReverseOrder(t *testing.T) {
	t.Parallel()

	var order []string
	fail := errors.New("flush failed")
	tel := &Telemetry{logger: logging.NewNop(), stoppers: []stopper{
		{name: "first", stop: func(context.Context) error { order = append(order, "first"); return nil }},
		{name: "second", stop: func(context.Context) error { order = append(order, "second"); return fail }},
	}}

	err := tel.Shutdown(context.Background())
	require.ErrorIs(t, err, fail)
	assert.Equal(t, []string{"second", "first"}, order)

	var nilTel *Telemetry
	assert.NoError(t, nilTel.Shutdown(context.Background()))
}
