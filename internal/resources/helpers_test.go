package resources

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/eliteresort/resortadmin/internal/apiclient"
	"github.com/eliteresort/resortadmin/internal/config"
	"github.com/eliteresort/resortadmin/internal/session"
)

// newBackend wires a client, session store and config against a stub
// backend handler.
func newBackend(t *testing.T, handler http.Handler) (*apiclient.Client, *session.Store, *config.Config) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.API.BaseURL = server.URL

	store := session.NewStore(session.NewMemoryKV())
	client := apiclient.New(apiclient.Options{
		BaseURL:   cfg.API.BaseURL,
		LoginPath: cfg.API.LoginEndpoint(),
		Session:   store,
	})
	return client, store, cfg
}

// errMessage surfaces the backend's structured message for assertions.
func errMessage(err error) string {
	return apiclient.ErrorMessage(err, "")
}
