package testserver

import (
	"fmt"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rpggio/siteledger/internal/app"
	"github.com/rpggio/siteledger/internal/config"
	"github.com/rpggio/siteledger/internal/sqlite"
	"github.com/stretchr/testify/require"
)

// TestServer is the full stack over an in-memory database.
type TestServer struct {
	Server *httptest.Server
	DB     *sqlite.DB
	App    *app.App
}

// New starts a server with default workflow settings and the MCP endpoint
// mounted.
func New(t *testing.T) *TestServer {
	return NewWithWorkflow(t, config.Default().Workflow)
}

// NewWithWorkflow starts a server with the given workflow switches.
func NewWithWorkflow(t *testing.T, wf config.WorkflowConfig) *TestServer {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := sqlite.New(dsn)
	require.NoError(t, err)
	_, err = db.RunMigrations()
	require.NoError(t, err)

	a := app.New(db, wf, nil)
	server := httptest.NewServer(a.Handler(true))

	t.Cleanup(func() {
		server.Close()
		_ = db.Close()
	})

	return &TestServer{
		Server: server,
		DB:     db,
		App:    a,
	}
}

// URL is the server's base URL.
func (ts *TestServer) URL() string {
	return ts.Server.URL
}
