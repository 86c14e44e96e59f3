package integration_test

import (
	"sync"
	"testing"

	"fairway_backend/test/helpers"
)

var (
	globalTestServer *helpers.TestServer
	serverOnce       sync.Once
)

// GetTestServer returns the shared test server, creating it on first use.
// Callers must have checked helpers.RequireDatabase first.
func GetTestServer(t *testing.T) *helpers.TestServer {
	serverOnce.Do(func() {
		globalTestServer = helpers.NewTestServer(t)
	})
	globalTestServer.ClearTables()
	return globalTestServer
}
