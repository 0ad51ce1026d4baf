package mcp

import (
	"github.com/rpggio/siteledger/internal/transport"
)

// toolError converts a domain error into the coded error returned to the
// client, sharing the REST API's codes and recovery hints.
func toolError(err error) error {
	if err == nil {
		return nil
	}
	_, apiErr := transport.MapError(err)
	return apiErr
}
