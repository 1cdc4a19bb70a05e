package ingest

import (
	"github.com/nhatminh/vifin/internal/api"
)

// parseFailure converts an NLP endpoint error into a user-ready ParseError:
// the server's message verbatim when present, otherwise the generic hint.
func parseFailure(err error) error {
	message := api.ServerMessage(err)
	if message == "" {
		message = ParseFailureHint
	}
	return &ParseError{Message: message, Err: err}
}
