package commands

import (
	"net/http"

	"github.com/taleemtrack/taleemtrack-cli/pkg/config"
)

func newHTTPClient(cfg *config.Config) *http.Client {
	return &http.Client{Timeout: cfg.API.Timeout}
}
