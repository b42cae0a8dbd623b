package common

import (
	"net/http"

	"github.com/futig/ai-tutor/internal/config"
	pkgHTTP "github.com/futig/ai-tutor/pkg/http"
)

// NewBaseHTTPClient builds the outbound client shared by external service connectors
func NewBaseHTTPClient(cfg config.HTTPClientConfig) *http.Client {
	return pkgHTTP.NewClient(
		pkgHTTP.WithRequestTimeout(cfg.RequestTimeout),
		pkgHTTP.WithConnClientTimeout(cfg.ConnTimeout),
		pkgHTTP.WithClientKeepAlive(cfg.KeepAlive),
		pkgHTTP.WithIdleConnTimeout(cfg.IdleConnTimeout),
		pkgHTTP.WithResponseHeaderTimeout(cfg.ResponseHeaderTimeout),
		pkgHTTP.WithRequestLogging(),
		pkgHTTP.WithErrorBodyCapture(),
	)
}
