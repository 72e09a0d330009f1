package httpx

import "net/http"

// Client abstracts the HTTP transport used by the external-oracle adapters
// so tests can substitute a mock.
type Client interface {
	Do(req *http.Request) (*http.Response, error)
}
