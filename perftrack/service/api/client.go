// Package api contains the HTTP delivery layer talking to the collection
// service.
package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"time"

	"github.com/splitio/go-toolkit/v5/logging"

	"github.com/homelinehq/perf-go-client/perftrack"
)

const defaultHTTPTimeout = 30

// HTTPClient structure to wrap up the net/http.Client
type HTTPClient struct {
	url        string
	httpClient *http.Client
	logger     logging.LoggerInterface
}

// NewHTTPClient instance of HTTPClient pointed at the collection endpoint.
// The underlying client carries a cookie jar so session credentials accompany
// every request.
func NewHTTPClient(endpoint string, logger logging.LoggerInterface) *HTTPClient {
	jar, _ := cookiejar.New(nil)
	client := &http.Client{
		Timeout: defaultHTTPTimeout * time.Second,
		Jar:     jar,
	}
	return &HTTPClient{
		url:        endpoint,
		httpClient: client,
		logger:     logger,
	}
}

// Post performs a HTTP POST request
func (c *HTTPClient) Post(service string, body []byte) error {
	serviceURL := c.url + service
	c.logger.Debug("[POST] ", serviceURL)
	req, err := http.NewRequest("POST", serviceURL, bytes.NewBuffer(body))
	if err != nil {
		return err
	}
	req.Close = true // To prevent EOF error when connection is closed

	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("PerfClientName", perftrack.ClientName)
	req.Header.Add("PerfClientVersion", perftrack.Version)

	c.logger.Verbose("[REQUEST_BODY]", string(body), "[END_REQUEST_BODY]")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Error posting data to API: ", serviceURL, " ", err.Error())
		return err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	return fmt.Errorf("POST method: Status Code: %d - %s", resp.StatusCode, resp.Status)
}
