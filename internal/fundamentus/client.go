// Package fundamentus is the upstream source boundary: it fetches the
// FII result table from fundamentus.com.br and turns the HTML into raw
// records. All Fundamentus access happens through this client.
package fundamentus

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/brfin/fiiradar/internal/contracts"
	"github.com/brfin/fiiradar/pkg/config"
	"github.com/brfin/fiiradar/pkg/httputil"
	"github.com/brfin/fiiradar/pkg/logger"
)

// minBodySize guards against empty or truncated responses.
const minBodySize = 100

// Client handles communication with Fundamentus
type Client struct {
	httpClient *httputil.Client
	logger     *logger.Logger
	url        string
	attempts   int
}

// NewClient creates a new Fundamentus client
func NewClient(httpClient *httputil.Client, cfg *config.Config, log *logger.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		logger:     log,
		url:        cfg.Fundamentus.URL,
		// the retry budget is on top of the initial attempt
		attempts: cfg.Fundamentus.MaxRetries + 1,
	}
}

// FetchRaw downloads the result page and extracts the fund table.
// Transport errors are retried inside the HTTP client; whatever survives
// the retry budget is classified and surfaced as a FetchError.
func (c *Client) FetchRaw(ctx context.Context) ([]contracts.RawRecord, []string, error) {
	resp, err := c.httpClient.Get(ctx, c.url)
	if err != nil {
		return nil, nil, contracts.NewFetchError(classify(err), c.attempts, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		return nil, nil, contracts.NewFetchError(contracts.FetchConnection, c.attempts, err)
	}

	body, err := io.ReadAll(decodeBody(resp))
	if err != nil {
		return nil, nil, contracts.NewFetchError(classify(err), c.attempts, err)
	}

	if len(body) < minBodySize {
		err := fmt.Errorf("response too small: %d bytes", len(body))
		return nil, nil, contracts.NewFetchError(contracts.FetchParse, c.attempts, err)
	}

	records, columns, err := parseResultTable(string(body))
	if err != nil {
		return nil, nil, contracts.NewFetchError(contracts.FetchParse, c.attempts, err)
	}

	c.logger.WithFields(map[string]interface{}{
		"count":   len(records),
		"columns": len(columns),
	}).Info("Fetched Fundamentus table")

	return records, columns, nil
}

// decodeBody converts legacy Latin-1 responses to UTF-8
func decodeBody(resp *http.Response) io.Reader {
	ct := strings.ToLower(resp.Header.Get("Content-Type"))
	if strings.Contains(ct, "iso-8859-1") || strings.Contains(ct, "latin1") {
		return transform.NewReader(resp.Body, charmap.ISO8859_1.NewDecoder())
	}
	return resp.Body
}

// classify maps a transport error onto the fetch taxonomy
func classify(err error) contracts.FetchErrorKind {
	if errors.Is(err, context.DeadlineExceeded) {
		return contracts.FetchTimeout
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return contracts.FetchTimeout
	}

	return contracts.FetchConnection
}
