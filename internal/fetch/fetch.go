// Package fetch is the HTTP example: one GET of a JSON document, reported on stdout.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"time"

	"github.com/vvka-141/stackprobe/internal/ui"
	"github.com/vvka-141/stackprobe/pkg/stackprobe"
)

// Response is the status and raw body of one request.
type Response struct {
	StatusCode int
	Body       []byte
}

// Client performs single GET requests. It never retries.
type Client struct {
	http *http.Client
}

// NewClient creates a Client whose requests are bounded by timeout.
func NewClient(timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = stackprobe.DefaultFetchTimeout
	}
	return &Client{http: &http.Client{Timeout: timeout}}
}

// Get issues one GET to url and reads the whole body.
func (c *Client) Get(ctx context.Context, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("GET %s: %w", url, err)
	}
	defer res.Body.Close()

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	return &Response{StatusCode: res.StatusCode, Body: body}, nil
}

// Printer formats fetch outcomes.
type Printer struct {
	out    io.Writer
	styler ui.Styler
	table  bool
}

// NewPrinter creates a Printer. With table set, a JSON object body is shown as
// a key/value grid instead of indented JSON.
func NewPrinter(out io.Writer, styler ui.Styler, table bool) *Printer {
	return &Printer{out: out, styler: styler, table: table}
}

// Print reports res, or err when the request did not complete. Only a 200 with
// a JSON body counts as success; anything else prints "Failed to fetch data.".
func (p *Printer) Print(res *Response, err error) {
	if err != nil {
		fmt.Fprintln(p.out, p.styler.Error("Failed to fetch data."))
		fmt.Fprintf(p.out, "Error: %v\n", err)
		return
	}
	if res.StatusCode != http.StatusOK {
		fmt.Fprintln(p.out, p.styler.Error("Failed to fetch data."))
		fmt.Fprintf(p.out, "Status: %d %s\n", res.StatusCode, http.StatusText(res.StatusCode))
		return
	}

	rendered, decodeErr := p.render(res.Body)
	if decodeErr != nil {
		fmt.Fprintln(p.out, p.styler.Error("Failed to fetch data."))
		fmt.Fprintf(p.out, "Error: decode JSON: %v\n", decodeErr)
		return
	}

	fmt.Fprintln(p.out, p.styler.Success("Data fetched successfully!"))
	fmt.Fprintln(p.out, rendered)
}

func (p *Printer) render(body []byte) (string, error) {
	if p.table {
		var obj map[string]any
		if err := json.Unmarshal(body, &obj); err == nil {
			return p.objectTable(obj), nil
		}
	}

	var indented bytes.Buffer
	if err := json.Indent(&indented, bytes.TrimSpace(body), "", "  "); err != nil {
		return "", err
	}
	return indented.String(), nil
}

func (p *Printer) objectTable(obj map[string]any) string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([][]string, 0, len(keys))
	for _, k := range keys {
		v, _ := json.Marshal(obj[k])
		rows = append(rows, []string{k, string(v)})
	}
	return p.styler.Table([]string{"Field", "Value"}, rows)
}
