package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// errorResponse is the error body shape both backend services use.
type errorResponse struct {
	Error string `json:"error"`
}

// Client is the shared base for the auth and order service clients.
type Client struct {
	addr       string
	httpClient *http.Client
}

func newClient(addr string, hc *http.Client) Client {
	if hc == nil {
		hc = &http.Client{Timeout: 10 * time.Second}
	}
	return Client{addr: addr, httpClient: hc}
}

func (c Client) url(path string) string {
	return fmt.Sprintf("http://%s%s", c.addr, path)
}

// do sends the request and decodes the JSON response into out (when out is
// non-nil). Non-2xx responses are turned into an error carrying the service's
// error message when one was provided.
func (c Client) do(req *http.Request, out any) error {
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var errResp errorResponse
		body, _ := io.ReadAll(resp.Body)
		if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
			return fmt.Errorf("%s", errResp.Error)
		}
		return fmt.Errorf("%s %s: status %d", req.Method, req.URL.Path, resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func jsonBody(v any) (io.Reader, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(b), nil
}
