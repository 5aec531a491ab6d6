package relay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"ciphera/internal/domain"
)

// HTTP is the JSON-over-HTTP implementation of domain.RelayClient.
type HTTP struct {
	Base string
	HTTP *http.Client
}

// NewHTTP returns an HTTP relay client rooted at base.
func NewHTTP(base string) *HTTP { return &HTTP{Base: base, HTTP: http.DefaultClient} }

// RegisterPreKeyBundle publishes the caller's current pre-key bundle.
func (c *HTTP) RegisterPreKeyBundle(ctx context.Context, bundle domain.PreKeyBundle) error {
	return c.post(ctx, "/register", bundle, nil)
}

// FetchPreKeyBundle retrieves a peer's published pre-key bundle.
func (c *HTTP) FetchPreKeyBundle(ctx context.Context, username domain.Username) (domain.PreKeyBundle, error) {
	var out domain.PreKeyBundle
	if err := c.getJSON(ctx, "/prekey/"+url.PathEscape(username.String()), &out); err != nil {
		return domain.PreKeyBundle{}, err
	}
	return out, nil
}

// SendMessage posts an envelope to the peer's mailbox.
func (c *HTTP) SendMessage(ctx context.Context, envelope domain.Envelope) error {
	return c.post(ctx, "/msg/"+url.PathEscape(envelope.To.String()), envelope, nil)
}

// FetchMessages retrieves up to limit pending envelopes for username.
func (c *HTTP) FetchMessages(ctx context.Context, username domain.Username, limit int) ([]domain.Envelope, error) {
	u := c.Base + "/msg/" + url.PathEscape(username.String())
	if limit > 0 {
		u += "?limit=" + strconv.Itoa(limit)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return nil, fmt.Errorf("relay get %s: %s", u, resp.Status)
	}
	var envs []domain.Envelope
	return envs, json.NewDecoder(resp.Body).Decode(&envs)
}

// AckMessages acknowledges the first count pending envelopes for username.
func (c *HTTP) AckMessages(ctx context.Context, username domain.Username, count int) error {
	return c.post(ctx, "/msg/"+url.PathEscape(username.String())+"/ack", struct {
		Count int `json:"count"`
	}{Count: count}, nil)
}

// FetchAccountCanary retrieves the relay's canary string for username, used
// to detect account key changes out of band.
func (c *HTTP) FetchAccountCanary(ctx context.Context, username domain.Username) (string, error) {
	var out struct {
		Canary string `json:"canary"`
	}
	if err := c.getJSON(ctx, "/account/"+url.PathEscape(username.String())+"/canary", &out); err != nil {
		return "", err
	}
	return out.Canary, nil
}

func (c *HTTP) post(ctx context.Context, path string, in any, out any) error {
	buf := new(bytes.Buffer)
	if err := json.NewEncoder(buf).Encode(in); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Base+path, buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("relay post %s: %s", path, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

func (c *HTTP) getJSON(ctx context.Context, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.Base+path, nil)
	if err != nil {
		return err
	}
	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode/100 != 2 {
		return fmt.Errorf("relay get %s: %s", path, resp.Status)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

var _ domain.RelayClient = (*HTTP)(nil)
