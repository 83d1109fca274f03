// Package verifier calls the zero-knowledge proof verifier service. The
// verifier is authoritative for anonymous votes: a vote is recorded only
// after it accepts the proof, and an unreachable verifier is a hard failure,
// never an implicit accept.
package verifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
)

// Payload carries everything the verifier needs to check that the nullifier
// was honestly derived inside a proof of a valid, unused vote.
type Payload struct {
	Proof         json.RawMessage `json:"proof"`
	PublicSignals json.RawMessage `json:"publicSignals"`
	PollID        string          `json:"pollId"`
	OptionIndex   int             `json:"optionIndex"`
	Nullifier     string          `json:"nullifier"`
}

type Client struct {
	address    string
	httpClient *http.Client
}

func NewClient(address string, timeout time.Duration) *Client {
	return &Client{
		address:    address,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Verify submits the payload and returns the verifier's verdict. Transport
// failures and 5xx responses are retried with backoff before giving up.
func (c *Client) Verify(ctx context.Context, payload Payload) (bool, error) {
	const op = "verifier.Verify"

	body, err := json.Marshal(payload)
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	var valid bool

	backoff := retry.WithMaxRetries(3, retry.NewExponential(200*time.Millisecond))
	err = retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.address+"/verify", bytes.NewReader(body))
		if err != nil {
			return err
		}
		req.Header.Set("Content-Type", "application/json")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 500 {
			return retry.RetryableError(fmt.Errorf("verifier returned %d", resp.StatusCode))
		}
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("verifier returned %d", resp.StatusCode)
		}

		var verdict struct {
			Valid bool `json:"valid"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&verdict); err != nil {
			return err
		}

		valid = verdict.Valid
		return nil
	})
	if err != nil {
		return false, fmt.Errorf("%s: %w", op, err)
	}

	return valid, nil
}
