// Package ledger reads poll state from the contract gateway. The chain copy
// is matched to the descriptive store by pollId and is merged into read
// responses only; it never feeds server-side tallies or activity checks.
package ledger

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"

	"github.com/zkpolls/zkpolls-backend/internal/entity"
)

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

// Poll fetches the on-chain record for pollID. Transport failures and 5xx
// responses are retried with backoff; a missing record is not retried.
func (c *Client) Poll(ctx context.Context, pollID string) (entity.OnChainPoll, error) {
	const op = "ledger.Poll"

	var state entity.OnChainPoll

	backoff := retry.WithMaxRetries(3, retry.NewExponential(200*time.Millisecond))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.address+"/polls/"+pollID, nil)
		if err != nil {
			return err
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return retry.RetryableError(err)
		}
		defer resp.Body.Close()

		switch {
		case resp.StatusCode == http.StatusNotFound:
			return fmt.Errorf("poll %s not on chain", pollID)
		case resp.StatusCode >= 500:
			return retry.RetryableError(fmt.Errorf("gateway returned %d", resp.StatusCode))
		case resp.StatusCode != http.StatusOK:
			return fmt.Errorf("gateway returned %d", resp.StatusCode)
		}

		var body struct {
			PollID     string  `json:"pollId"`
			TotalVotes int64   `json:"totalVotes"`
			Tallies    []int64 `json:"tallies"`
		}
		if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
			return err
		}

		state = entity.OnChainPoll{
			PollID:     body.PollID,
			TotalVotes: body.TotalVotes,
			Tallies:    body.Tallies,
		}
		return nil
	})
	if err != nil {
		return entity.OnChainPoll{}, fmt.Errorf("%s: %w", op, err)
	}

	return state, nil
}
