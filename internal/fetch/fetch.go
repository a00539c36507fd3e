// Package fetch is the single JSON-over-HTTP GET helper every upstream
// call (song providers, lyrics lookups) goes through.
package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

var logger = log.With().Str("component", "fetch").Logger()

// JSON issues a GET against url and decodes the body into out. Callers
// supply the shared client so the per-call timeout is set in one place.
func JSON(ctx context.Context, client *http.Client, url string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "kantoludo/1.0")

	resp, err := client.Do(req)
	if err != nil {
		logger.Warn().Str("url", url).Err(err).Msg("Request failed")
		return fmt.Errorf("get %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logger.Debug().Str("url", url).Int("status", resp.StatusCode).Msg("Non-OK response")
		return fmt.Errorf("get %s: unexpected status %d", url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		logger.Debug().Str("url", url).Err(err).Msg("Malformed payload")
		return fmt.Errorf("decode %s: %w", url, err)
	}
	return nil
}
