package vocabulary

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"gopkg.in/yaml.v3"
	"resty.dev/v3"

	"github.com/at-ishikawa/verbdrill/internal/yamlfile"
)

const (
	DefaultFetchAttempts = 3
	fetchRetryDelay      = 200 * time.Millisecond
)

// Reader reads vocabulary lists from files or http(s) URLs.
// JSON documents are accepted too since they are valid YAML.
type Reader struct {
	client   *resty.Client
	attempts uint
}

func NewReader() *Reader {
	return &Reader{
		client:   resty.New(),
		attempts: DefaultFetchAttempts,
	}
}

func (r *Reader) Close() error {
	return r.client.Close()
}

// Read returns the entries at source, which is either a local path or an http(s) URL.
// Unlike Load, a missing local file is an error.
// Server errors and transport errors are retried; other non 200 responses are not.
func (r *Reader) Read(ctx context.Context, source string) ([]Entry, error) {
	if !strings.HasPrefix(source, "http://") && !strings.HasPrefix(source, "https://") {
		entries, err := yamlfile.Read[[]Entry](source)
		if err != nil {
			return nil, fmt.Errorf("yamlfile.Read(%s) > %w", source, err)
		}
		return entries, nil
	}

	var body []byte
	if err := retry.Do(
		func() error {
			res, err := r.client.R().
				SetContext(ctx).
				Get(source)
			if err != nil {
				return fmt.Errorf("client.Get(%s) > %w", source, err)
			}
			if res.StatusCode() >= http.StatusInternalServerError {
				return fmt.Errorf("client.Get(%s): response error %d", source, res.StatusCode())
			}
			if res.StatusCode() != http.StatusOK {
				return retry.Unrecoverable(fmt.Errorf("client.Get(%s): unexpected status %d", source, res.StatusCode()))
			}
			body = res.Bytes()
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(r.attempts),
		retry.Delay(fetchRetryDelay),
		retry.LastErrorOnly(true),
	); err != nil {
		return nil, err
	}

	var entries []Entry
	if err := yaml.Unmarshal(body, &entries); err != nil {
		return nil, fmt.Errorf("yaml.Unmarshal(%s) > %w", source, err)
	}
	return entries, nil
}
