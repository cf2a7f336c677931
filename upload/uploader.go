package upload

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/chrisuehlinger/cliptrim/trimmer"
)

// Field names posted for a trim. They match the hidden inputs of the
// upload form.
const (
	FieldStartTime = "startTimeSeconds"
	FieldEndTime   = "endTimeSeconds"
	FieldTitle     = "videoTitle"
)

// ErrNoEndpoint is returned by NewUploader for an empty endpoint.
var ErrNoEndpoint = errors.New("upload: no endpoint")

// StatusError is returned when the endpoint answers with a non-2xx status.
type StatusError struct {
	Code   int
	Status string
	Body   string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("upload: endpoint returned %s", e.Status)
	}
	return fmt.Sprintf("upload: endpoint returned %s: %s", e.Status, e.Body)
}

// Uploader posts trims to one endpoint.
type Uploader struct {
	client   *Client
	endpoint *url.URL
	timeout  time.Duration
}

// NewUploader creates an Uploader for endpoint. A nil client gets the
// defaults of NewClient.
func NewUploader(endpoint string, client *Client) (*Uploader, error) {
	if endpoint == "" {
		return nil, ErrNoEndpoint
	}
	u, err := url.ParseRequestURI(endpoint)
	if err != nil {
		return nil, fmt.Errorf("upload: endpoint %q: %w", endpoint, err)
	}
	if client == nil {
		if client, err = NewClient(); err != nil {
			return nil, err
		}
	}
	return &Uploader{client: client, endpoint: u, timeout: client.timeout}, nil
}

// Endpoint returns the URL trims are posted to.
func (u *Uploader) Endpoint() string {
	return u.endpoint.String()
}

// SetSession attaches the cookies of a Cookie header value, such as
// "session=abc; csrf=xyz", to every upload.
func (u *Uploader) SetSession(header string) error {
	cookies, err := http.ParseCookie(header)
	if err != nil {
		return fmt.Errorf("upload: session cookie: %w", err)
	}
	u.client.SetCookies(u.endpoint, cookies)
	return nil
}

// Values encodes a trim the way the upload form does.
func Values(f trimmer.Fields) url.Values {
	v := url.Values{}
	v.Set(FieldStartTime, strconv.FormatFloat(f.StartTimeSeconds, 'f', -1, 64))
	v.Set(FieldEndTime, strconv.FormatFloat(f.EndTimeSeconds, 'f', -1, 64))
	v.Set(FieldTitle, f.VideoTitle)
	return v
}

// Upload posts one trim.
func (u *Uploader) Upload(ctx context.Context, f trimmer.Fields) error {
	r, err := u.client.postForm(ctx, u.endpoint.String(), Values(f))
	if err != nil {
		return fmt.Errorf("upload: %w", err)
	}
	if !r.ok() {
		body := strings.TrimSpace(string(r.body))
		if len(body) > 200 {
			body = body[:200]
		}
		return &StatusError{Code: r.code, Status: r.status, Body: body}
	}
	return nil
}

// Submit uploads f with the client timeout. Its signature fits the
// OnSubmit hooks of the headless and desktop forms.
func (u *Uploader) Submit(f trimmer.Fields) error {
	ctx, cancel := context.WithTimeout(context.Background(), u.timeout)
	defer cancel()
	return u.Upload(ctx, f)
}
