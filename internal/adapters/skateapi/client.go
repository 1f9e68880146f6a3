// internal/adapters/skateapi/client.go
package skateapi

import (
	"bytes"
	"context"
	crand "crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"skate_admin/internal/adapters/observability"
	"skate_admin/internal/domain"
)

const (
	service      = "skate_api"
	userAgent    = "skate-admin/1.0"
	maxErrorBody = 64 << 10
)

type Client struct {
	base    string
	hc      *http.Client
	rl      *rate.Limiter
	retries int
}

type Option func(*Client)

// WithTimeout bounds every request. Zero keeps requests open until the
// context ends.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.hc.Timeout = d }
}

// WithGetRetries retries collection reads on 429 and transient 5xx.
// Mutations are never retried.
func WithGetRetries(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.retries = n
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.hc = hc }
}

func New(base string, rps int, opts ...Option) (*Client, error) {
	base = strings.TrimRight(strings.TrimSpace(base), "/")
	if base == "" {
		return nil, fmt.Errorf("API base URL is required")
	}
	u, err := url.Parse(base)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid API base URL %q", base)
	}
	if rps <= 0 {
		rps = 10
	}
	c := &Client{
		base: base,
		hc:   &http.Client{},
		rl:   rate.NewLimiter(rate.Limit(rps), rps),
	}
	for _, o := range opts {
		o(c)
	}
	return c, nil
}

// ---- Spots ----

func (c *Client) ListSpots(ctx context.Context) ([]domain.Spot, error) {
	var out []domain.Spot
	return out, c.get(ctx, "spots.list", c.base+"/spots", &out)
}

func (c *Client) CreateSpot(ctx context.Context, req domain.SpotRequest) (domain.Spot, error) {
	var out domain.Spot
	return out, c.sendJSON(ctx, http.MethodPost, "spots.create", c.base+"/spots", req, &out)
}

func (c *Client) UpdateSpot(ctx context.Context, id int64, req domain.SpotRequest) (domain.Spot, error) {
	var out domain.Spot
	return out, c.sendJSON(ctx, http.MethodPut, "spots.update", fmt.Sprintf("%s/spots/%d", c.base, id), req, &out)
}

func (c *Client) DeleteSpot(ctx context.Context, id int64) error {
	return c.sendJSON(ctx, http.MethodDelete, "spots.delete", fmt.Sprintf("%s/spots/%d", c.base, id), nil, nil)
}

// ---- Services (prestations) ----

func (c *Client) ListServices(ctx context.Context) ([]domain.Service, error) {
	var out []domain.Service
	return out, c.get(ctx, "services.list", c.base+"/services", &out)
}

func (c *Client) CreateService(ctx context.Context, req domain.ServiceRequest) (domain.Service, error) {
	var out domain.Service
	return out, c.sendJSON(ctx, http.MethodPost, "services.create", c.base+"/services", req, &out)
}

func (c *Client) UpdateService(ctx context.Context, id int64, req domain.ServiceRequest) (domain.Service, error) {
	var out domain.Service
	return out, c.sendJSON(ctx, http.MethodPut, "services.update", fmt.Sprintf("%s/services/%d", c.base, id), req, &out)
}

func (c *Client) DeleteService(ctx context.Context, id int64) error {
	return c.sendJSON(ctx, http.MethodDelete, "services.delete", fmt.Sprintf("%s/services/%d", c.base, id), nil, nil)
}

// ---- Instructors ----

func (c *Client) ListInstructors(ctx context.Context) ([]domain.Instructor, error) {
	var out []domain.Instructor
	return out, c.get(ctx, "instructors.list", c.base+"/admin/instructors", &out)
}

func (c *Client) CreateInstructor(ctx context.Context, req domain.InstructorCreateRequest) (domain.Instructor, error) {
	var out domain.Instructor
	return out, c.sendJSON(ctx, http.MethodPost, "instructors.create", c.base+"/admin/instructors", req, &out)
}

func (c *Client) InstructorAction(ctx context.Context, id int64, action domain.InstructorAction) error {
	switch action {
	case domain.ActionResendInvitation, domain.ActionSuspend, domain.ActionReactivate:
	default:
		return fmt.Errorf("unknown instructor action %q", action)
	}
	u := fmt.Sprintf("%s/admin/instructors/%d/%s", c.base, id, action)
	return c.sendJSON(ctx, http.MethodPost, "instructors."+string(action), u, nil, nil)
}

// ---- Photos ----

func (c *Client) UploadPhoto(ctx context.Context, up domain.PhotoUpload) (domain.Photo, error) {
	body, contentType, err := encodeUpload(up)
	if err != nil {
		return domain.Photo{}, err
	}
	var out domain.Photo
	_, err = c.do(ctx, http.MethodPost, "photos.upload", c.base+"/photos", body, contentType, &out)
	return out, err
}

func (c *Client) ListSpotPhotos(ctx context.Context, spotID int64) ([]domain.Photo, error) {
	var out []domain.Photo
	return out, c.get(ctx, "photos.spot", fmt.Sprintf("%s/photos/spots/%d", c.base, spotID), &out)
}

func (c *Client) DeletePhoto(ctx context.Context, photoID, deletedBy int64) error {
	u := fmt.Sprintf("%s/photos/%d", c.base, photoID)
	if deletedBy > 0 {
		u += "?" + url.Values{"deletedBy": {strconv.FormatInt(deletedBy, 10)}}.Encode()
	}
	_, err := c.do(ctx, http.MethodDelete, "photos.delete", u, nil, "", nil)
	return err
}

// ---- Internals ----

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func encodeUpload(up domain.PhotoUpload) (*bytes.Buffer, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	ct := up.File.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(up.File.Name)))
	h.Set("Content-Type", ct)
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := part.Write(up.File.Data); err != nil {
		return nil, "", err
	}

	fields := [][2]string{
		{"entityType", string(up.EntityType)},
		{"entityId", strconv.FormatInt(up.EntityID, 10)},
		{"photoType", string(up.PhotoType)},
		{"displayOrder", strconv.Itoa(up.DisplayOrder)},
		{"uploadedBy", strconv.FormatInt(up.UploadedBy, 10)},
	}
	for _, f := range fields {
		if err := mw.WriteField(f[0], f[1]); err != nil {
			return nil, "", err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, "", err
	}
	return &buf, mw.FormDataContentType(), nil
}

// sendJSON performs a single mutating request. No retry: a failed write is
// surfaced as is and the caller decides.
func (c *Client) sendJSON(ctx context.Context, method, endpoint, u string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s: %w", endpoint, err)
		}
		body = bytes.NewReader(b)
		contentType = "application/json"
	}
	_, err := c.do(ctx, method, endpoint, u, body, contentType, out)
	return err
}

// get performs a GET and decodes into out. With retries configured it retries
// on 429 and transient 5xx, honoring Retry-After when provided.
func (c *Client) get(ctx context.Context, endpoint, u string, out any) error {
	var lastErr error
	for i := 0; i <= c.retries; i++ {
		wait, err := c.do(ctx, http.MethodGet, endpoint, u, nil, "", out)
		if err == nil {
			return nil
		}
		lastErr = err
		if i == c.retries || !retryable(err) {
			break
		}
		if wait == 0 {
			wait = backoff(i)
		}
		if !sleepCtx(ctx, wait) {
			return ctx.Err()
		}
	}
	return lastErr
}

func (c *Client) do(ctx context.Context, method, endpoint, u string, body io.Reader, contentType string, out any) (time.Duration, error) {
	// client-side rate limiting
	if err := c.rl.Wait(ctx); err != nil {
		return 0, err
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.hc.Do(req)
	if err != nil {
		observability.ObserveExternal(service, endpoint, 0, time.Since(start))
		if ctx.Err() != nil {
			return 0, ctx.Err()
		}
		return 0, &netError{err: err}
	}
	defer resp.Body.Close()
	observability.ObserveExternal(service, endpoint, resp.StatusCode, time.Since(start))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		if out == nil || resp.StatusCode == http.StatusNoContent {
			_, _ = io.Copy(io.Discard, resp.Body)
			return 0, nil
		}
		b, err := io.ReadAll(resp.Body)
		if err != nil {
			return 0, err
		}
		if len(bytes.TrimSpace(b)) == 0 {
			return 0, nil // success, empty body
		}
		if err := json.Unmarshal(b, out); err != nil {
			return 0, fmt.Errorf("decode %s: %w", endpoint, err)
		}
		return 0, nil
	}

	// read a bounded error body for the caller
	b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return retryAfter(resp), newAPIError(method, req.URL.Path, resp.StatusCode, b)
}

type netError struct{ err error }

func (e *netError) Error() string { return e.err.Error() }
func (e *netError) Unwrap() error { return e.err }

func retryable(err error) bool {
	var ne *netError
	if errors.As(err, &ne) {
		return true
	}
	var ae *domain.APIError
	if errors.As(err, &ae) {
		switch ae.Status {
		case http.StatusTooManyRequests, http.StatusInternalServerError,
			http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			return true
		}
	}
	return false
}

// sleepCtx waits for d or returns early if ctx is done.
func sleepCtx(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return true
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

// retryAfter parses Retry-After header (seconds or HTTP-date). Returns 0 if absent/invalid.
func retryAfter(resp *http.Response) time.Duration {
	h := resp.Header.Get("Retry-After")
	if h == "" {
		return 0
	}
	// seconds form
	if secs, err := strconv.Atoi(strings.TrimSpace(h)); err == nil && secs >= 0 {
		return time.Duration(secs) * time.Second
	}
	// HTTP-date form
	if t, err := http.ParseTime(h); err == nil {
		if d := time.Until(t); d > 0 {
			return d
		}
	}
	return 0
}

// backoff returns an exponential backoff delay (200ms, 400ms, 800ms...) with
// up to +50% jitter.
func backoff(i int) time.Duration {
	base := time.Duration(1<<i) * 200 * time.Millisecond
	var b [1]byte
	if _, err := crand.Read(b[:]); err != nil {
		return base
	}
	f := float64(b[0]) / 255.0
	j := time.Duration(0.5 * f * float64(base))
	return base + j
}
