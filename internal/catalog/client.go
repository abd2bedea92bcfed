// Package catalog retrieves course catalogs and major requirements, either
// from a remote catalog API or from YAML seed files.
package catalog

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Veraticus/semester-planner/internal/common"
	"github.com/Veraticus/semester-planner/internal/model"
	"github.com/Veraticus/semester-planner/internal/service"
	"golang.org/x/sync/errgroup"
)

const maxErrorBody = 512

// Client talks to the catalog API served by `planner serve` (or any
// compatible backend).
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger
	baseURL    string
	retry      service.RetryOptions
}

var _ service.Provider = (*Client)(nil)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithRootCAs trusts pool when verifying an HTTPS catalog server, such as
// one serving a self-signed certificate.
func WithRootCAs(pool *x509.CertPool) Option {
	return func(c *Client) {
		c.httpClient.Transport = &http.Transport{
			Proxy:           http.ProxyFromEnvironment,
			TLSClientConfig: &tls.Config{RootCAs: pool, MinVersion: tls.VersionTLS12},
		}
	}
}

// WithRetry sets the retry policy for every request.
func WithRetry(opts service.RetryOptions) Option {
	return func(c *Client) {
		c.retry = opts
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient creates a client for the API rooted at baseURL, for example
// "http://127.0.0.1:5001/api".
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, fmt.Errorf("%w: api.url", common.ErrMissingConfig)
	}
	if !strings.HasPrefix(baseURL, "http://") && !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("%w: api.url must be an http(s) URL, got %q", common.ErrInvalidConfig, baseURL)
	}

	c := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		logger:     slog.Default(),
		retry: service.RetryOptions{
			MaxAttempts:  3,
			InitialDelay: 250 * time.Millisecond,
			MaxDelay:     5 * time.Second,
			Multiplier:   2.0,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchCourses returns the full catalog ordered by course number.
func (c *Client) FetchCourses(ctx context.Context) ([]model.Course, error) {
	var courses []model.Course
	if err := c.getJSON(ctx, "/courses", &courses); err != nil {
		return nil, fmt.Errorf("failed to fetch courses: %w", err)
	}
	return normalizeCourses(courses), nil
}

// FetchCourse returns one course by code.
func (c *Client) FetchCourse(ctx context.Context, code string) (*model.Course, error) {
	var course model.Course
	path := "/courses/" + strings.ReplaceAll(strings.ToUpper(strings.TrimSpace(code)), " ", "%20")
	if err := c.getJSON(ctx, path, &course); err != nil {
		return nil, fmt.Errorf("failed to fetch course %s: %w", code, err)
	}
	course = normalizeCourses([]model.Course{course})[0]
	return &course, nil
}

// FetchMajors returns the selectable majors.
func (c *Client) FetchMajors(ctx context.Context) ([]model.Major, error) {
	var majors []model.Major
	if err := c.getJSON(ctx, "/majors", &majors); err != nil {
		return nil, fmt.Errorf("failed to fetch majors: %w", err)
	}
	return majors, nil
}

type requirementsResponse struct {
	RequiredCourses []model.RequiredCourse `json:"requiredCourses"`
	Major           model.Major            `json:"major"`
}

// FetchRequirements returns the courses required by a major.
func (c *Client) FetchRequirements(ctx context.Context, majorID int) ([]model.RequiredCourse, error) {
	var resp requirementsResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/majors/%d/requirements", majorID), &resp); err != nil {
		return nil, fmt.Errorf("failed to fetch requirements for major %d: %w", majorID, err)
	}
	for i := range resp.RequiredCourses {
		resp.RequiredCourses[i].Course = normalizeCourses([]model.Course{resp.RequiredCourses[i].Course})[0]
	}
	return resp.RequiredCourses, nil
}

// Snapshot is everything a planning session needs for one major.
type Snapshot struct {
	Courses      []model.Course
	Requirements []model.RequiredCourse
	// RequirementsErr is set when the requirements could not be loaded.
	// The catalog is still usable without them.
	RequirementsErr error
}

// Load fetches the catalog and the requirements for majorID concurrently
// from any provider. A catalog failure fails the whole load; a
// requirements failure is reported in the snapshot.
func Load(ctx context.Context, p service.Provider, majorID int) (*Snapshot, error) {
	snap := &Snapshot{}
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		courses, err := p.FetchCourses(gctx)
		if err != nil {
			return fmt.Errorf("%w: %w", common.ErrCatalogUnavailable, err)
		}
		snap.Courses = courses
		return nil
	})
	g.Go(func() error {
		reqs, err := p.FetchRequirements(gctx, majorID)
		if err != nil {
			snap.RequirementsErr = err
			return nil
		}
		snap.Requirements = reqs
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return snap, nil
}

// Load fetches the catalog and requirements for majorID concurrently.
func (c *Client) Load(ctx context.Context, majorID int) (*Snapshot, error) {
	return Load(ctx, c, majorID)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	url := c.baseURL + path
	var body []byte

	err := common.WithRetry(ctx, func() error {
		var err error
		body, err = c.get(ctx, url)
		return err
	}, c.retry)
	if err != nil {
		var httpErr *common.HTTPError
		if errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%w: %w", common.ErrNotFound, err)
		}
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", url, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &common.RetryableError{Err: err, Retryable: false}
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &common.RetryableError{Err: ctx.Err(), Retryable: false}
		}
		return nil, &common.RetryableError{Err: err, Retryable: true}
	}
	defer func() { _ = resp.Body.Close() }()

	// Read the full body so the connection can be reused.
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &common.RetryableError{Err: err, Retryable: true}
	}

	c.logger.Debug("catalog request",
		"url", url,
		"status", resp.StatusCode,
		"duration", time.Since(start))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &common.HTTPError{
			Method:     req.Method,
			URL:        url,
			StatusCode: resp.StatusCode,
			Body:       snippet(body),
		}
	}
	return body, nil
}

func snippet(b []byte) string {
	s := strings.TrimSpace(string(b))
	if len(s) > maxErrorBody {
		return s[:maxErrorBody] + "..."
	}
	return s
}

// normalizeCourses fills the fields older backends leave out.
func normalizeCourses(courses []model.Course) []model.Course {
	for i := range courses {
		c := &courses[i]
		if c.ID == "" {
			c.ID = model.CourseID(c.Code)
		}
		if c.Difficulty == "" {
			c.Difficulty = model.EstimateDifficulty(c.Level)
		}
		if c.Credits <= 0 {
			c.Credits = model.DefaultCredits
		}
		if c.Prerequisites == nil {
			c.Prerequisites = []string{}
		}
	}
	return courses
}
