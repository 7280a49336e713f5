// Package github stores blobs as files in a GitHub repository through the
// contents API. The file's blob SHA is the revision.
package github

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/oauth2"

	"listsync/internal/blobstore"
	"listsync/internal/config"
)

const (
	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	// DefaultAPIURL is the public GitHub API.
	DefaultAPIURL = "https://api.github.com"

	// maxErrorBody bounds how much of an error response is kept.
	maxErrorBody = 4 << 10
)

// Client implements blobstore.Store on one repository and branch.
type Client struct {
	http     *http.Client
	apiURL   string
	repo     string
	branch   string
	messages map[string]string
}

// New creates a client authenticated with the configured token.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	if cfg.GitHub.Repo == "" || cfg.GitHub.Token == "" {
		return nil, blobstore.ErrUnauthorized
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.GitHub.Token})
	c, err := NewWithHTTPClient(oauth2.NewClient(ctx, ts), cfg.GitHub.APIURL, cfg.GitHub.Repo, cfg.GitHub.Branch)
	if err != nil {
		return nil, err
	}
	c.messages = map[string]string{
		cfg.Paths.Tasks: "Update task lists",
		cfg.Paths.Names: "Update list names",
	}
	return c, nil
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
// repo is "owner/name"; an empty branch means the repository default.
func NewWithHTTPClient(httpClient *http.Client, apiURL, repo, branch string) (*Client, error) {
	if apiURL == "" {
		apiURL = DefaultAPIURL
	}
	owner, name, ok := strings.Cut(repo, "/")
	if !ok || owner == "" || name == "" || strings.Contains(name, "/") {
		return nil, fmt.Errorf("invalid repository %q (want owner/name)", repo)
	}
	return &Client{
		http:     httpClient,
		apiURL:   strings.TrimRight(apiURL, "/"),
		repo:     owner + "/" + name,
		branch:   branch,
		messages: map[string]string{},
	}, nil
}

type contentResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
	SHA      string `json:"sha"`
}

type putRequest struct {
	Message string `json:"message"`
	Content string `json:"content"`
	SHA     string `json:"sha,omitempty"`
	Branch  string `json:"branch,omitempty"`
}

type putResponse struct {
	Content struct {
		SHA string `json:"sha"`
	} `json:"content"`
}

type errorResponse struct {
	Message string `json:"message"`
}

// Fetch implements blobstore.Store.
func (c *Client) Fetch(ctx context.Context, path string) (blobstore.Blob, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	u := c.contentsURL(path)
	if c.branch != "" {
		u += "?ref=" + url.QueryEscape(c.branch)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return blobstore.Blob{}, err
	}

	var body contentResponse
	if err := c.do(req, &body); err != nil {
		return blobstore.Blob{}, err
	}
	if body.Encoding != "" && body.Encoding != "base64" {
		return blobstore.Blob{}, fmt.Errorf("unsupported content encoding %q for %s", body.Encoding, path)
	}

	// The API wraps base64 at 60 columns.
	content, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(body.Content, "\n", ""))
	if err != nil {
		return blobstore.Blob{}, fmt.Errorf("invalid content for %s: %w", path, err)
	}
	return blobstore.Blob{Content: content, Revision: body.SHA}, nil
}

// Put implements blobstore.Store. An empty expectedRevision creates the file;
// GitHub refuses that when the file already exists.
func (c *Client) Put(ctx context.Context, path string, content []byte, expectedRevision string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	msg, ok := c.messages[path]
	if !ok {
		msg = "Update " + path
	}
	payload, err := json.Marshal(putRequest{
		Message: msg,
		Content: base64.StdEncoding.EncodeToString(content),
		SHA:     expectedRevision,
		Branch:  c.branch,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, c.contentsURL(path), bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	var body putResponse
	if err := c.do(req, &body); err != nil {
		return "", err
	}
	return body.Content.SHA, nil
}

func (c *Client) contentsURL(path string) string {
	segs := strings.Split(strings.Trim(path, "/"), "/")
	for i, s := range segs {
		segs[i] = url.PathEscape(s)
	}
	return c.apiURL + "/repos/" + c.repo + "/contents/" + strings.Join(segs, "/")
}

func (c *Client) do(req *http.Request, into any) error {
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("X-GitHub-Api-Version", "2022-11-28")

	resp, err := c.http.Do(req)
	if err != nil {
		return wrapError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode/100 != 2 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		var e errorResponse
		_ = json.Unmarshal(data, &e)
		return statusError(resp.StatusCode, e.Message)
	}
	if err := json.NewDecoder(resp.Body).Decode(into); err != nil {
		return blobstore.Transient(fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

// statusError maps a non-2xx response onto the blobstore taxonomy.
func statusError(code int, msg string) error {
	switch {
	case code == http.StatusNotFound:
		return blobstore.ErrNotFound
	case code == http.StatusUnauthorized:
		return blobstore.ErrUnauthorized
	case code == http.StatusConflict:
		return blobstore.ErrConflict
	case code == http.StatusTooManyRequests || code >= 500:
		return blobstore.Transient(fmt.Errorf("status %d", code))
	default:
		return &blobstore.RejectedError{StatusCode: code, Message: msg}
	}
}

// wrapError classifies transport failures. Everything that never produced a
// response is transient, except a cancelled context.
func wrapError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return blobstore.Transient(errors.New("request timed out"))
	}
	return blobstore.Transient(err)
}
