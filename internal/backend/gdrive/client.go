// Package gdrive stores blobs as files in the Google Drive application data
// folder. The Drive file version is the revision.
package gdrive

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	drive "google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"listsync/internal/blobstore"
	"listsync/internal/config"
)

const (
	// APITimeout is the timeout for API calls.
	APITimeout = 5 * time.Second

	// Scope limits the token to the app's hidden folder.
	Scope = drive.DriveAppdataScope

	appDataFolder = "appDataFolder"
	fileFields    = "id, name, version"
)

// Client implements blobstore.Store on the appDataFolder space.
type Client struct {
	svc *drive.Service
}

// New creates a new Drive client.
// Requires oauth_client.json and token.json to exist.
func New(ctx context.Context, cfg *config.Config) (*Client, error) {
	clientJSON, err := os.ReadFile(cfg.OAuthClientPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read oauth_client.json: %w", err)
	}

	oauthConfig, err := google.ConfigFromJSON(clientJSON, Scope)
	if err != nil {
		return nil, fmt.Errorf("invalid oauth_client.json: %w", err)
	}

	tokenData, err := os.ReadFile(cfg.TokenPath())
	if err != nil {
		return nil, fmt.Errorf("failed to read token.json: %w", err)
	}

	var token oauth2.Token
	if err := json.Unmarshal(tokenData, &token); err != nil {
		return nil, fmt.Errorf("invalid token.json: %w", err)
	}

	httpClient := oauth2.NewClient(ctx, oauthConfig.TokenSource(ctx, &token))
	return NewWithHTTPClient(ctx, httpClient)
}

// NewWithHTTPClient creates a client with a custom HTTP client (for testing).
func NewWithHTTPClient(ctx context.Context, httpClient *http.Client, opts ...option.ClientOption) (*Client, error) {
	opts = append([]option.ClientOption{option.WithHTTPClient(httpClient)}, opts...)
	svc, err := drive.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return &Client{svc: svc}, nil
}

// Fetch implements blobstore.Store.
func (c *Client) Fetch(ctx context.Context, path string) (blobstore.Blob, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	f, err := c.find(ctx, path)
	if err != nil {
		return blobstore.Blob{}, err
	}

	resp, err := c.svc.Files.Get(f.Id).Context(ctx).Download()
	if err != nil {
		return blobstore.Blob{}, wrapError(err)
	}
	defer resp.Body.Close()

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return blobstore.Blob{}, wrapError(err)
	}
	return blobstore.Blob{Content: content, Revision: revision(f)}, nil
}

// Put implements blobstore.Store. Drive has no conditional write, so the
// revision is compared just before uploading; a write landing in between
// goes undetected. An empty expectedRevision only creates: if the file
// already exists someone else wrote it first and Put reports a conflict.
func (c *Client) Put(ctx context.Context, path string, content []byte, expectedRevision string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, APITimeout)
	defer cancel()

	f, err := c.find(ctx, path)
	switch {
	case errors.Is(err, blobstore.ErrNotFound):
		f = nil
	case err != nil:
		return "", err
	}

	if f == nil {
		created, err := c.svc.Files.Create(&drive.File{
			Name:    path,
			Parents: []string{appDataFolder},
		}).Media(bytes.NewReader(content)).Fields(fileFields).Context(ctx).Do()
		if err != nil {
			return "", wrapError(err)
		}
		return revision(created), nil
	}

	if revision(f) != expectedRevision {
		return "", blobstore.ErrConflict
	}
	updated, err := c.svc.Files.Update(f.Id, &drive.File{}).
		Media(bytes.NewReader(content)).Fields(fileFields).Context(ctx).Do()
	if err != nil {
		return "", wrapError(err)
	}
	return revision(updated), nil
}

// find returns the newest file named path in the app folder.
func (c *Client) find(ctx context.Context, path string) (*drive.File, error) {
	q := fmt.Sprintf("name = '%s' and trashed = false", escapeQuery(path))
	list, err := c.svc.Files.List().
		Spaces(appDataFolder).
		Q(q).
		OrderBy("modifiedTime desc").
		PageSize(1).
		Fields("files(" + fileFields + ")").
		Context(ctx).
		Do()
	if err != nil {
		return nil, wrapError(err)
	}
	if len(list.Files) == 0 {
		return nil, blobstore.ErrNotFound
	}
	return list.Files[0], nil
}

func revision(f *drive.File) string {
	return strconv.FormatInt(f.Version, 10)
}

func escapeQuery(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `'`, `\'`)
}

// wrapError maps API errors onto the blobstore taxonomy.
func wrapError(err error) error {
	if err == nil {
		return nil
	}

	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		switch {
		case gerr.Code == http.StatusNotFound:
			return blobstore.ErrNotFound
		case gerr.Code == http.StatusUnauthorized:
			return fmt.Errorf("%w (run: listsync login)", blobstore.ErrUnauthorized)
		case gerr.Code == http.StatusConflict || gerr.Code == http.StatusPreconditionFailed:
			return blobstore.ErrConflict
		case gerr.Code == http.StatusTooManyRequests || gerr.Code >= 500:
			return blobstore.Transient(fmt.Errorf("status %d", gerr.Code))
		default:
			return &blobstore.RejectedError{StatusCode: gerr.Code, Message: gerr.Message}
		}
	}

	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return blobstore.Transient(errors.New("request timed out"))
	}

	// Token refresh failures surface as *oauth2.RetrieveError.
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		return fmt.Errorf("%w (run: listsync login)", blobstore.ErrUnauthorized)
	}
	return blobstore.Transient(err)
}
