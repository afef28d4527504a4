// Package github mirrors the transaction document into a private GitHub
// gist, one JSON file per gist.
package github

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	gh "github.com/google/go-github/v39/github"
	"golang.org/x/oauth2"

	"fintrack/internal/remote"
)

const (
	dataFileName    = "finance-tracker-data.json"
	gistDescription = "Finance Tracker Data - Auto-synced"
)

type GistStore struct {
	client *gh.Client
}

// NewGistStore builds a gist-backed remote store authenticated with a
// personal access token. baseURL overrides the API endpoint for tests;
// empty means api.github.com.
func NewGistStore(ctx context.Context, token, baseURL string) (*GistStore, error) {
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	httpClient := oauth2.NewClient(ctx, ts)

	if baseURL != "" {
		client, err := gh.NewEnterpriseClient(baseURL, baseURL, httpClient)
		if err != nil {
			return nil, fmt.Errorf("create github client: %w", err)
		}
		return &GistStore{client: client}, nil
	}
	return &GistStore{client: gh.NewClient(httpClient)}, nil
}

func (s *GistStore) Create(ctx context.Context, doc remote.Document) (string, error) {
	gist, err := buildGist(doc)
	if err != nil {
		return "", err
	}

	created, _, err := s.client.Gists.Create(ctx, gist)
	if err != nil {
		return "", fmt.Errorf("create gist: %w", err)
	}
	return created.GetID(), nil
}

func (s *GistStore) Update(ctx context.Context, id string, doc remote.Document) error {
	gist, err := buildGist(doc)
	if err != nil {
		return err
	}

	if _, _, err := s.client.Gists.Edit(ctx, id, gist); err != nil {
		if isNotFound(err) {
			return remote.ErrNotFound
		}
		return fmt.Errorf("update gist %s: %w", id, err)
	}
	return nil
}

func (s *GistStore) Fetch(ctx context.Context, id string) (remote.Document, error) {
	gist, _, err := s.client.Gists.Get(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return remote.Document{}, remote.ErrNotFound
		}
		return remote.Document{}, fmt.Errorf("fetch gist %s: %w", id, err)
	}

	file, ok := gist.Files[gh.GistFilename(dataFileName)]
	if !ok {
		return remote.Document{}, fmt.Errorf("gist %s: %w", id, remote.ErrNotFound)
	}

	var doc remote.Document
	if err := json.Unmarshal([]byte(file.GetContent()), &doc); err != nil {
		return remote.Document{}, fmt.Errorf("decode gist %s: %w", id, err)
	}
	return doc, nil
}

func buildGist(doc remote.Document) (*gh.Gist, error) {
	content, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}

	return &gh.Gist{
		Description: gh.String(gistDescription),
		Public:      gh.Bool(false),
		Files: map[gh.GistFilename]gh.GistFile{
			gh.GistFilename(dataFileName): {Content: gh.String(string(content))},
		},
	}, nil
}

func isNotFound(err error) bool {
	var ghErr *gh.ErrorResponse
	if errors.As(err, &ghErr) {
		return ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
	}
	return false
}
