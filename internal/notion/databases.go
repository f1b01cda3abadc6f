// Momentmillionär - Event Discovery Backend
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/momentmillionaer

package notion

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/tomtom215/momentmillionaer/internal/logging"
)

// ResolveDatabaseID returns the configured database id, or discovers the
// database by its configured name below the configured page.
func (c *Client) ResolveDatabaseID(ctx context.Context) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	if c.databaseID != "" {
		return c.databaseID, nil
	}
	return c.FindDatabase(ctx, c.databaseName)
}

// FindDatabase returns the id of the first child database of the configured
// page whose title contains name (case-insensitive). When the page has no
// matching child the search endpoint is consulted.
func (c *Client) FindDatabase(ctx context.Context, name string) (string, error) {
	if !c.Configured() {
		return "", ErrNotConfigured
	}
	needle := strings.ToLower(strings.TrimSpace(name))

	if c.pageID != "" {
		id, err := c.findChildDatabase(ctx, needle)
		if err != nil {
			return "", err
		}
		if id != "" {
			return id, nil
		}
	}

	id, err := c.searchDatabase(ctx, name, needle)
	if err != nil {
		return "", err
	}
	if id == "" {
		return "", fmt.Errorf("%w: %q", ErrDatabaseNotFound, name)
	}
	return id, nil
}

func (c *Client) findChildDatabase(ctx context.Context, needle string) (string, error) {
	cursor := ""
	for {
		path := fmt.Sprintf("/v1/blocks/%s/children?page_size=%d", c.pageID, pageSize)
		if cursor != "" {
			path += "&start_cursor=" + url.QueryEscape(cursor)
		}
		var resp listResponse[Block]
		if err := c.doRequest(ctx, "list_children", http.MethodGet, path, nil, &resp); err != nil {
			return "", fmt.Errorf("failed to list page children: %w", err)
		}
		for _, block := range resp.Results {
			if block.Type != "child_database" || block.ChildDatabase == nil {
				continue
			}
			if strings.Contains(strings.ToLower(block.ChildDatabase.Title), needle) {
				logging.Ctx(ctx).Debug().Str("database_id", block.ID).Str("title", block.ChildDatabase.Title).Msg("Found events database")
				return block.ID, nil
			}
		}
		if !resp.HasMore || resp.NextCursor == nil || *resp.NextCursor == "" {
			return "", nil
		}
		cursor = *resp.NextCursor
	}
}

func (c *Client) searchDatabase(ctx context.Context, query, needle string) (string, error) {
	req := searchRequest{
		Query:    query,
		Filter:   searchFilter{Property: "object", Value: "database"},
		PageSize: pageSize,
	}
	for {
		var resp listResponse[Database]
		if err := c.doRequest(ctx, "search", http.MethodPost, "/v1/search", req, &resp); err != nil {
			return "", fmt.Errorf("failed to search databases: %w", err)
		}
		for i := range resp.Results {
			if strings.Contains(strings.ToLower(resp.Results[i].PlainTitle()), needle) {
				return resp.Results[i].ID, nil
			}
		}
		if !resp.HasMore || resp.NextCursor == nil || *resp.NextCursor == "" {
			return "", nil
		}
		req.StartCursor = *resp.NextCursor
	}
}

// QueryDatabase returns every page of the database, following next_cursor.
// Any failing page fails the whole call; partial results are never returned.
func (c *Client) QueryDatabase(ctx context.Context, databaseID string) ([]Page, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	path := "/v1/databases/" + url.PathEscape(databaseID) + "/query"
	req := queryRequest{PageSize: pageSize}

	var pages []Page
	for {
		var resp listResponse[Page]
		if err := c.doRequest(ctx, "query_database", http.MethodPost, path, req, &resp); err != nil {
			return nil, c.databaseError("failed to query database", databaseID, err)
		}
		for i := range resp.Results {
			if !resp.Results[i].Archived {
				pages = append(pages, resp.Results[i])
			}
		}
		if !resp.HasMore || resp.NextCursor == nil || *resp.NextCursor == "" {
			break
		}
		req.StartCursor = *resp.NextCursor
	}
	if pages == nil {
		pages = []Page{}
	}
	return pages, nil
}

// RetrieveDatabase returns the database object including its schema.
func (c *Client) RetrieveDatabase(ctx context.Context, databaseID string) (*Database, error) {
	if !c.Configured() {
		return nil, ErrNotConfigured
	}
	var db Database
	if err := c.doRequest(ctx, "retrieve_database", http.MethodGet, "/v1/databases/"+url.PathEscape(databaseID), nil, &db); err != nil {
		return nil, c.databaseError("failed to retrieve database", databaseID, err)
	}
	return &db, nil
}

// databaseError wraps err. A 404 for the configured database id also wraps
// ErrDatabaseNotFound, since no discovery will find a different one.
func (c *Client) databaseError(msg, databaseID string, err error) error {
	var apiErr *APIError
	if c.databaseID != "" && databaseID == c.databaseID &&
		errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
		return fmt.Errorf("%s: %w: %w", msg, ErrDatabaseNotFound, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
