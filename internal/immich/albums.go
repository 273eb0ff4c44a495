package immich

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/immich-tools/immich-album-manager/internal/immich/dto"
	"github.com/immich-tools/immich-album-manager/internal/model"
)

// ListAlbums returns all albums visible to the API key's user.
func (c *Client) ListAlbums(ctx context.Context) ([]*model.Album, error) {
	var items []dto.JSONAlbum
	if err := c.do(ctx, http.MethodGet, "/albums", nil, &items); err != nil {
		return nil, fmt.Errorf("list albums: %w", err)
	}

	albums := make([]*model.Album, 0, len(items))
	for i := range items {
		albums = append(albums, items[i].ToAlbum())
	}
	return albums, nil
}

// CreateAlbum creates a new album containing the given assets and
// returns the album as the server recorded it.
//
// The server does not enforce name uniqueness; callers that want
// skip-if-exists semantics must check first (see albumsync.Manager).
func (c *Client) CreateAlbum(ctx context.Context, name, description string, assetIDs []string) (*model.Album, error) {
	body := dto.CreateAlbumRequest{
		AlbumName:   name,
		Description: description,
		AssetIDs:    assetIDs,
	}

	var created dto.JSONAlbum
	if err := c.do(ctx, http.MethodPost, "/albums", body, &created); err != nil {
		return nil, fmt.Errorf("create album %q: %w", name, err)
	}
	return created.ToAlbum(), nil
}

// AddAssets appends assets to an existing album.
//
// The server answers with one outcome per asset; assets already in the
// album are reported as duplicates, not errors.
func (c *Client) AddAssets(ctx context.Context, albumID string, assetIDs []string) ([]model.AddOutcome, error) {
	body := dto.AddAssetsRequest{IDs: assetIDs}

	var results []dto.JSONBulkResult
	path := "/albums/" + url.PathEscape(albumID) + "/assets"
	if err := c.do(ctx, http.MethodPut, path, body, &results); err != nil {
		return nil, fmt.Errorf("add assets to album %s: %w", albumID, err)
	}

	outcomes := make([]model.AddOutcome, 0, len(results))
	for i := range results {
		outcomes = append(outcomes, results[i].ToOutcome())
	}
	return outcomes, nil
}
