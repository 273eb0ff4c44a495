package dto

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/immich-tools/immich-album-manager/internal/model"
)

// ImmichTime is a custom time type that handles the server's timestamp
// formats. Missing and null values decode to the zero time.
type ImmichTime struct {
	time.Time
}

// UnmarshalJSON parses the server's timestamps, e.g. "2024-06-01T10:30:00.000Z".
func (it *ImmichTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}

	if s == "" {
		it.Time = time.Time{}
		return nil
	}

	// Try multiple formats
	formats := []string{
		time.RFC3339,                // "2024-06-01T10:30:00.000Z"
		"2006-01-02T15:04:05-0700",  // offset without colon
		"2006-01-02",                // date only
	}

	for _, format := range formats {
		if t, err := time.Parse(format, s); err == nil {
			it.Time = t
			return nil
		}
	}

	return fmt.Errorf("unable to parse timestamp: %s", s)
}

// JSONAlbum represents an album object as returned by the server.
type JSONAlbum struct {
	ID          string      `json:"id"`
	AlbumName   string      `json:"albumName"`
	Description string      `json:"description"`
	AssetCount  int         `json:"assetCount"`
	Shared      bool        `json:"shared"`
	CreatedAt   *ImmichTime `json:"createdAt"`
}

// ToAlbum converts JSONAlbum to a model.Album.
func (ja *JSONAlbum) ToAlbum() *model.Album {
	album := &model.Album{
		ID:          ja.ID,
		Name:        ja.AlbumName,
		Description: ja.Description,
		AssetCount:  ja.AssetCount,
		Shared:      ja.Shared,
	}
	if ja.CreatedAt != nil {
		album.CreatedAt = ja.CreatedAt.Time
	}
	return album
}

// CreateAlbumRequest is the body of a create-album call.
type CreateAlbumRequest struct {
	AlbumName   string   `json:"albumName"`
	Description string   `json:"description"`
	AssetIDs    []string `json:"assetIds"`
}

// AddAssetsRequest is the body of an album-membership append call.
type AddAssetsRequest struct {
	IDs []string `json:"ids"`
}
