package model

import (
	"fmt"
	"time"
)

// Album represents an album on the Immich server.
//
// Albums are server-side entities; this tool only ever creates them or
// appends assets to them. Existing membership is never edited or removed.
//
// Album names are not unique on the server. For the purposes of this
// tool an exact name match counts as "already exists", and creation is
// skipped rather than duplicated.
type Album struct {
	// ID is the server-assigned album identifier.
	ID string

	// Name is the album display name.
	Name string

	// Description is the optional album description.
	Description string

	// AssetCount is the number of assets the server reports for this album.
	AssetCount int

	// Shared reports whether the album is shared with other users.
	Shared bool

	// CreatedAt is when the album was created on the server.
	CreatedAt time.Time
}

// Label returns a short human-readable description of the album,
// suitable for selection menus.
//
// Example:
//
//	album := &model.Album{Name: "Summer 2024", AssetCount: 42}
//	album.Label() // "Summer 2024 (42 assets)"
func (a *Album) Label() string {
	return fmt.Sprintf("%s (%d assets)", a.Name, a.AssetCount)
}

// AddOutcome reports the result of adding a single asset to an album.
//
// The server answers membership mutations per asset: an asset already
// in the album is reported as a duplicate rather than an error.
type AddOutcome struct {
	// AssetID is the asset this outcome refers to.
	AssetID string

	// Added is true when the server accepted the asset into the album.
	Added bool

	// Reason explains why the asset was not added (for example
	// "duplicate"). Empty when Added is true.
	Reason string
}
