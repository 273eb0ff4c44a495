// Package model defines the core data structures used throughout
// the immich-album-manager application.
//
// # Library
//
// Library holds the local root directory whose layout mirrors an
// external library on the server, and carries the path translation
// between the two worlds:
//
//	lib := model.NewLibrary("/mnt/photos")
//	rel := lib.RelativePath("/mnt/photos/2024/summer") // "2024/summer"
//
// Paths outside the root pass through unchanged; deciding what they
// mean is the server's business.
//
// # Asset
//
// Asset is a media item known to the server. Its ID is opaque: the tool
// compares IDs for equality and otherwise never looks inside them.
//
// # Album
//
// Album mirrors the server-side album entity. The tool creates albums
// and appends assets to them; it never edits existing membership.
package model
