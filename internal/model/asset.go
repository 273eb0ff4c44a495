package model

// Asset represents a media item tracked by the Immich server.
//
// The ID is an opaque identifier assigned by the server; the tool never
// interprets it beyond equality. The remaining fields are descriptive
// and used only for display.
type Asset struct {
	// ID is the server-assigned asset identifier.
	ID string

	// Path is the server-side original path of the media file.
	Path string

	// FileName is the original file name as imported by the server.
	FileName string

	// Type is the server's media classification, e.g. "IMAGE" or "VIDEO".
	Type string
}

// IDs extracts the identifiers from a list of assets, preserving order.
func IDs(assets []Asset) []string {
	ids := make([]string, 0, len(assets))
	for _, a := range assets {
		ids = append(ids, a.ID)
	}
	return ids
}
