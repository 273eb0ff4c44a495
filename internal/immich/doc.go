// Package immich provides a client for the Immich server's REST API,
// covering the handful of endpoints this tool needs.
//
// The Client in this package handles:
//   - API key authentication (x-api-key header on every request)
//   - Server address normalisation
//   - JSON request/response handling with typed errors
//   - Timeout handling
//
// # Basic Usage
//
//	client := immich.NewClient("127.0.0.1:2283", apiKey)
//
//	// Which assets does the server know for this library folder?
//	assets, err := client.FolderAssets(ctx, "2024/summer")
//
//	// Album operations
//	albums, err := client.ListAlbums(ctx)
//	album, err := client.CreateAlbum(ctx, "Summer 2024", "", assetIDs)
//	outcomes, err := client.AddAssets(ctx, album.ID, moreIDs)
//
// # Errors
//
// Non-2xx responses are returned as *APIError carrying the status code
// and the server's message:
//
//	var apiErr *immich.APIError
//	if errors.As(err, &apiErr) && apiErr.StatusCode == 401 {
//	    // bad or missing API key
//	}
//
// Wire-level JSON shapes live in the dto subpackage and are converted
// to internal/model types at the client boundary.
package immich
