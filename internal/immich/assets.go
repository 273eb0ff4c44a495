package immich

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/immich-tools/immich-album-manager/internal/immich/dto"
	"github.com/immich-tools/immich-album-manager/internal/model"
)

// FolderAssets returns the assets the server reports for a single
// folder, addressed by its library-relative path.
//
// The path is the kind produced by model.Library.RelativePath; the
// server matches it against the folder layout of its external
// libraries. A folder the server does not know yields an empty list.
func (c *Client) FolderAssets(ctx context.Context, relPath string) ([]model.Asset, error) {
	endpoint := "/view/folder?path=" + url.QueryEscape(relPath)

	var items []dto.JSONAsset
	if err := c.do(ctx, http.MethodGet, endpoint, nil, &items); err != nil {
		return nil, fmt.Errorf("folder assets for %q: %w", relPath, err)
	}

	assets := make([]model.Asset, 0, len(items))
	for i := range items {
		assets = append(assets, items[i].ToAsset())
	}
	return assets, nil
}
