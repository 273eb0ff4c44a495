package dto

import (
	"github.com/immich-tools/immich-album-manager/internal/model"
)

// JSONAsset represents an asset object as returned by the server's
// folder view endpoint.
type JSONAsset struct {
	ID               string `json:"id"`
	OriginalPath     string `json:"originalPath"`
	OriginalFileName string `json:"originalFileName"`
	Type             string `json:"type"`
}

// ToAsset converts JSONAsset to a model.Asset.
func (ja *JSONAsset) ToAsset() model.Asset {
	return model.Asset{
		ID:       ja.ID,
		Path:     ja.OriginalPath,
		FileName: ja.OriginalFileName,
		Type:     ja.Type,
	}
}

// JSONBulkResult represents one element of the server's response to a
// bulk membership mutation.
type JSONBulkResult struct {
	ID      string `json:"id"`
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// ToOutcome converts JSONBulkResult to a model.AddOutcome.
func (jr *JSONBulkResult) ToOutcome() model.AddOutcome {
	return model.AddOutcome{
		AssetID: jr.ID,
		Added:   jr.Success,
		Reason:  jr.Error,
	}
}
