package snapshot

import (
	"encoding/hex"
	"encoding/json"
	"fmt"

	"golang.org/x/crypto/sha3"

	"github.com/nao1215/wikilens/internal/model"
)

// Fingerprint returns a SHA3-256 digest of the snapshot content.
// Export timestamps are left out so that re-exporting an unchanged site
// yields the same fingerprint.
func Fingerprint(s model.Snapshot) (string, error) {
	content := struct {
		Pages      []model.Page           `json:"pages,omitempty"`
		Navigation []model.NavigationTree `json:"navigation,omitempty"`
		Config     json.RawMessage        `json:"config,omitempty"`
	}{}
	if s.Pages != nil {
		content.Pages = s.Pages.Pages
	}
	if s.Navigation != nil {
		content.Navigation = s.Navigation.Tree
		content.Config = s.Navigation.Config
	}

	data, err := json.Marshal(content)
	if err != nil {
		return "", fmt.Errorf("failed to encode snapshot: %w", err)
	}
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
