//go:generate mockery --name CatalogRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"go_5_vocab_hint/internal/model"
)

// CatalogRepository は単語カタログ (単語IDごとの表示テキストとヒントメディア) を参照します
type CatalogRepository interface {
	FindByID(ctx context.Context, wordKey model.WordKey) (*model.CatalogWord, error)
}

type jsonCatalogRepository struct {
	words model.Catalog
}

// NewCatalogRepository は読み込み済みのカタログをラップします
func NewCatalogRepository(words model.Catalog) CatalogRepository {
	if words == nil {
		words = model.Catalog{}
	}
	return &jsonCatalogRepository{words: words}
}

// LoadCatalog は words.json を読み込みます。キーは正規化した単語IDに揃えます。
func LoadCatalog(path string) (model.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("LoadCatalog: %w", err)
	}
	var raw map[string]model.CatalogWord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("LoadCatalog: decode %s: %w", path, err)
	}

	catalog := make(model.Catalog, len(raw))
	for id, w := range raw {
		key, err := model.NormalizeWordID(id)
		if err != nil {
			return nil, fmt.Errorf("LoadCatalog: word id %q: %w", id, err)
		}
		catalog[key] = w
	}
	return catalog, nil
}

func (r *jsonCatalogRepository) FindByID(ctx context.Context, wordKey model.WordKey) (*model.CatalogWord, error) {
	w, ok := r.words[wordKey]
	if !ok {
		return nil, model.ErrNotFound
	}
	return &w, nil
}
