// internal/model/word.go
package model

// CatalogWord は単語カタログ (words.json) の1エントリを表します
type CatalogWord struct {
	Word  string              `json:"word"`  // 表示する単語
	Hints map[HintType]string `json:"hints"` // ヒント種別 -> メディアURL
}

// Catalog は単語キーから CatalogWord へのマップ (読み取り専用)
type Catalog map[WordKey]CatalogWord

// HintURL は指定されたヒントのURLを返します。無ければ gif にフォールバックします。
func (w CatalogWord) HintURL(h HintType) string {
	if u, ok := w.Hints[h]; ok && u != "" {
		return u
	}
	return w.Hints[HintGIF]
}
