// internal/policy/selection.go
package policy

import (
	"cmp"
	"slices"

	"go_5_vocab_hint/internal/model"
)

// BestHintFor は epsilon-greedy でヒント種別を1つ選びます。
//   - 確率 ExplorationRate で全ヒント種別から一様ランダムに選ぶ (探索)
//   - それ以外は最大値を持つヒント種別の中から一様ランダムに選ぶ (同値は設定順に偏らせない)
//
// ヒント種別が1つも設定されていない場合は model.ErrNoHintAvailable を返します。
func (s *Store) BestHintFor(wordID model.WordKey) (model.HintType, error) {
	key, err := model.NormalizeWordID(wordID)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.ensureRowLocked(key)
	hints := s.params.HintTypes
	if len(hints) == 0 {
		return "", model.ErrNoHintAvailable
	}

	if s.rng.Float64() < s.params.ExplorationRate {
		return hints[s.rng.IntN(len(hints))], nil
	}

	return s.argmaxLocked(row, hints), nil
}

// BestHintAmong は candidates の中で価値が最大のヒント種別を返します (探索なし)。
// 同値の場合は一様ランダムに選ぶので、候補の並び順には偏りません。
// candidates が空なら model.ErrNoHintAvailable を返します。
func (s *Store) BestHintAmong(wordID model.WordKey, candidates []model.HintType) (model.HintType, error) {
	key, err := model.NormalizeWordID(wordID)
	if err != nil {
		return "", err
	}
	if len(candidates) == 0 {
		return "", model.ErrNoHintAvailable
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.ensureRowLocked(key)
	return s.argmaxLocked(row, candidates), nil
}

// argmaxLocked は最大値を持つヒント種別の中から一様ランダムに1つ選びます。
// 行に無いヒント種別は初期値として扱います。s.mu を保持した状態で呼び出すこと。
func (s *Store) argmaxLocked(row model.QRow, hints []model.HintType) model.HintType {
	value := func(h model.HintType) float64 {
		if v, ok := row[h]; ok {
			return v
		}
		return s.params.InitialQValue
	}

	maxQ := value(hints[0])
	for _, h := range hints[1:] {
		if v := value(h); v > maxQ {
			maxQ = v
		}
	}
	best := make([]model.HintType, 0, len(hints))
	for _, h := range hints {
		// 初期化直後は全て同値なので、厳密一致で同点を集める
		if value(h) == maxQ {
			best = append(best, h)
		}
	}
	return best[s.rng.IntN(len(best))]
}

// RankedHintsFor は価値の降順に並べたヒント種別を返します (同値は設定順)。
// 確率 ExplorationRate/2 で、先頭と2番目以降のランダムな1つを入れ替えます。
func (s *Store) RankedHintsFor(wordID model.WordKey) ([]model.HintType, error) {
	key, err := model.NormalizeWordID(wordID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.ensureRowLocked(key)
	ranked := slices.Clone(s.params.HintTypes)
	slices.SortStableFunc(ranked, func(a, b model.HintType) int {
		return cmp.Compare(row[b], row[a])
	})

	if s.rng.Float64() < s.params.ExplorationRate*0.5 && len(ranked) > 1 {
		j := 1 + s.rng.IntN(len(ranked)-1)
		ranked[0], ranked[j] = ranked[j], ranked[0]
	}
	if ranked == nil {
		ranked = []model.HintType{}
	}
	return ranked, nil
}
