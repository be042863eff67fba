// internal/policy/update.go
package policy

import (
	"fmt"

	"go_5_vocab_hint/internal/model"
)

// Outcome は1回の更新で何が起きたかを表します
type Outcome struct {
	WordKey   model.WordKey
	HintType  model.HintType
	IsCorrect bool
	Reward    float64
	OldValue  float64
	NewValue  float64
}

// Update はクイズの正誤を1件取り込みます (バンディット型の更新)。
//
//	Q <- Q + alpha * (reward - Q)
//
// reward は正解なら RewardCorrect、不正解なら RewardIncorrect (負の値も可)。
// 未知のヒント種別は初期値で追加してから更新するので、フィードバックは失われません。
// 将来状態の価値は使わないため DiscountFactor は影響しません。
func (s *Store) Update(wordID model.WordKey, hint model.HintType, isCorrect bool) (Outcome, error) {
	key, err := model.NormalizeWordID(wordID)
	if err != nil {
		return Outcome{}, err
	}
	if hint == "" {
		return Outcome{}, fmt.Errorf("empty hint type: %w", model.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.ensureRowLocked(key)
	old, ok := row[hint]
	if !ok {
		old = s.params.InitialQValue
		row[hint] = old
	}

	reward := s.params.RewardIncorrect
	if isCorrect {
		reward = s.params.RewardCorrect
	}

	target := reward
	newQ := old + s.params.LearningRate*(target-old)
	row[hint] = newQ

	return Outcome{
		WordKey:   key,
		HintType:  hint,
		IsCorrect: isCorrect,
		Reward:    reward,
		OldValue:  old,
		NewValue:  newQ,
	}, nil
}
