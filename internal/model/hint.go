// internal/model/hint.go
package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// HintType はヒントの提示形式 (dialogue, context, story, gif など)
type HintType string

// デフォルトのヒント種別 (設定の順序がタイブレーク順になる)
const (
	HintDialogue HintType = "dialogue"
	HintContext  HintType = "context"
	HintStory    HintType = "story"
	HintGIF      HintType = "gif"
)

// DefaultHintTypes は設定が無い場合に使うヒント種別の一覧
func DefaultHintTypes() []HintType {
	return []HintType{HintDialogue, HintContext, HintStory, HintGIF}
}

// QRow は1単語分のヒント種別ごとの価値推定
type QRow map[HintType]float64

// QTable は単語キー (正規化済み文字列) から QRow へのマップ
type QTable map[string]QRow

// Clone はテーブルのディープコピーを返します (保存時のスナップショット用)
func (t QTable) Clone() QTable {
	out := make(QTable, len(t))
	for k, row := range t {
		cp := make(QRow, len(row))
		for h, v := range row {
			cp[h] = v
		}
		out[k] = cp
	}
	return out
}

// WordKey は正規化された単語IDです。数値 7 と文字列 "7" は同じキー "7" になります。
type WordKey string

func (k WordKey) String() string { return string(k) }

// NormalizeWordID は整数・整数文字列・整数値の浮動小数点を正規化したキーに変換します。
func NormalizeWordID(v any) (WordKey, error) {
	switch id := v.(type) {
	case WordKey:
		return NormalizeWordID(string(id))
	case int:
		return WordKey(strconv.FormatInt(int64(id), 10)), nil
	case int32:
		return WordKey(strconv.FormatInt(int64(id), 10)), nil
	case int64:
		return WordKey(strconv.FormatInt(id, 10)), nil
	case uint:
		return WordKey(strconv.FormatUint(uint64(id), 10)), nil
	case uint32:
		return WordKey(strconv.FormatUint(uint64(id), 10)), nil
	case uint64:
		return WordKey(strconv.FormatUint(id, 10)), nil
	case float64:
		return normalizeFloat(id)
	case float32:
		return normalizeFloat(float64(id))
	case json.Number:
		return NormalizeWordID(string(id))
	case string:
		s := strings.TrimSpace(id)
		if s == "" {
			return "", fmt.Errorf("empty word id: %w", ErrInvalidInput)
		}
		if n, err := strconv.ParseInt(s, 10, 64); err == nil {
			return WordKey(strconv.FormatInt(n, 10)), nil
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return normalizeFloat(f)
		}
		return "", fmt.Errorf("word id %q is not an integer: %w", id, ErrInvalidInput)
	default:
		return "", fmt.Errorf("unsupported word id type %T: %w", v, ErrInvalidInput)
	}
}

func normalizeFloat(f float64) (WordKey, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || math.Abs(f) > 1<<53 {
		return "", fmt.Errorf("word id %v is not an integer: %w", f, ErrInvalidInput)
	}
	return WordKey(strconv.FormatInt(int64(f), 10)), nil
}

// UnmarshalJSON は JSON の数値・文字列どちらの word_id も受け付けます。
func (k *WordKey) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*k = ""
		return nil
	}
	var raw any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	key, err := NormalizeWordID(raw)
	if err != nil {
		return err
	}
	*k = key
	return nil
}

// --- API DTO ---

// HintRequest は /get_best_hint_type, /get_ranked_hint_type のリクエストボディ
type HintRequest struct {
	WordID WordKey `json:"word_id" validate:"required"`
}

// UpdateModelRequest は /update_model のリクエストボディ
type UpdateModelRequest struct {
	WordID    WordKey  `json:"word_id" validate:"required"`
	HintType  HintType `json:"hint_type" validate:"required,max=64"`
	IsCorrect bool     `json:"is_correct"`
}

// HintPayload は選ばれたヒントとそのメディアURL
type HintPayload struct {
	Word     string   `json:"word"`
	HintType HintType `json:"hint_type"`
	GIFURL   string   `json:"gif_url"`
}

// RankedHintsResponse はランキング結果のレスポンス
type RankedHintsResponse struct {
	RankedHintTypes []HintType `json:"ranked_hint_types"`
}

// UpdateModelResponse は学習結果送信のレスポンス
type UpdateModelResponse struct {
	OK        bool `json:"ok"`
	Persisted bool `json:"persisted"`
}

// QValuesResponse は単語ごとの価値推定の確認用レスポンス
type QValuesResponse struct {
	WordID  WordKey `json:"word_id"`
	QValues QRow    `json:"q_values"`
}
