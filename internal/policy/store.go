// internal/policy/store.go
package policy

import (
	"context"
	"errors"
	"log/slog"
	"math"
	"math/rand/v2"
	"sync"

	"go_5_vocab_hint/internal/config"
	"go_5_vocab_hint/internal/model"
)

// Hyperparameters はプロセス全体で共有される学習パラメータ (起動後は変更しない)
type Hyperparameters struct {
	HintTypes       []model.HintType
	LearningRate    float64
	DiscountFactor  float64 // 受け付けるが更新式では使わない
	ExplorationRate float64
	InitialQValue   float64
	RewardCorrect   float64
	RewardIncorrect float64
}

// DefaultHyperparameters は設定が無い場合の値を返します
func DefaultHyperparameters() Hyperparameters {
	return Hyperparameters{
		HintTypes:       model.DefaultHintTypes(),
		LearningRate:    config.DefaultLearningRate,
		DiscountFactor:  config.DefaultDiscountFactor,
		ExplorationRate: config.DefaultExplorationRate,
		InitialQValue:   config.DefaultInitialQValue,
		RewardCorrect:   config.DefaultRewardCorrect,
		RewardIncorrect: config.DefaultRewardIncorrect,
	}
}

// HyperparametersFromConfig は設定ファイルの policy セクションから変換します
func HyperparametersFromConfig(p config.PolicyConfig) Hyperparameters {
	return Hyperparameters{
		HintTypes:       p.HintTypeList(),
		LearningRate:    p.LearningRate,
		DiscountFactor:  p.DiscountFactor,
		ExplorationRate: p.ExplorationRate,
		InitialQValue:   p.InitialQValue,
		RewardCorrect:   p.Rewards.Correct,
		RewardIncorrect: p.Rewards.Incorrect,
	}
}

// SnapshotStore は Q テーブルの永続化先 (ファイル or SQL)
//
//go:generate mockery --name SnapshotStore --output ../repository/mocks --outpkg mocks --case=underscore
type SnapshotStore interface {
	Load(ctx context.Context) (model.QTable, error)
	Save(ctx context.Context, table model.QTable) error
	Location() string
}

// RandSource は探索・タイブレークに使う乱数源。テストでは決定的な実装を注入します。
type RandSource interface {
	Float64() float64
	IntN(n int) int
}

// globalRand は math/rand/v2 のプロセス共通乱数源を使います
type globalRand struct{}

func (globalRand) Float64() float64 { return rand.Float64() }
func (globalRand) IntN(n int) int   { return rand.IntN(n) }

// Store は Q テーブルを所有し、読み込み・保存・行の遅延初期化を担当します
type Store struct {
	mu     sync.Mutex // テーブルの読み書き
	saveMu sync.Mutex // 保存の直列化 (古いスナップショットで上書きしない)

	params    Hyperparameters
	snapshots SnapshotStore
	rng       RandSource
	logger    *slog.Logger
	table     model.QTable
}

type Option func(*Store)

// WithRand は乱数源を差し替えます
func WithRand(r RandSource) Option {
	return func(s *Store) {
		if r != nil {
			s.rng = r
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New は空のテーブルを持つ Store を作成します。永続化済みの状態を使う場合は Load を呼んでください。
// snapshots が nil の場合はメモリ上だけで動作します。
func New(params Hyperparameters, snapshots SnapshotStore, opts ...Option) *Store {
	s := &Store{
		params:    params,
		snapshots: snapshots,
		rng:       globalRand{},
		logger:    slog.Default(),
		table:     make(model.QTable),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Params は現在のハイパーパラメータを返します
func (s *Store) Params() Hyperparameters {
	p := s.params
	p.HintTypes = append([]model.HintType(nil), s.params.HintTypes...)
	return p
}

// LoadResult は Load の結果。ColdStart の場合 Reason に原因が入ります。
type LoadResult struct {
	ColdStart bool
	Reason    error
	Words     int
}

// Load は永続化されたテーブルを読み込みます。
// 保存先が無い・壊れている場合は空のテーブルから始め、エラーは返しません。
func (s *Store) Load(ctx context.Context) LoadResult {
	if s.snapshots == nil {
		s.replaceTable(make(model.QTable))
		return LoadResult{ColdStart: true, Reason: model.ErrSnapshotNotFound}
	}

	logger := s.logger.With(slog.String("location", s.snapshots.Location()))
	loaded, err := s.snapshots.Load(ctx)
	if err != nil {
		if errors.Is(err, model.ErrSnapshotNotFound) {
			logger.Info("No q-table snapshot found, starting empty")
		} else {
			logger.Warn("Failed to load q-table snapshot, starting empty", slog.Any("error", err))
		}
		s.replaceTable(make(model.QTable))
		return LoadResult{ColdStart: true, Reason: err}
	}

	table := coerce(loaded)
	s.replaceTable(table)
	logger.Info("Q-table loaded", slog.Int("words", len(table)))
	return LoadResult{Words: len(table)}
}

// coerce は読み込んだ値を有限の float64 のみに絞り込みます。欠けた値は EnsureRow で補われます。
func coerce(in model.QTable) model.QTable {
	out := make(model.QTable, len(in))
	for k, row := range in {
		key, err := model.NormalizeWordID(k)
		if err != nil {
			continue
		}
		clean := out[key.String()]
		if clean == nil {
			clean = make(model.QRow, len(row))
		}
		for h, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			clean[h] = v
		}
		out[key.String()] = clean
	}
	return out
}

func (s *Store) replaceTable(t model.QTable) {
	s.mu.Lock()
	s.table = t
	s.mu.Unlock()
}

// Save はテーブル全体を永続化します。失敗しても *model.PersistenceError を返すだけで
// メモリ上のテーブルはそのまま使えます。
func (s *Store) Save(ctx context.Context) error {
	if s.snapshots == nil {
		return nil
	}

	s.saveMu.Lock()
	defer s.saveMu.Unlock()

	s.mu.Lock()
	snapshot := s.table.Clone()
	s.mu.Unlock()

	if err := s.snapshots.Save(ctx, snapshot); err != nil {
		var perr *model.PersistenceError
		if errors.As(err, &perr) {
			return perr
		}
		return &model.PersistenceError{Op: "save", Location: s.snapshots.Location(), Err: err}
	}
	return nil
}

// EnsureRow は単語の行を返します (無ければ初期値で作成、欠けたヒント種別は追加)。
// 返り値はコピーです。
func (s *Store) EnsureRow(wordID model.WordKey) (model.QRow, error) {
	key, err := model.NormalizeWordID(wordID)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	row := s.ensureRowLocked(key)
	cp := make(model.QRow, len(row))
	for h, v := range row {
		cp[h] = v
	}
	return cp, nil
}

// ensureRowLocked は s.mu を保持した状態で呼び出すこと
func (s *Store) ensureRowLocked(key model.WordKey) model.QRow {
	row, ok := s.table[key.String()]
	if !ok {
		row = make(model.QRow, len(s.params.HintTypes))
		s.table[key.String()] = row
	}
	for _, h := range s.params.HintTypes {
		if _, ok := row[h]; !ok {
			row[h] = s.params.InitialQValue
		}
	}
	return row
}

// Snapshot はテーブル全体のコピーを返します
func (s *Store) Snapshot() model.QTable {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.table.Clone()
}

// Len は行が作られた単語の数
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.table)
}
