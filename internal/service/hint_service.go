//go:generate mockery --name HintService --output ./mocks --outpkg mocks --case=underscore
package service

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"time"

	"go_5_vocab_hint/internal/middleware"
	"go_5_vocab_hint/internal/model"
	"go_5_vocab_hint/internal/policy"
	"go_5_vocab_hint/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const defaultOutcomeLimit = 50

// HintPolicy は *policy.Store が満たすインターフェース
type HintPolicy interface {
	EnsureRow(wordID model.WordKey) (model.QRow, error)
	BestHintFor(wordID model.WordKey) (model.HintType, error)
	BestHintAmong(wordID model.WordKey, candidates []model.HintType) (model.HintType, error)
	RankedHintsFor(wordID model.WordKey) ([]model.HintType, error)
	Update(wordID model.WordKey, hint model.HintType, isCorrect bool) (policy.Outcome, error)
	Save(ctx context.Context) error
}

// OutcomeResult は RecordOutcome の結果。PersistErr が nil でなければ保存に失敗しています
// (メモリ上の更新は反映済み)。
type OutcomeResult struct {
	Outcome    policy.Outcome
	Persisted  bool
	PersistErr error
}

type HintService interface {
	BestHint(ctx context.Context, wordID model.WordKey) (*model.HintPayload, error)
	RankedHints(ctx context.Context, wordID model.WordKey) ([]model.HintType, error)
	RecordOutcome(ctx context.Context, wordID model.WordKey, hint model.HintType, isCorrect bool) (*OutcomeResult, error)
	QValues(ctx context.Context, wordID model.WordKey) (model.QRow, error)
	Outcomes(ctx context.Context, wordID model.WordKey, limit int) ([]*model.OutcomeRecord, error)
}

type hintService struct {
	db          *gorm.DB // nil の場合は結果ログを保存しない
	policy      HintPolicy
	catalog     repository.CatalogRepository
	outcomeRepo repository.OutcomeRepository
	hintTypes   []model.HintType
}

// NewHintService は HintService を作成します。db と outcomeRepo は nil でも構いません。
func NewHintService(db *gorm.DB, p HintPolicy, catalog repository.CatalogRepository, outcomeRepo repository.OutcomeRepository, hintTypes []model.HintType) HintService {
	return &hintService{
		db:          db,
		policy:      p,
		catalog:     catalog,
		outcomeRepo: outcomeRepo,
		hintTypes:   slices.Clone(hintTypes),
	}
}

func errNoHint(err error) error {
	return model.NewAppError("NOT_FOUND", "No hint available for this word", "word_id", err)
}

// availableHintTypes は設定されたヒント種別のうち、その単語にメディアがあるものを設定順で返します。
// 一致が無くても gif があれば gif を使います。
func (s *hintService) availableHintTypes(word *model.CatalogWord) []model.HintType {
	if word == nil {
		return nil
	}
	avail := make([]model.HintType, 0, len(s.hintTypes))
	for _, h := range s.hintTypes {
		if _, ok := word.Hints[h]; ok {
			avail = append(avail, h)
		}
	}
	if len(avail) == 0 {
		if _, ok := word.Hints[model.HintGIF]; ok {
			avail = append(avail, model.HintGIF)
		}
	}
	return avail
}

// lookup はカタログから単語と利用可能なヒント種別を取得します
func (s *hintService) lookup(ctx context.Context, wordID model.WordKey) (*model.CatalogWord, []model.HintType, error) {
	word, err := s.catalog.FindByID(ctx, wordID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil, nil, nil
		}
		return nil, nil, model.NewAppError("INTERNAL_SERVER_ERROR", "failed to read word catalog", "", err)
	}
	return word, s.availableHintTypes(word), nil
}

func (s *hintService) BestHint(ctx context.Context, wordID model.WordKey) (*model.HintPayload, error) {
	logger := middleware.GetLogger(ctx).With("word_id", wordID.String())

	word, avail, err := s.lookup(ctx, wordID)
	if err != nil {
		return nil, err
	}
	if len(avail) == 0 {
		logger.Info("No hint available for word")
		return nil, errNoHint(model.ErrNoHintAvailable)
	}

	chosen, err := s.policy.BestHintFor(wordID)
	if err != nil {
		logger.Warn("Policy could not select a hint, falling back", "error", err)
	}
	if !slices.Contains(avail, chosen) {
		fallback := s.bestAvailable(wordID, avail, logger)
		logger.Debug("Policy choice not available for word", "chosen", chosen, "fallback", fallback)
		chosen = fallback
	}

	return &model.HintPayload{
		Word:     word.Word,
		HintType: chosen,
		GIFURL:   word.HintURL(chosen),
	}, nil
}

// bestAvailable は利用可能なヒントの中で価値が最大のものを返します (同値はランダム)
func (s *hintService) bestAvailable(wordID model.WordKey, avail []model.HintType, logger *slog.Logger) model.HintType {
	best, err := s.policy.BestHintAmong(wordID, avail)
	if err != nil {
		logger.Warn("Failed to select among available hints, using first available hint", "error", err)
		return avail[0]
	}
	return best
}

func (s *hintService) RankedHints(ctx context.Context, wordID model.WordKey) ([]model.HintType, error) {
	logger := middleware.GetLogger(ctx).With("word_id", wordID.String())

	_, avail, err := s.lookup(ctx, wordID)
	if err != nil {
		return nil, err
	}
	if len(avail) == 0 {
		return []model.HintType{}, nil
	}

	ranked, err := s.policy.RankedHintsFor(wordID)
	if err != nil {
		logger.Warn("Policy could not rank hints, returning available list", "error", err)
		return avail, nil
	}

	filtered := make([]model.HintType, 0, len(ranked))
	for _, h := range ranked {
		if slices.Contains(avail, h) {
			filtered = append(filtered, h)
		}
	}
	if len(filtered) == 0 {
		return avail, nil
	}
	return filtered, nil
}

func (s *hintService) RecordOutcome(ctx context.Context, wordID model.WordKey, hint model.HintType, isCorrect bool) (*OutcomeResult, error) {
	logger := middleware.GetLogger(ctx).With("word_id", wordID.String(), "hint_type", string(hint))

	outcome, err := s.policy.Update(wordID, hint, isCorrect)
	if err != nil {
		logger.Warn("Rejected outcome", "error", err)
		return nil, model.NewAppError("INVALID_INPUT", err.Error(), "", err)
	}
	logger.Info("Outcome recorded",
		"is_correct", isCorrect,
		"reward", outcome.Reward,
		"old_value", outcome.OldValue,
		"new_value", outcome.NewValue,
	)

	if s.db != nil && s.outcomeRepo != nil {
		rec := &model.OutcomeRecord{
			OutcomeID: uuid.New(),
			WordKey:   outcome.WordKey.String(),
			HintType:  string(outcome.HintType),
			IsCorrect: outcome.IsCorrect,
			Reward:    outcome.Reward,
			OldValue:  outcome.OldValue,
			NewValue:  outcome.NewValue,
			CreatedAt: time.Now(),
		}
		if createErr := s.outcomeRepo.Create(ctx, s.db, rec); createErr != nil {
			// 履歴の保存失敗は学習を止めない
			logger.Warn("Failed to append outcome log", "error", createErr)
		}
	}

	result := &OutcomeResult{Outcome: outcome, Persisted: true}
	if saveErr := s.policy.Save(ctx); saveErr != nil {
		logger.Warn("Failed to persist q-table, keeping in-memory update", "error", saveErr)
		result.Persisted = false
		result.PersistErr = saveErr
	}
	return result, nil
}

// QValues はカタログにある単語の Q 値を返します。未知の単語に行は作りません。
func (s *hintService) QValues(ctx context.Context, wordID model.WordKey) (model.QRow, error) {
	word, _, err := s.lookup(ctx, wordID)
	if err != nil {
		return nil, err
	}
	if word == nil {
		return nil, model.NewAppError("NOT_FOUND", "word not found", "word_id", model.ErrNotFound)
	}

	row, err := s.policy.EnsureRow(wordID)
	if err != nil {
		return nil, model.NewAppError("INVALID_INPUT", err.Error(), "word_id", err)
	}
	return row, nil
}

func (s *hintService) Outcomes(ctx context.Context, wordID model.WordKey, limit int) ([]*model.OutcomeRecord, error) {
	logger := middleware.GetLogger(ctx).With("word_id", wordID.String())

	if s.db == nil || s.outcomeRepo == nil {
		return nil, model.NewAppError("UNAVAILABLE", "outcome log is not configured", "", model.ErrUnavailable)
	}
	if limit <= 0 {
		limit = defaultOutcomeLimit
	}
	outcomes, err := s.outcomeRepo.ListByWord(ctx, s.db, wordID, limit)
	if err != nil {
		logger.Error("Failed to list outcomes", "error", err)
		return nil, model.NewAppError("INTERNAL_SERVER_ERROR", "failed to list outcomes", "", err)
	}
	return outcomes, nil
}
