// internal/policy/selection_test.go
package policy

import (
	"math/rand/v2"
	"testing"

	"go_5_vocab_hint/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pcgRand は再現可能な math/rand/v2 の乱数源
type pcgRand struct{ r *rand.Rand }

func newPCGRand(seed uint64) *pcgRand {
	return &pcgRand{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (p *pcgRand) Float64() float64 { return p.r.Float64() }
func (p *pcgRand) IntN(n int) int   { return p.r.IntN(n) }

func TestStore_BestHintFor(t *testing.T) {
	t.Run("正常系: 探索なしで最大値を選ぶ", func(t *testing.T) {
		params := testParams()
		params.ExplorationRate = 0
		s := newTestStore(t, params, nil, newPCGRand(1))
		for i := 0; i < 5; i++ {
			_, err := s.Update("7", "b", true)
			require.NoError(t, err)
		}

		for i := 0; i < 100; i++ {
			got, err := s.BestHintFor("7")
			require.NoError(t, err)
			assert.Equal(t, model.HintType("b"), got)
		}
	})

	t.Run("正常系: 同値はランダムに選ばれ、どれも極端に偏らない", func(t *testing.T) {
		params := testParams()
		params.ExplorationRate = 0
		s := newTestStore(t, params, nil, newPCGRand(42))

		counts := map[model.HintType]int{}
		const trials = 3000
		for i := 0; i < trials; i++ {
			got, err := s.BestHintFor("7")
			require.NoError(t, err)
			counts[got]++
		}
		require.Len(t, counts, 3)
		for h, c := range counts {
			assert.InDelta(t, trials/3, c, trials*0.05, "hint %s", h)
		}
	})

	t.Run("正常系: 同点の最大値のみから選ぶ", func(t *testing.T) {
		params := testParams()
		params.ExplorationRate = 0
		params.HintTypes = []model.HintType{"a", "b", "c", "d"}
		s := newTestStore(t, params, nil, newPCGRand(7))
		// a と c を同じ値まで上げる
		for i := 0; i < 3; i++ {
			_, err := s.Update("7", "a", true)
			require.NoError(t, err)
			_, err = s.Update("7", "c", true)
			require.NoError(t, err)
		}

		seen := map[model.HintType]bool{}
		for i := 0; i < 500; i++ {
			got, err := s.BestHintFor("7")
			require.NoError(t, err)
			seen[got] = true
		}
		assert.Equal(t, map[model.HintType]bool{"a": true, "c": true}, seen)
	})

	t.Run("正常系: 探索率1なら全ヒント種別から一様に選ぶ", func(t *testing.T) {
		params := testParams()
		params.ExplorationRate = 1
		s := newTestStore(t, params, nil, newPCGRand(3))
		for i := 0; i < 10; i++ {
			_, err := s.Update("7", "a", true)
			require.NoError(t, err)
		}

		counts := map[model.HintType]int{}
		const trials = 3000
		for i := 0; i < trials; i++ {
			got, err := s.BestHintFor("7")
			require.NoError(t, err)
			counts[got]++
		}
		for _, h := range params.HintTypes {
			assert.InDelta(t, trials/3, counts[h], trials*0.05, "hint %s", h)
		}
	})

	t.Run("正常系: 乱数が探索率未満なら探索する", func(t *testing.T) {
		rng := &scriptedRand{floats: []float64{0.1}, ints: []int{2}}
		s := newTestStore(t, testParams(), nil, rng)
		got, err := s.BestHintFor("7")
		require.NoError(t, err)
		assert.Equal(t, model.HintType("c"), got)
	})

	t.Run("正常系: 未知の単語は行が作られる", func(t *testing.T) {
		s := newTestStore(t, testParams(), nil, newPCGRand(1))
		_, err := s.BestHintFor(model.WordKey("99"))
		require.NoError(t, err)
		assert.Contains(t, s.Snapshot(), "99")
	})

	t.Run("異常系: ヒント種別が設定されていない", func(t *testing.T) {
		params := testParams()
		params.HintTypes = nil
		s := newTestStore(t, params, nil, newPCGRand(1))
		_, err := s.BestHintFor("7")
		assert.ErrorIs(t, err, model.ErrNoHintAvailable)
	})
}

func TestStore_RankedHintsFor(t *testing.T) {
	seed := func(t *testing.T, s *Store) {
		t.Helper()
		// c > a > b になるように更新
		for i := 0; i < 4; i++ {
			_, err := s.Update("7", "c", true)
			require.NoError(t, err)
		}
		_, err := s.Update("7", "a", true)
		require.NoError(t, err)
		_, err = s.Update("7", "b", false)
		require.NoError(t, err)
	}

	t.Run("正常系: 探索なしなら価値の降順", func(t *testing.T) {
		params := testParams()
		params.ExplorationRate = 0
		s := newTestStore(t, params, nil, newPCGRand(1))
		seed(t, s)

		got, err := s.RankedHintsFor("7")
		require.NoError(t, err)
		assert.Equal(t, []model.HintType{"c", "a", "b"}, got)

		row, err := s.EnsureRow("7")
		require.NoError(t, err)
		for i := 1; i < len(got); i++ {
			assert.GreaterOrEqual(t, row[got[i-1]], row[got[i]])
		}
	})

	t.Run("正常系: 同値は設定順を保つ", func(t *testing.T) {
		params := testParams()
		params.ExplorationRate = 0
		s := newTestStore(t, params, nil, newPCGRand(1))

		got, err := s.RankedHintsFor("7")
		require.NoError(t, err)
		assert.Equal(t, []model.HintType{"a", "b", "c"}, got)
	})

	t.Run("正常系: 乱数が探索率/2 未満なら先頭を入れ替える", func(t *testing.T) {
		// 0.05 < 0.2/2 なので入れ替え、IntN(2)=1 で j=2
		rng := &scriptedRand{floats: []float64{0.05}, ints: []int{1}}
		s := newTestStore(t, testParams(), nil, rng)
		seed(t, s)

		got, err := s.RankedHintsFor("7")
		require.NoError(t, err)
		assert.Equal(t, []model.HintType{"b", "a", "c"}, got)
	})

	t.Run("正常系: 乱数が探索率/2 以上なら入れ替えない", func(t *testing.T) {
		rng := &scriptedRand{floats: []float64{0.15}}
		s := newTestStore(t, testParams(), nil, rng)
		seed(t, s)

		got, err := s.RankedHintsFor("7")
		require.NoError(t, err)
		assert.Equal(t, []model.HintType{"c", "a", "b"}, got)
	})

	t.Run("正常系: ヒント種別が1つなら入れ替えない", func(t *testing.T) {
		params := testParams()
		params.HintTypes = []model.HintType{"only"}
		rng := &scriptedRand{floats: []float64{0.0}}
		s := newTestStore(t, params, nil, rng)

		got, err := s.RankedHintsFor("7")
		require.NoError(t, err)
		assert.Equal(t, []model.HintType{"only"}, got)
	})

	t.Run("正常系: ヒント種別が無ければ空のリスト", func(t *testing.T) {
		params := testParams()
		params.HintTypes = nil
		s := newTestStore(t, params, nil, newPCGRand(1))

		got, err := s.RankedHintsFor("7")
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("正常系: 返り値は常に設定されたヒント種別の並べ替え", func(t *testing.T) {
		s := newTestStore(t, testParams(), nil, newPCGRand(9))
		seed(t, s)
		for i := 0; i < 200; i++ {
			got, err := s.RankedHintsFor("7")
			require.NoError(t, err)
			assert.ElementsMatch(t, []model.HintType{"a", "b", "c"}, got)
		}
	})
}

func TestStore_BestHintAmong(t *testing.T) {
	t.Run("正常系: 候補内の同値は一様に選ばれる", func(t *testing.T) {
		params := testParams()
		params.HintTypes = []model.HintType{"a", "b", "c", "d"}
		s := newTestStore(t, params, nil, newPCGRand(11))

		counts := map[model.HintType]int{}
		const trials = 4000
		for i := 0; i < trials; i++ {
			got, err := s.BestHintAmong("7", []model.HintType{"b", "d"})
			require.NoError(t, err)
			counts[got]++
		}
		require.Len(t, counts, 2)
		assert.InDelta(t, trials/2, counts["b"], trials*0.05)
		assert.InDelta(t, trials/2, counts["d"], trials*0.05)
	})

	t.Run("正常系: 候補外の値が大きくても候補内の最大を選ぶ", func(t *testing.T) {
		s := newTestStore(t, testParams(), nil, newPCGRand(1))
		for i := 0; i < 5; i++ {
			_, err := s.Update("7", "a", true)
			require.NoError(t, err)
		}
		_, err := s.Update("7", "c", true)
		require.NoError(t, err)

		for i := 0; i < 50; i++ {
			got, err := s.BestHintAmong("7", []model.HintType{"b", "c"})
			require.NoError(t, err)
			assert.Equal(t, model.HintType("c"), got)
		}
	})

	t.Run("正常系: 行に無い候補は初期値として扱う", func(t *testing.T) {
		s := newTestStore(t, testParams(), nil, newPCGRand(1))
		_, err := s.Update("7", "a", false)
		require.NoError(t, err)

		got, err := s.BestHintAmong("7", []model.HintType{"a", "extra"})
		require.NoError(t, err)
		assert.Equal(t, model.HintType("extra"), got)
	})

	t.Run("異常系: 候補が空", func(t *testing.T) {
		s := newTestStore(t, testParams(), nil, newPCGRand(1))
		_, err := s.BestHintAmong("7", nil)
		assert.ErrorIs(t, err, model.ErrNoHintAvailable)
	})
}
