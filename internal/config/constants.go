// internal/config/constants.go
package config

// アプリケーション情報
const (
	AppName    = "vocab-hint"
	AppVersion = "1.0.0"
)

// デフォルト設定値
const (
	DefaultServerPort = ":5001"
	DefaultLogLevel   = "info"

	DefaultLearningRate    = 0.05
	DefaultDiscountFactor  = 0.0
	DefaultExplorationRate = 0.2
	DefaultInitialQValue   = 0.1
	DefaultRewardCorrect   = 1.0
	DefaultRewardIncorrect = -0.5

	DefaultStorageBackend = "file"
	DefaultQTableFile     = "q_table.json"
	DefaultWordsFile      = "words.json"
)
