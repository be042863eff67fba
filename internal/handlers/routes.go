// internal/handlers/routes.go
package handlers

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes はヒント API のルーティングを登録します。
// 既存のフロントエンドが使うパス (/get_best_hint_type など) はそのまま残しています。
func RegisterRoutes(r chi.Router, hint *HintHandler, health *HealthHandler) {
	r.Post("/get_best_hint_type", hint.GetBestHintType)
	r.Post("/get_ranked_hint_type", hint.GetRankedHintType)
	r.Post("/update_model", hint.UpdateModel)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/words/{word_id}", func(r chi.Router) {
			r.Get("/q_values", hint.GetQValues)
			r.Get("/outcomes", hint.GetOutcomes)
		})
	})

	r.Get("/health", health.Check)
}
