// internal/webutil/webutil_test.go
package webutil

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go_5_vocab_hint/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeJSONBody(t *testing.T) {
	tests := []struct {
		name      string
		body      string
		wantErr   error
		wantField string
		want      model.UpdateModelRequest
	}{
		{
			name: "正常系: 数値の word_id",
			body: `{"word_id": 7, "hint_type": "gif", "is_correct": true}`,
			want: model.UpdateModelRequest{WordID: "7", HintType: "gif", IsCorrect: true},
		},
		{
			name: "正常系: 文字列の word_id",
			body: `{"word_id": " 42 ", "hint_type": "story", "is_correct": false}`,
			want: model.UpdateModelRequest{WordID: "42", HintType: "story"},
		},
		{
			name:    "異常系: 空のボディ",
			body:    ``,
			wantErr: model.ErrInvalidInput,
		},
		{
			name: "正常系: 不明なフィールドは無視",
			body: `{"word_id": 7, "hint_type": "gif", "foo": 1}`,
			want: model.UpdateModelRequest{WordID: "7", HintType: "gif"},
		},
		{
			name:      "異常系: 必須項目が無い",
			body:      `{"word_id": 7}`,
			wantErr:   model.ErrInvalidInput,
			wantField: "hint_type",
		},
		{
			name:    "異常系: word_id が小数",
			body:    `{"word_id": 7.5, "hint_type": "gif"}`,
			wantErr: model.ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var got model.UpdateModelRequest

			err := DecodeJSONBody(req, &got)

			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.wantField != "" {
					var appErr *model.AppError
					require.ErrorAs(t, err, &appErr)
					assert.Equal(t, tt.wantField, appErr.Detail.Field)
					assert.Equal(t, "hint_type required", appErr.Detail.Message)
				}
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMapErrorToStatusCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{model.ErrNotFound, http.StatusNotFound},
		{model.ErrNoHintAvailable, http.StatusNotFound},
		{fmt.Errorf("wrap: %w", model.ErrInvalidInput), http.StatusBadRequest},
		{model.NewAppError("UNAVAILABLE", "x", "", model.ErrUnavailable), http.StatusServiceUnavailable},
		{errors.New("other"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err), "err=%v", tt.err)
	}
}

func TestHandleError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{
			name:        "AppError の内容をそのまま返す",
			err:         model.NewAppError("NOT_FOUND", "No hint available for this word", "word_id", model.ErrNoHintAvailable),
			wantStatus:  http.StatusNotFound,
			wantCode:    "NOT_FOUND",
			wantMessage: "No hint available for this word",
		},
		{
			name:        "入力エラーはメッセージを返す",
			err:         fmt.Errorf("bad json: %w", model.ErrInvalidInput),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "INVALID_INPUT",
			wantMessage: "bad json: invalid input",
		},
		{
			name:        "予期せぬエラーは詳細を隠す",
			err:         errors.New("connection refused to 10.0.0.1"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_SERVER_ERROR",
			wantMessage: "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			HandleError(rr, logger, tt.err)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			var resp model.APIErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, tt.wantMessage, resp.Error.Message)
		})
	}
}
