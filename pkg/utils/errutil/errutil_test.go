package errutil_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
	"github.com/secmon-lab/riskreg/pkg/utils/errutil"
)

func TestStatusOf(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"validation", model.NewValidationError("bad"), http.StatusBadRequest},
		{"not logged in", goerr.Wrap(model.ErrNotLoggedIn, "x"), http.StatusBadRequest},
		{"invalid id", goerr.Wrap(model.ErrInvalidNotionID, "x"), http.StatusBadRequest},
		{"upstream", goerr.Wrap(model.ErrUpstream, "x"), http.StatusBadGateway},
		{"network", goerr.Wrap(model.ErrNetwork, "x"), http.StatusBadGateway},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gt.Value(t, errutil.StatusOf(tt.err)).Equal(tt.want)
		})
	}
}

func TestHandleHTTP(t *testing.T) {
	w := httptest.NewRecorder()
	err := goerr.Wrap(model.ErrUpstream, "query failed", goerr.V(model.MessageKey, "API token is invalid."))

	errutil.HandleHTTP(context.Background(), w, err)

	gt.Value(t, w.Code).Equal(http.StatusBadGateway)
	gt.Value(t, w.Header().Get("Content-Type")).Equal("application/json")

	var resp errutil.ErrorResponse
	gt.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp)).Required()
	gt.Value(t, resp.Message).Equal("API token is invalid.")
}

func TestHandleHTTP_Nil(t *testing.T) {
	w := httptest.NewRecorder()
	errutil.HandleHTTP(context.Background(), w, nil)
	gt.Value(t, w.Body.Len()).Equal(0)
}
