package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shahrzads/ml-application-test-master/internal/models"
	"github.com/shahrzads/ml-application-test-master/pkg/config"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeScoringServer mimics the scoring and offer services.
type fakeScoringServer struct {
	atsStatus  int
	respBody   string
	lastOffer  map[string]any
	lastATSReq map[string]any
}

func (f *fakeScoringServer) router() http.Handler {
	r := chi.NewRouter()
	r.Post(PathPredictATS, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&f.lastATSReq)
		if f.atsStatus != 0 && f.atsStatus != http.StatusOK {
			http.Error(w, "model unavailable", f.atsStatus)
			return
		}
		writeJSON(w, `{"prediction": 812.5}`)
	})
	r.Post(PathPredictResp, func(w http.ResponseWriter, r *http.Request) {
		body := f.respBody
		if body == "" {
			body = `{"prediction": 0.42}`
		}
		writeJSON(w, body)
	})
	r.Post(PathAssignOffer, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&f.lastOffer)
		writeJSON(w, `{"offer": "OFFER_B"}`)
	})
	return r
}

func writeJSON(w http.ResponseWriter, body string) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(body))
}

func newTestScoring(t *testing.T, fake *fakeScoringServer) *ScoringService {
	t.Helper()
	srv := httptest.NewServer(fake.router())
	t.Cleanup(srv.Close)
	return NewScoringService(&config.ScoringConfig{
		BaseURL: srv.URL + "/",
		Timeout: 5 * time.Second,
	}, zap.NewNop())
}

func TestScoringService_Predict(t *testing.T) {
	fake := &fakeScoringServer{}
	svc := newTestScoring(t, fake)
	features := models.MemberFeatures{AvgPointsBought: 150, DaysSinceLastTransaction: 90}

	ats, err := svc.PredictATS(context.Background(), "A", features)
	require.NoError(t, err)
	assert.Equal(t, 812.5, ats)
	assert.Equal(t, 150.0, fake.lastATSReq["AVG_POINTS_BOUGHT"])
	assert.Equal(t, 90.0, fake.lastATSReq["DAYS_SINCE_LAST_TRANSACTION"])
	assert.Len(t, fake.lastATSReq, 8)

	resp, err := svc.PredictResp(context.Background(), "A", features)
	require.NoError(t, err)
	assert.Equal(t, 0.42, resp)
}

func TestScoringService_AssignOffer(t *testing.T) {
	fake := &fakeScoringServer{}
	svc := newTestScoring(t, fake)

	ats := 812.5
	offer, err := svc.AssignOffer(context.Background(), "A", Combine(&ats, nil))
	require.NoError(t, err)
	assert.Equal(t, "OFFER_B", offer)

	require.Contains(t, fake.lastOffer, "resp_prediction")
	assert.Nil(t, fake.lastOffer["resp_prediction"])
	assert.Equal(t, 812.5, fake.lastOffer["ats_prediction"])
}

func TestScoringService_Non200(t *testing.T) {
	svc := newTestScoring(t, &fakeScoringServer{atsStatus: http.StatusServiceUnavailable})

	_, err := svc.PredictATS(context.Background(), "A", models.MemberFeatures{})
	require.ErrorIs(t, err, models.ErrRemoteCall)

	var remoteErr *models.RemoteCallError
	require.ErrorAs(t, err, &remoteErr)
	assert.Equal(t, PathPredictATS, remoteErr.Endpoint)
	assert.Equal(t, http.StatusServiceUnavailable, remoteErr.StatusCode)
	assert.Equal(t, "model unavailable", remoteErr.Body)
}

func TestScoringService_BadBody(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"missing field", `{"score": 1}`},
		{"not json", `<html>`},
		{"null prediction", `{"prediction": null}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestScoring(t, &fakeScoringServer{respBody: tt.body})

			_, err := svc.PredictResp(context.Background(), "A", models.MemberFeatures{})
			var remoteErr *models.RemoteCallError
			require.ErrorAs(t, err, &remoteErr)
			assert.Equal(t, PathPredictResp, remoteErr.Endpoint)
			assert.Zero(t, remoteErr.StatusCode)
		})
	}
}

func TestScoringService_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	baseURL := srv.URL
	srv.Close()

	svc := NewScoringServiceWithClient(baseURL, &http.Client{Timeout: time.Second}, zap.NewNop())
	_, err := svc.PredictATS(context.Background(), "A", models.MemberFeatures{})

	var remoteErr *models.RemoteCallError
	require.ErrorAs(t, err, &remoteErr)
	assert.Zero(t, remoteErr.StatusCode)
	assert.Error(t, remoteErr.Err)
}

func TestScoringService_ContextCanceled(t *testing.T) {
	svc := newTestScoring(t, &fakeScoringServer{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.AssignOffer(ctx, "A", models.Prediction{})
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, err, models.ErrRemoteCall)
}
