package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/shahrzads/ml-application-test-master/internal/models"
	"github.com/shahrzads/ml-application-test-master/pkg/config"

	"go.uber.org/zap"
)

// Collaborator endpoints, relative to the scoring base URL.
const (
	PathPredictATS  = "/ml/ats/predict"
	PathPredictResp = "/ml/resp/predict"
	PathAssignOffer = "/offer/assign"
)

// maxErrorBody bounds how much of a failed response is kept in the error.
const maxErrorBody = 1 << 10

// ScoringService calls the two scoring services and the offer service over HTTP.
type ScoringService struct {
	httpClient *http.Client
	baseURL    string
	logger     *zap.Logger
}

func NewScoringService(cfg *config.ScoringConfig, logger *zap.Logger) *ScoringService {
	return NewScoringServiceWithClient(cfg.BaseURL, &http.Client{Timeout: cfg.Timeout}, logger)
}

func NewScoringServiceWithClient(baseURL string, httpClient *http.Client, logger *zap.Logger) *ScoringService {
	return &ScoringService{
		httpClient: httpClient,
		baseURL:    strings.TrimRight(baseURL, "/"),
		logger:     logger,
	}
}

// PredictATS returns the estimated purchase amount for the member.
func (s *ScoringService) PredictATS(ctx context.Context, memberID string, features models.MemberFeatures) (float64, error) {
	return s.predict(ctx, memberID, PathPredictATS, features)
}

// PredictResp returns the estimated purchase likelihood for the member.
func (s *ScoringService) PredictResp(ctx context.Context, memberID string, features models.MemberFeatures) (float64, error) {
	return s.predict(ctx, memberID, PathPredictResp, features)
}

// AssignOffer returns the offer label chosen for the combined prediction.
func (s *ScoringService) AssignOffer(ctx context.Context, memberID string, prediction models.Prediction) (string, error) {
	var out struct {
		Offer *string `json:"offer"`
	}
	if err := s.post(ctx, memberID, PathAssignOffer, prediction, &out); err != nil {
		return "", err
	}
	if out.Offer == nil {
		return "", s.remoteError(PathAssignOffer, fmt.Errorf("response has no offer"))
	}

	s.logger.Info("Offer assigned",
		zap.String("member_id", memberID),
		zap.String("offer", *out.Offer),
	)
	return *out.Offer, nil
}

func (s *ScoringService) predict(ctx context.Context, memberID, path string, features models.MemberFeatures) (float64, error) {
	var out struct {
		Prediction *float64 `json:"prediction"`
	}
	if err := s.post(ctx, memberID, path, features, &out); err != nil {
		return 0, err
	}
	if out.Prediction == nil {
		return 0, s.remoteError(path, fmt.Errorf("response has no prediction"))
	}

	s.logger.Info("Prediction received",
		zap.String("member_id", memberID),
		zap.String("endpoint", path),
		zap.Float64("prediction", *out.Prediction),
	)
	return *out.Prediction, nil
}

// post sends body as JSON and decodes a 200 response into out. Every
// failure is a *models.RemoteCallError.
func (s *ScoringService) post(ctx context.Context, memberID, path string, body, out any) error {
	endpoint := s.baseURL + path

	jsonData, err := json.Marshal(body)
	if err != nil {
		return s.remoteError(path, fmt.Errorf("failed to marshal request: %w", err))
	}

	s.logger.Info("Sending POST request",
		zap.String("endpoint", endpoint),
		zap.String("member_id", memberID),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(jsonData))
	if err != nil {
		return s.remoteError(path, fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return s.remoteError(path, fmt.Errorf("failed to make request: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		s.logger.Error("Remote call failed",
			zap.String("endpoint", endpoint),
			zap.Int("status", resp.StatusCode),
			zap.String("body", string(bodyBytes)),
		)
		return &models.RemoteCallError{
			Endpoint:   path,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(bodyBytes)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return s.remoteError(path, fmt.Errorf("failed to decode response: %w", err))
	}

	s.logger.Debug("Remote call completed",
		zap.String("endpoint", endpoint),
		zap.Duration("latency", time.Since(start)),
	)
	return nil
}

func (s *ScoringService) remoteError(path string, err error) error {
	s.logger.Error("Remote call failed", zap.String("endpoint", path), zap.Error(err))
	return &models.RemoteCallError{Endpoint: path, Err: err}
}
