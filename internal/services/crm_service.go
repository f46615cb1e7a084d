package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"

	"github.com/tavvy/tavvy-pros-api/config"
	"github.com/tavvy/tavvy-pros-api/internal/models"
	"github.com/tavvy/tavvy-pros-api/pkg/circuitbreaker"
	"github.com/tavvy/tavvy-pros-api/pkg/httpclient"
	"github.com/tavvy/tavvy-pros-api/pkg/logger"
	"github.com/tavvy/tavvy-pros-api/pkg/metrics"
	"github.com/tavvy/tavvy-pros-api/pkg/retry"
)

// CRMService delivers webhook events to the marketing-automation platform.
// Deliveries are fire-and-forget from the caller's perspective; retries and
// a circuit breaker keep a flapping CRM endpoint from piling up goroutines.
type CRMService struct {
	config     *config.Config
	httpClient httpclient.Client
	breaker    *gobreaker.CircuitBreaker
}

// NewCRMService creates a new CRMService
func NewCRMService(cfg *config.Config, httpClient httpclient.Client) *CRMService {
	return &CRMService{
		config:     cfg,
		httpClient: httpClient,
		breaker:    circuitbreaker.NewCircuitBreaker(circuitbreaker.DefaultConfig("crm_webhooks")),
	}
}

// NotifyProCompleted sends the onboarding-completed event asynchronously.
// Failures never propagate to the completing pro.
func (s *CRMService) NotifyProCompleted(pro *models.Pro, place *models.Place) {
	if s.config.CRM.ProCompletedTriggerURL == "" {
		return
	}

	payload := map[string]interface{}{
		"type": "pro_onboarding_completed",
		"pro": map[string]interface{}{
			"user_id":            pro.UserID,
			"email":              pro.Email,
			"provider_type":      string(pro.ProviderType),
			"primary_category":   pro.PrimaryCategory(),
			"specialties":        strings.Join(pro.Specialties, ","),
			"profile_completion": pro.ProfileCompletion,
		},
	}
	if place != nil {
		payload["place"] = map[string]interface{}{
			"name": place.Name,
			"slug": place.Slug,
			"city": place.City,
		}
	}

	s.callAsync("pro_completed", s.config.CRM.ProCompletedTriggerURL, payload)
}

// SendLoginEmail asks the CRM to deliver a passwordless login email
func (s *CRMService) SendLoginEmail(email, name, loginURL string) {
	if s.config.CRM.ProLoginEmailTrigger == "" {
		return
	}

	payload := map[string]interface{}{
		"type": "pro_login",
		"pro": map[string]string{
			"email": email,
			"name":  name,
		},
		"login_url": loginURL,
	}

	s.callAsync("pro_login_email", s.config.CRM.ProLoginEmailTrigger, payload)
}

// callAsync delivers a JSON payload in a goroutine with retries behind the
// circuit breaker. Failures are logged and counted, never returned.
func (s *CRMService) callAsync(trigger, url string, payload map[string]interface{}) {
	go func() {
		body, err := json.Marshal(payload)
		if err != nil {
			logger.Error("Failed to marshal CRM payload",
				zap.String("trigger", trigger),
				zap.Error(err))
			metrics.CRMTriggerCalls.WithLabelValues(trigger, "error").Inc()
			return
		}

		err = retry.Do(context.Background(), retry.CRMConfig(), "crm_"+trigger, func() error {
			_, execErr := circuitbreaker.Execute(s.breaker, func() (struct{}, error) {
				resp, postErr := s.httpClient.Post(url, "application/json", bytes.NewReader(body))
				if postErr != nil {
					return struct{}{}, postErr
				}
				defer resp.Body.Close()

				if resp.StatusCode < 200 || resp.StatusCode >= 300 {
					return struct{}{}, fmt.Errorf("CRM returned status %d", resp.StatusCode)
				}
				return struct{}{}, nil
			})
			return circuitbreaker.FormatError("crm_webhooks", execErr)
		})

		if err != nil {
			logger.Error("CRM trigger delivery failed",
				zap.String("trigger", trigger),
				zap.String("url", url),
				zap.Error(err))
			metrics.CRMTriggerCalls.WithLabelValues(trigger, "error").Inc()
			return
		}

		logger.Info("CRM trigger delivered", zap.String("trigger", trigger))
		metrics.CRMTriggerCalls.WithLabelValues(trigger, "success").Inc()
	}()
}
