package apiclient

import (
	"context"
	"fmt"
	"time"

	"github.com/anbu-gynaecare/webapp/internal/application/adapter"
	"github.com/anbu-gynaecare/webapp/internal/domain/entity"
)

// CycleService submits onboarding cycle settings.
type CycleService struct {
	client *Client
	now    func() time.Time
}

// NewCycleService creates a cycle service.
func NewCycleService(client *Client) *CycleService {
	return &CycleService{client: client, now: time.Now}
}

var _ adapter.CycleAPI = (*CycleService)(nil)

// SetUserCycle validates and submits settings, returning the API's confirmation.
func (s *CycleService) SetUserCycle(ctx context.Context, settings entity.CycleSettings) (string, error) {
	if err := settings.Validate(s.now()); err != nil {
		return "", fmt.Errorf("failed to set cycle settings: %w", err)
	}

	var confirmation string
	env, err := s.client.post(ctx, "/user-cycles", settings, &confirmation)
	if err != nil {
		return "", fmt.Errorf("failed to set cycle settings: %w", err)
	}
	if confirmation == "" {
		confirmation = env.Message
	}
	return confirmation, nil
}
