//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"bookcore/internal/pkg/config"
	"bookcore/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID, tenantID uuid.UUID, role, sessionID string) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret)
	token, err := service.GenerateToken(userID, tenantID, role, sessionID, 15*time.Minute)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID, tenantID uuid.UUID, role string) string {
	t.Helper()
	service := jwt.NewService(h.cfg.Secret)
	token, err := service.GenerateToken(userID, tenantID, role, uuid.NewString(), -1*time.Minute)
	require.NoError(t, err)
	return token
}
