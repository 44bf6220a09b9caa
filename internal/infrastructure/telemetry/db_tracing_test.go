package telemetry_test

import (
	"testing"

	"github.com/storefront/backend/internal/infrastructure/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestRegisterDBTracing(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	t.Run("disabled is a no-op", func(t *testing.T) {
		err := telemetry.RegisterDBTracing(db, telemetry.DBTracingConfig{Enabled: false}, zap.NewNop())
		assert.NoError(t, err)
		_, registered := db.Config.Plugins["otelgorm"]
		assert.False(t, registered)
	})

	t.Run("enabled registers otelgorm", func(t *testing.T) {
		err := telemetry.RegisterDBTracing(db, telemetry.DBTracingConfig{Enabled: true, DBName: "storefront"}, zap.NewNop())
		require.NoError(t, err)
		_, registered := db.Config.Plugins["otelgorm"]
		assert.True(t, registered)
	})
}
