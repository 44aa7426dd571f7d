package chrono

import (
	"bindays-backend/internal/components/telemetry"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestStandardImpl(t *testing.T) {
	clock, err := NewStandardImpl()
	require.NoError(t, err)
	require.Equal(t, "Europe/London", clock.Location().String())
	require.Equal(t, clock.Location(), clock.Now().Location())
}

func TestFixedImpl(t *testing.T) {
	now := time.Date(2024, time.December, 24, 18, 0, 0, 0, time.UTC)
	clock := FixedImpl{Time: now}
	require.Equal(t, now, clock.Now())
	require.Equal(t, time.UTC, clock.Location())
}

func TestStandardCronRejectsInvalidSpec(t *testing.T) {
	cron := NewStandardCron(FixedImpl{Time: time.Now()}, telemetry.NewRecorderAPI())
	defer cron.Stop()

	require.Error(t, cron.Cron("not a spec", func() {}))
	require.NoError(t, cron.Cron("0 18 * * *", func() {}))
}
