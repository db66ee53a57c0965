package schedule

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pulsewatch/pulsewatch/internal/domain/model"
)

func TestNextPingInterval(t *testing.T) {
	from := time.Date(2023, 6, 15, 12, 30, 0, 0, time.UTC)

	tests := []struct {
		value string
		want  time.Duration
	}{
		{"1m", time.Minute},
		{"5m", 5 * time.Minute},
		{"90m", 90 * time.Minute},
		{"1h", time.Hour},
		{"12h", 12 * time.Hour},
		{"1d", 24 * time.Hour},
		{"7d", 7 * 24 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got, err := NextPing(model.ScheduleTypeInterval, tt.value, from)
			require.NoError(t, err)
			assert.Equal(t, from.Add(tt.want), got)
		})
	}
}

func TestNextPingIntervalInvalid(t *testing.T) {
	from := time.Now()

	for _, value := range []string{"", "5", "m", "5s", "5w", "-5m", "5 m", "m5", "1.5h", "0m"} {
		t.Run(value, func(t *testing.T) {
			_, err := NextPing(model.ScheduleTypeInterval, value, from)
			assert.Error(t, err)
		})
	}
}

func TestNextPingCronDaily(t *testing.T) {
	from := time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC)

	got, err := NextPing(model.ScheduleTypeCron, "0 0 * * *", from)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), got)
}

func TestNextPingCronStrictlyAfter(t *testing.T) {
	// A reference time exactly on a cron boundary must yield the following
	// occurrence, not the boundary itself.
	from := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	got, err := NextPing(model.ScheduleTypeCron, "0 0 * * *", from)
	require.NoError(t, err)
	assert.True(t, got.After(from), "next occurrence must be strictly after from")
	assert.Equal(t, time.Date(2023, 1, 2, 0, 0, 0, 0, time.UTC), got)
}

func TestNextPingCronVariants(t *testing.T) {
	from := time.Date(2023, 3, 10, 14, 7, 30, 0, time.UTC)

	tests := []struct {
		name string
		expr string
		want time.Time
	}{
		{"every five minutes", "*/5 * * * *", time.Date(2023, 3, 10, 14, 10, 0, 0, time.UTC)},
		{"hourly descriptor", "@hourly", time.Date(2023, 3, 10, 15, 0, 0, 0, time.UTC)},
		{"six fields with seconds", "30 * * * * *", time.Date(2023, 3, 10, 14, 8, 30, 0, time.UTC)},
		{"monthly", "0 0 1 * *", time.Date(2023, 4, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextPing(model.ScheduleTypeCron, tt.expr, from)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextPingCronInvalid(t *testing.T) {
	from := time.Now()

	for _, expr := range []string{"", "not a cron", "* * *", "61 * * * *", "* * * * * * *"} {
		t.Run(expr, func(t *testing.T) {
			_, err := NextPing(model.ScheduleTypeCron, expr, from)
			assert.Error(t, err)
		})
	}
}

func TestNextPingUnknownType(t *testing.T) {
	_, err := NextPing(model.ScheduleType("weekly"), "1w", time.Now())
	assert.Error(t, err)
}

func TestNominalPeriodInterval(t *testing.T) {
	got, err := NominalPeriod(model.ScheduleTypeInterval, "5m")
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, got)

	got, err = NominalPeriod(model.ScheduleTypeInterval, "2d")
	require.NoError(t, err)
	assert.Equal(t, 48*time.Hour, got)
}

func TestNominalPeriodCron(t *testing.T) {
	// Regular expressions produce an exact gap between consecutive occurrences.
	got, err := NominalPeriod(model.ScheduleTypeCron, "*/10 * * * *")
	require.NoError(t, err)
	assert.Equal(t, 10*time.Minute, got)

	got, err = NominalPeriod(model.ScheduleTypeCron, "0 0 * * *")
	require.NoError(t, err)
	assert.Equal(t, 24*time.Hour, got)
}

func TestNominalPeriodInvalid(t *testing.T) {
	_, err := NominalPeriod(model.ScheduleTypeCron, "bogus")
	assert.Error(t, err)

	_, err = NominalPeriod(model.ScheduleTypeInterval, "5w")
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	assert.NoError(t, Validate(model.ScheduleTypeCron, "0 0 * * *"))
	assert.NoError(t, Validate(model.ScheduleTypeInterval, "15m"))
	assert.Error(t, Validate(model.ScheduleTypeCron, "nope"))
	assert.Error(t, Validate(model.ScheduleTypeInterval, "15s"))
}
