package semantic

import (
	"testing"
	"time"

	"github.com/magpielabs/magpie/internal/ports"
	"github.com/stretchr/testify/assert"
)

func TestInfer_Datetime(t *testing.T) {
	vals := []string{
		"2024-06-01 10:30:00",
		"2024-06-01 11:00:00",
		"2024-06-02 09:15:30",
	}
	assert.Equal(t, ports.TypeDatetime, Infer(vals))
}

func TestInfer_DatetimeWithTimezoneSuffix(t *testing.T) {
	vals := []string{
		"2024-06-01 10:30:00 UTC",
		"2024-06-01 11:00:00 UTC",
	}
	assert.Equal(t, ports.TypeDatetime, Infer(vals))
}

func TestInfer_EpochSeconds(t *testing.T) {
	assert.Equal(t, ports.TypeDatetime, Infer([]string{"1717236600", "1717240200"}))
}

func TestInfer_ClockTime(t *testing.T) {
	assert.Equal(t, ports.TypeTime, Infer([]string{"10:30:00", "14:45:00"}))
}

func TestInfer_URL(t *testing.T) {
	assert.Equal(t, ports.TypeURL, Infer([]string{"https://x.com/a", "https://x.com/b"}))
}

func TestInfer_Identifier(t *testing.T) {
	assert.Equal(t, ports.TypeIdentifier, Infer([]string{"user_123", "user_456"}))
}

func TestInfer_FreeText(t *testing.T) {
	vals := []string{
		"this is a longer message with spaces",
		"another one here",
	}
	assert.Equal(t, ports.TypeText, Infer(vals))
}

func TestInfer_Integer(t *testing.T) {
	assert.Equal(t, ports.TypeInteger, Infer([]string{"1", "2", "3"}))
}

func TestInfer_EmptyColumn(t *testing.T) {
	assert.Equal(t, ports.TypeText, Infer([]string{"", "  ", ""}))
}

func TestInfer_ThresholdTolerasMinorityGarbage(t *testing.T) {
	vals := []string{
		"2024-06-01", "2024-06-02", "2024-06-03", "2024-06-04",
		"2024-06-05", "2024-06-06", "2024-06-07", "2024-06-08",
		"2024-06-09", "not a date",
	}
	assert.Equal(t, ports.TypeDatetime, Infer(vals))
}

func TestParseDatetime(t *testing.T) {
	got := ParseDatetime("2024-06-01 10:30:00")
	assert.Equal(t, time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC), got)

	rfc := ParseDatetime("2024-06-01T10:30:00Z")
	assert.Equal(t, time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC), rfc.UTC())

	epoch := ParseDatetime("1717236600")
	assert.Equal(t, int64(1717236600), epoch.Unix())

	assert.True(t, ParseDatetime("garbage").IsZero())
}
