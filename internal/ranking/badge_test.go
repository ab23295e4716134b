package ranking

import (
	"testing"
	"time"

	"github.com/skillsmarket/skillsmarket/internal/models"
)

func intPtr(v int) *int { return &v }

func TestClassifyBadge(t *testing.T) {
	th := DefaultBadgeThresholds()
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	old := now.Add(-30 * 24 * time.Hour)

	tests := []struct {
		name      string
		velocity  *int
		views7d   int64
		firstSeen time.Time
		want      models.Badge
	}{
		{
			name:      "new overrides hot velocity",
			velocity:  intPtr(200),
			views7d:   1000,
			firstSeen: now.Add(-1 * time.Hour),
			want:      models.BadgeNew,
		},
		{
			name:      "new at exactly the window edge",
			velocity:  nil,
			views7d:   0,
			firstSeen: now.Add(-48 * time.Hour),
			want:      models.BadgeNew,
		},
		{
			name:      "hot",
			velocity:  intPtr(50),
			views7d:   50,
			firstSeen: old,
			want:      models.BadgeHot,
		},
		{
			name:      "hot velocity without views is stable",
			velocity:  intPtr(80),
			views7d:   49,
			firstSeen: old,
			want:      models.BadgeStable,
		},
		{
			name:      "rising",
			velocity:  intPtr(15),
			views7d:   60,
			firstSeen: old,
			want:      models.BadgeRising,
		},
		{
			name:      "cooling needs the higher view floor",
			velocity:  intPtr(-50),
			views7d:   60,
			firstSeen: old,
			want:      models.BadgeStable,
		},
		{
			name:      "cooling",
			velocity:  intPtr(-25),
			views7d:   100,
			firstSeen: old,
			want:      models.BadgeCooling,
		},
		{
			name:      "low signal is stable",
			velocity:  nil,
			views7d:   500,
			firstSeen: old,
			want:      models.BadgeStable,
		},
		{
			name:      "mild decline is stable",
			velocity:  intPtr(-10),
			views7d:   500,
			firstSeen: old,
			want:      models.BadgeStable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ClassifyBadge(tt.velocity, tt.views7d, tt.firstSeen, now, th)
			if got != tt.want {
				t.Errorf("ClassifyBadge() = %s, want %s", got, tt.want)
			}
		})
	}
}
