package ranking

import "testing"

func TestVelocity_BaselineGate(t *testing.T) {
	p := DefaultVelocityParams()

	tests := []struct {
		name           string
		scoreToday     float64
		scoreYesterday float64
		views7d        int64
		wantNil        bool
	}{
		{
			name:           "below both baselines",
			scoreToday:     100,
			scoreYesterday: 4,
			views7d:        49,
			wantNil:        true,
		},
		{
			name:           "views baseline passes",
			scoreToday:     10,
			scoreYesterday: 0,
			views7d:        50,
			wantNil:        false,
		},
		{
			name:           "score baseline passes",
			scoreToday:     10,
			scoreYesterday: 5,
			views7d:        0,
			wantNil:        false,
		},
		{
			name:           "huge today score cannot bypass the gate",
			scoreToday:     99999,
			scoreYesterday: 0,
			views7d:        0,
			wantNil:        true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Velocity(tt.scoreToday, tt.scoreYesterday, tt.views7d, p)
			if (got == nil) != tt.wantNil {
				t.Errorf("Velocity() = %v, wantNil = %v", got, tt.wantNil)
			}
		})
	}
}

func TestVelocity_Values(t *testing.T) {
	p := DefaultVelocityParams()

	tests := []struct {
		name           string
		scoreToday     float64
		scoreYesterday float64
		views7d        int64
		want           int
	}{
		{
			name:           "spike from zero clamps at 999",
			scoreToday:     60,
			scoreYesterday: 0,
			views7d:        60,
			want:           999, // round(60/5*100) = 1200, clamped
		},
		{
			name:           "moderate growth",
			scoreToday:     30,
			scoreYesterday: 20,
			views7d:        100,
			want:           40, // round(10/25*100)
		},
		{
			name:           "flat",
			scoreToday:     20,
			scoreYesterday: 20,
			views7d:        100,
			want:           0,
		},
		{
			name:           "decline",
			scoreToday:     10,
			scoreYesterday: 20,
			views7d:        100,
			want:           -40,
		},
		{
			name:           "collapse clamps at -999",
			scoreToday:     -100000,
			scoreYesterday: 20,
			views7d:        100,
			want:           -999,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Velocity(tt.scoreToday, tt.scoreYesterday, tt.views7d, p)
			if got == nil {
				t.Fatal("Velocity() = nil, want value")
			}
			if *got != tt.want {
				t.Errorf("Velocity() = %d, want %d", *got, tt.want)
			}
		})
	}
}

func TestVelocity_Bounds(t *testing.T) {
	p := DefaultVelocityParams()

	// Sweep a grid of inputs; any non-nil result must stay in [-999, 999]
	for today := -1000.0; today <= 1000; today += 97 {
		for yesterday := 0.0; yesterday <= 500; yesterday += 41 {
			got := Velocity(today, yesterday, 100, p)
			if got == nil {
				continue
			}
			if *got < -999 || *got > 999 {
				t.Fatalf("Velocity(%f, %f) = %d, out of bounds", today, yesterday, *got)
			}
		}
	}
}
