package keys

import "testing"

// The key shapes are a wire contract shared with the published caches; a
// rename here silently orphans live counters, so the exact strings are pinned.
func TestKeyShapes(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"views 24h", Views24h("pdf-tools"), "skill:pdf-tools:views:24h"},
		{"clicks 24h", Clicks24h("pdf-tools"), "skill:pdf-tools:clicks:24h"},
		{"views 7d", Views7d("pdf-tools"), "skill:pdf-tools:views:7d"},
		{"clicks 7d", Clicks7d("pdf-tools"), "skill:pdf-tools:clicks:7d"},
		{"helpful votes", VoteHelpful("pdf-tools"), "skill:vote:helpful:pdf-tools"},
		{"not helpful votes", VoteNotHelpful("pdf-tools"), "skill:vote:not_helpful:pdf-tools"},
		{"score series", ScoreSeries("pdf-tools"), "skill:pdf-tools:score"},
		{"view series", ViewSeries("pdf-tools"), "skill:pdf-tools:views"},
		{"first seen", FirstSeenAt("pdf-tools"), "skill:pdf-tools:first_seen_at"},
		{"trend summary", TrendSummary("pdf-tools"), "skill:pdf-tools:trend"},
		{"rate limit", RateLimit("vote", "10.0.0.1"), "ratelimit:vote:10.0.0.1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("key = %q, want %q", tt.got, tt.want)
			}
		})
	}
}

func TestListKeyVersions(t *testing.T) {
	if TrendingList != "skills:trending:v1" {
		t.Errorf("trending list key = %q", TrendingList)
	}
	if FeaturedList != "skills:featured:v4" {
		t.Errorf("featured list key = %q", FeaturedList)
	}
	if TrendingLastGood != "skills:trending:last_good" {
		t.Errorf("last good key = %q", TrendingLastGood)
	}
}
