package util

import (
	"testing"
	"time"
)

func TestMonthStart(t *testing.T) {
	loc := time.FixedZone("UTC+7", 7*60*60)
	got := MonthStart(time.Date(2026, time.March, 31, 23, 59, 0, 0, loc))
	want := time.Date(2026, time.March, 1, 0, 0, 0, 0, loc)
	if !got.Equal(want) || got.Location() != loc {
		t.Errorf("MonthStart() = %v, want %v", got, want)
	}
}

func TestTrailingMonths(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want []string
	}{
		{"same year", time.Date(2026, time.June, 15, 0, 0, 0, 0, time.UTC), []string{"2026-01", "2026-02", "2026-03", "2026-04", "2026-05", "2026-06"}},
		{"year boundary", time.Date(2026, time.February, 10, 0, 0, 0, 0, time.UTC), []string{"2025-09", "2025-10", "2025-11", "2025-12", "2026-01", "2026-02"}},
		{"31st", time.Date(2026, time.July, 31, 0, 0, 0, 0, time.UTC), []string{"2026-02", "2026-03", "2026-04", "2026-05", "2026-06", "2026-07"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TrailingMonths(tt.now, 6)
			if len(got) != len(tt.want) {
				t.Fatalf("TrailingMonths() returned %d months, want %d", len(got), len(tt.want))
			}
			for i, m := range got {
				if m.Format("2006-01") != tt.want[i] {
					t.Errorf("month %d = %s, want %s", i, m.Format("2006-01"), tt.want[i])
				}
				if m.Day() != 1 {
					t.Errorf("month %d starts on day %d", i, m.Day())
				}
			}
		})
	}
}

func TestTrailingMonths_NonPositive(t *testing.T) {
	if got := TrailingMonths(time.Now(), 0); got != nil {
		t.Errorf("TrailingMonths(0) = %v, want nil", got)
	}
}
