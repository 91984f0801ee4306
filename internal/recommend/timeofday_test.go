package recommend

import (
	"errors"
	"testing"
)

func TestTimeOfDayFromHour(t *testing.T) {
	cases := []struct {
		hour int
		want TimeOfDay
	}{
		{4, Night},
		{5, Morning},
		{11, Morning},
		{12, Afternoon},
		{16, Afternoon},
		{17, Evening},
		{20, Evening},
		{21, Night},
		{0, Night},
		{23, Night},
	}

	for _, tc := range cases {
		if got := TimeOfDayFromHour(tc.hour); got != tc.want {
			t.Errorf("TimeOfDayFromHour(%d) = %s, want %s", tc.hour, got, tc.want)
		}
	}
}

func TestParseTimeOfDay(t *testing.T) {
	if _, err := ParseTimeOfDay("morning"); err != nil {
		t.Fatalf("unexpected error for valid bucket: %v", err)
	}

	_, err := ParseTimeOfDay("midnight")
	if err == nil {
		t.Fatal("expected error for unknown bucket")
	}
	if !errors.Is(err, ErrInvalidRequest) {
		t.Fatalf("expected ErrInvalidRequest, got %v", err)
	}
}
