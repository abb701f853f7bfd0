package srs

import "testing"

func TestDailyReviewCount(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name           string
		totalDue       int
		targetMinutes  int
		secondsPerCard int
		expected       int
	}{
		{
			name:           "Backlog smaller than time budget",
			totalDue:       10,
			targetMinutes:  30,
			secondsPerCard: 30,
			expected:       10,
		},
		{
			name:           "Time budget caps the backlog",
			totalDue:       100,
			targetMinutes:  30,
			secondsPerCard: 30,
			expected:       50, // time-derived count of 60 hits the hard ceiling
		},
		{
			name:           "Hard ceiling holds under a large budget",
			totalDue:       100,
			targetMinutes:  60,
			secondsPerCard: 30,
			expected:       50,
		},
		{
			name:           "Slow cards shrink the count",
			totalDue:       100,
			targetMinutes:  30,
			secondsPerCard: 60,
			expected:       30,
		},
		{
			name:           "Nothing due",
			totalDue:       0,
			targetMinutes:  30,
			secondsPerCard: 30,
			expected:       0,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := DailyReviewCount(tc.totalDue, tc.targetMinutes, tc.secondsPerCard)
			if got != tc.expected {
				t.Errorf("DailyReviewCount(%d, %d, %d) = %d, want %d",
					tc.totalDue, tc.targetMinutes, tc.secondsPerCard, got, tc.expected)
			}
		})
	}
}
