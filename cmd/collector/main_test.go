package main

import (
	"testing"
	"time"
)

func TestNextRun(t *testing.T) {
	tokyo, err := time.LoadLocation("Asia/Tokyo")
	if err != nil {
		t.Fatalf("LoadLocation: %v", err)
	}

	tests := []struct {
		name     string
		now      time.Time
		hour     int
		expected time.Time
	}{
		{
			name:     "Before schedule hour runs today",
			now:      time.Date(2024, 5, 1, 5, 30, 0, 0, tokyo),
			hour:     7,
			expected: time.Date(2024, 5, 1, 7, 0, 0, 0, tokyo),
		},
		{
			name:     "After schedule hour runs tomorrow",
			now:      time.Date(2024, 5, 1, 8, 0, 0, 0, tokyo),
			hour:     7,
			expected: time.Date(2024, 5, 2, 7, 0, 0, 0, tokyo),
		},
		{
			name:     "Exactly on the hour runs tomorrow",
			now:      time.Date(2024, 5, 1, 7, 0, 0, 0, tokyo),
			hour:     7,
			expected: time.Date(2024, 5, 2, 7, 0, 0, 0, tokyo),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := nextRun(tt.now, tt.hour, tokyo)
			if !got.Equal(tt.expected) {
				t.Errorf("nextRun = %v, expected %v", got, tt.expected)
			}
		})
	}
}
