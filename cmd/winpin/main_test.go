package main

import (
	"testing"

	"github.com/winpin/winpin/internal/ipc"
)

func TestStatusLine(t *testing.T) {
	tests := []struct {
		name   string
		status ipc.StatusData
		want   string
	}{
		{
			name: "visible and positioned",
			status: ipc.StatusData{
				TargetTitle:    "Status Board",
				TargetID:       0x3a,
				OverlayVisible: true,
				Positioned:     true,
				X:              -317,
				Y:              57,
				Ticks:          120,
				UptimeSeconds:  125,
			},
			want: `pinned to "Status Board" (window 0x3a), overlay visible at (-317, 57), 120 ticks, up 2m5s`,
		},
		{
			name: "hidden before first position",
			status: ipc.StatusData{
				TargetTitle:   "Status Board",
				TargetID:      0x3a,
				Ticks:         1,
				UptimeSeconds: 0,
			},
			want: `pinned to "Status Board" (window 0x3a), overlay hidden, 1 ticks, up 0s`,
		},
		{
			name: "hidden but still positioned",
			status: ipc.StatusData{
				TargetTitle:   "Status Board",
				TargetID:      0x3a,
				Positioned:    true,
				X:             83,
				Y:             57,
				Ticks:         3,
				UptimeSeconds: 1,
			},
			want: `pinned to "Status Board" (window 0x3a), overlay hidden at (83, 57), 3 ticks, up 1s`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := statusLine(&tt.status); got != tt.want {
				t.Errorf("statusLine = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatUptime(t *testing.T) {
	tests := []struct {
		seconds int64
		want    string
	}{
		{0, "0s"},
		{59, "59s"},
		{125, "2m5s"},
		{3725, "1h2m5s"},
	}

	for _, tt := range tests {
		if got := formatUptime(tt.seconds); got != tt.want {
			t.Errorf("formatUptime(%d) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
