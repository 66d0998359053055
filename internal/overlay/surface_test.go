package overlay

import "testing"

func TestClampOptions(t *testing.T) {
	tests := []struct {
		name      string
		in        Options
		wantW     int
		wantH     int
		wantColor uint32
	}{
		{name: "valid passes through", in: Options{Width: 170, Height: 25, Color: 0x1a1a1a}, wantW: 170, wantH: 25, wantColor: 0x1a1a1a},
		{name: "zero size becomes 1x1", in: Options{}, wantW: 1, wantH: 1},
		{name: "negative size becomes 1x1", in: Options{Width: -5, Height: -5}, wantW: 1, wantH: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := clampOptions(tt.in)
			if got.Width != tt.wantW || got.Height != tt.wantH {
				t.Errorf("clampOptions size = %dx%d, want %dx%d", got.Width, got.Height, tt.wantW, tt.wantH)
			}
			if got.Color != tt.wantColor {
				t.Errorf("clampOptions color = %#x, want %#x", got.Color, tt.wantColor)
			}
		})
	}
}
