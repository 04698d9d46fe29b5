package validation

import "testing"

func TestParseCoordinates(t *testing.T) {
	tests := []struct {
		name    string
		lat     string
		lon     string
		wantErr bool
	}{
		{"valid", "40.4168", "-3.7038", false},
		{"boundary", "-90", "180", false},
		{"missing lat", "", "-3.7", true},
		{"missing lon", "40.4", "", true},
		{"not a number", "north", "-3.7", true},
		{"lat out of range", "91", "0", true},
		{"lon out of range", "0", "-181", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lat, lon, err := ParseCoordinates(tt.lat, tt.lon)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCoordinates(%q, %q) error = %v, wantErr %v", tt.lat, tt.lon, err, tt.wantErr)
			}
			if !tt.wantErr && tt.name == "valid" {
				if lat != 40.4168 || lon != -3.7038 {
					t.Errorf("parsed %v, %v", lat, lon)
				}
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	if _, err := ParseDate("2025-08-14"); err != nil {
		t.Errorf("ParseDate(valid) error = %v", err)
	}
	for _, bad := range []string{"", "14/08/2025", "2025-13-40", "tomorrow"} {
		if _, err := ParseDate(bad); err == nil {
			t.Errorf("ParseDate(%q) succeeded, want error", bad)
		}
	}
}
