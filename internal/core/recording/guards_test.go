package recording

import "testing"

func TestCanStartCapture(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		allowed bool
	}{
		{"rtsp url", "rtsp://admin:pw@10.0.0.5:554/stream1", true},
		{"empty url", "", false},
		{"whitespace url", "   ", false},
		{"http url", "http://10.0.0.5/stream", false},
		{"bare host", "10.0.0.5:554", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CanStartCapture(StreamContext{CameraID: "camA", StreamURL: tt.url})
			if result.Allowed != tt.allowed {
				t.Errorf("CanStartCapture(%q).Allowed = %v, want %v", tt.url, result.Allowed, tt.allowed)
			}
			if tt.allowed && result.Error() != nil {
				t.Errorf("expected nil error, got %v", result.Error())
			}
			if !tt.allowed && result.Error() == nil {
				t.Error("expected error for rejected URL")
			}
		})
	}
}
