package signals

import (
	"bytes"
	"testing"
)

func TestExtractEXIFNeverFails(t *testing.T) {
	cases := []struct {
		name string
		data []byte
	}{
		{"empty input", nil},
		{"random bytes", []byte("definitely not an image")},
		{"png header without exif", []byte{0x89, 0x50, 0x4e, 0x47, 0x0d, 0x0a, 0x1a, 0x0a}},
		{"truncated jpeg marker", []byte{0xff, 0xd8, 0xff}},
		{"jpeg without app1 segment", bytes.Repeat([]byte{0xff, 0xd8, 0x00}, 10)},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			info := ExtractEXIF(tc.data)
			if info.HasEXIF {
				t.Fatalf("expected HasEXIF=false for %s", tc.name)
			}
			if info.Meta != nil {
				t.Fatalf("expected nil meta for %s, got %+v", tc.name, info.Meta)
			}
		})
	}
}
