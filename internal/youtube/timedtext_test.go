// ABOUTME: Tests for timedtext caption XML decoding
// ABOUTME: Verifies cue joining, entity unescaping, and error handling
package youtube

import "testing"

func TestDecodeTimedtext(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name: "basic cues joined",
			input: `<?xml version="1.0" encoding="utf-8"?>
<transcript>
  <text start="0.0" dur="2.5">bună seara</text>
  <text start="2.5" dur="3.0">începem emisiunea</text>
</transcript>`,
			want: "bună seara începem emisiunea",
		},
		{
			name: "entities unescaped",
			input: `<transcript><text start="0" dur="1">n&#39;a spus &amp; a plecat</text></transcript>`,
			want: "n'a spus & a plecat",
		},
		{
			name: "cue line breaks flattened",
			input: "<transcript><text start=\"0\" dur=\"1\">prima linie\na doua linie</text></transcript>",
			want: "prima linie a doua linie",
		},
		{
			name:  "empty cues skipped",
			input: `<transcript><text start="0" dur="1">  </text><text start="1" dur="1">text</text></transcript>`,
			want:  "text",
		},
		{
			name:  "empty transcript",
			input: `<transcript></transcript>`,
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeTimedtext([]byte(tt.input))
			if err != nil {
				t.Fatalf("DecodeTimedtext() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("DecodeTimedtext() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodeTimedtext_InvalidXML(t *testing.T) {
	if _, err := DecodeTimedtext([]byte("not xml at all <")); err == nil {
		t.Error("Expected error for invalid XML")
	}
}
