// ABOUTME: Decoder for YouTube timedtext caption XML
// ABOUTME: Flattens caption cues into a single plain-text transcript
package youtube

import (
	"encoding/xml"
	"fmt"
	"html"
	"strings"
)

// timedtext matches the XML served by caption track base URLs:
// <transcript><text start="..." dur="...">cue</text>...</transcript>
type timedtext struct {
	XMLName xml.Name `xml:"transcript"`
	Cues    []struct {
		Value string `xml:",chardata"`
	} `xml:"text"`
}

// DecodeTimedtext converts caption XML into plain text. Cue line breaks
// become spaces; HTML entities in cue text are unescaped.
func DecodeTimedtext(data []byte) (string, error) {
	var tt timedtext
	if err := xml.Unmarshal(data, &tt); err != nil {
		return "", fmt.Errorf("decoding timedtext XML: %w", err)
	}

	var b strings.Builder
	for _, cue := range tt.Cues {
		text := strings.TrimSpace(html.UnescapeString(cue.Value))
		if text == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(strings.ReplaceAll(text, "\n", " "))
	}
	return b.String(), nil
}
