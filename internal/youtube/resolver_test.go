package youtube

import "testing"

func TestLooksLikeVideoRef(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  bool
	}{
		{
			name:  "watch url",
			query: "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			want:  true,
		},
		{
			name:  "short url",
			query: "https://youtu.be/dQw4w9WgXcQ",
			want:  true,
		},
		{
			name:  "bare video id",
			query: "dQw4w9WgXcQ",
			want:  true,
		},
		{
			name:  "search phrase",
			query: "never gonna give you up",
			want:  false,
		},
		{
			name:  "eleven char phrase with space",
			query: "lofi beats!",
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := looksLikeVideoRef(tt.query); got != tt.want {
				t.Errorf("looksLikeVideoRef(%q) = %v, want %v", tt.query, got, tt.want)
			}
		})
	}
}

func TestVideoIDPatternFindsFirstResult(t *testing.T) {
	page := []byte(`{"contents":[{"videoRenderer":{"videoId":"abc123def45","title":{}}},` +
		`{"videoRenderer":{"videoId":"zzz999zzz99"}}]}`)

	match := videoIDPattern.FindSubmatch(page)
	if match == nil {
		t.Fatal("no video id found")
	}
	if got := string(match[1]); got != "abc123def45" {
		t.Errorf("first video id = %q, want abc123def45", got)
	}
}
