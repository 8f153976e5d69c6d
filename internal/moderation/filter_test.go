package moderation

import "testing"

func TestFilterMatch(t *testing.T) {
	tests := []struct {
		name    string
		words   []string
		content string
		want    string
		wantHit bool
	}{
		{
			name:    "exact word",
			words:   []string{"ass"},
			content: "what an ass",
			want:    "ass",
			wantHit: true,
		},
		{
			name:    "word inside a longer word does not trip",
			words:   []string{"ass"},
			content: "I have a class today",
			wantHit: false,
		},
		{
			name:    "case insensitive",
			words:   []string{"ass"},
			content: "ASS",
			want:    "ass",
			wantHit: true,
		},
		{
			name:    "punctuation boundary",
			words:   []string{"ass"},
			content: "ass!",
			want:    "ass",
			wantHit: true,
		},
		{
			name:    "second word in the list",
			words:   []string{"foo", "bar"},
			content: "a bar walks into a man",
			want:    "bar",
			wantHit: true,
		},
		{
			name:    "empty list never matches",
			words:   nil,
			content: "anything at all",
			wantHit: false,
		},
		{
			name:    "blank entries ignored",
			words:   []string{"", "  "},
			content: "anything at all",
			wantHit: false,
		},
		{
			name:    "regex metacharacters are literal",
			words:   []string{"a+b"},
			content: "aab",
			wantHit: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, hit := NewFilter(tt.words).Match(tt.content)
			if hit != tt.wantHit {
				t.Fatalf("Match(%q) hit = %v, want %v", tt.content, hit, tt.wantHit)
			}
			if hit && got != tt.want {
				t.Errorf("Match(%q) = %q, want %q", tt.content, got, tt.want)
			}
		})
	}
}
