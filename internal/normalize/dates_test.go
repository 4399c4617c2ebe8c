package normalize

import "testing"

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"03/14/2024", "2024-03-14"},
		{"2024-03-14", "2024-03-14"},
		{"3/4/2024", "2024-03-04"},
		{"March 14, 2024", "2024-03-14"},
		{"2024/03/14", "2024-03-14"},
		{"not a date", ""},
		{"", ""},
		{"   ", ""},
	}
	for _, tt := range tests {
		if got := NormalizeDate(tt.in); got != tt.want {
			t.Errorf("NormalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseDateNil(t *testing.T) {
	if ParseDate("13/45/9999") != nil {
		t.Error("impossible date should return nil")
	}
	if got := ParseDate("2024-03-14"); got == nil || got.Year() != 2024 {
		t.Errorf("ParseDate(2024-03-14) = %v", got)
	}
}
