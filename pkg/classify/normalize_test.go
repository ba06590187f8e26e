package classify

import (
	"reflect"
	"testing"
)

func TestFold(t *testing.T) {
	tests := []struct {
		input, want string
	}{
		{"Lax med dillsås", "lax med dillsas"},
		{"KÖTT", "kott"},
		{"Grönsaker", "gronsaker"},
		{"Vegetariskt:", "vegetariskt:"},
		{"", ""},
		{"pasta", "pasta"},
	}
	for _, tt := range tests {
		got := Fold(tt.input)
		if got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalizeLines(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "trims and drops empties",
			input: "  Biff med lök  \n\n\tFalafel\t\n",
			want:  []string{"Biff med lök", "Falafel"},
		},
		{
			name:  "crlf normalized",
			input: "Kött:\r\nBiff\r\n",
			want:  []string{"Kött:", "Biff"},
		},
		{
			name:  "lone cr normalized",
			input: "Lax\rTorsk",
			want:  []string{"Lax", "Torsk"},
		},
		{
			name:  "empty input",
			input: "",
			want:  nil,
		},
		{
			name:  "whitespace only",
			input: "  \n\t\n ",
			want:  nil,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeLines(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NormalizeLines(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalizeLinesPreservesSwedishLetters(t *testing.T) {
	got := NormalizeLines("Stekt strömming med potatismos\nÄrtsoppa")
	want := []string{"Stekt strömming med potatismos", "Ärtsoppa"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("NormalizeLines altered dish text: %v", got)
	}
}
