package models

import "testing"

func TestLevelsEqual(t *testing.T) {
	tests := []struct {
		name string
		a    []int
		b    []int
		want bool
	}{
		{"both empty", nil, nil, true},
		{"empty vs nil", []int{}, nil, true},
		{"identical", []int{10, 20, 30}, []int{10, 20, 30}, true},
		{"different value", []int{10, 20, 30}, []int{10, 21, 30}, false},
		{"different order", []int{10, 20}, []int{20, 10}, false},
		{"prefix is not equal", []int{10, 20}, []int{10, 20, 30}, false},
		{"longer first", []int{10, 20, 30}, []int{10, 20}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LevelsEqual(tt.a, tt.b); got != tt.want {
				t.Errorf("LevelsEqual(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestHasWindowPosition(t *testing.T) {
	tests := []struct {
		name  string
		prefs *Preferences
		want  bool
	}{
		{"nil prefs", nil, false},
		{"no position", &Preferences{}, false},
		{"one coordinate", &Preferences{WindowPosition: []int{10}}, false},
		{"full position", &Preferences{WindowPosition: []int{10, 20}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.prefs.HasWindowPosition(); got != tt.want {
				t.Errorf("HasWindowPosition() = %v, want %v", got, tt.want)
			}
		})
	}
}
