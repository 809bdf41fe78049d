package repository

import (
	"reflect"
	"testing"
)

func TestSplitSkills(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want []string
	}{
		{"a, b, c", []string{"a", "b", "c"}},
		{"Go,SQL ,  Docker", []string{"Go", "SQL", "Docker"}},
		{"solo", []string{"solo"}},
		{" , ,", []string{}},
		{"", []string{}},
	}
	for _, tc := range cases {
		if got := SplitSkills(tc.in); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("SplitSkills(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
