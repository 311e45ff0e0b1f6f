package emotion

import (
	"reflect"
	"testing"
)

func TestCrisisGateScan(t *testing.T) {
	g := NewCrisisGate(DefaultCrisisPhrases)
	cases := []struct {
		text string
		want []string
	}{
		{"I want to die", []string{"want to die"}},
		{"I  WANT\tto   DIE and end it all", []string{"want to die", "end it all"}},
		{"Today was a good day", []string{}},
		{"", []string{}},
		{"\x00\xff garbage �", []string{}},
		{"thinking about suicide", []string{"suicide"}},
	}
	for _, tc := range cases {
		got := g.Scan(tc.text)
		if !reflect.DeepEqual(got, tc.want) {
			t.Fatalf("Scan(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestCrisisGateNilSafe(t *testing.T) {
	var g *CrisisGate
	if got := g.Scan("want to die"); len(got) != 0 {
		t.Fatalf("nil gate matched: %v", got)
	}
}

func TestCrisisGateDedupesPhrases(t *testing.T) {
	g := NewCrisisGate([]string{"End It All", "end it all", "  "})
	got := g.Scan("i could end it all")
	if len(got) != 1 || got[0] != "end it all" {
		t.Fatalf("unexpected: %v", got)
	}
}
