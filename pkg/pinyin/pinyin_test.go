package pinyin

import "testing"

func TestNumberedToAccented(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"xue3", "xuě"},
		{"Zhong1", "Zhōng"},
		{"xiao3 hai2", "xiǎo hái"},
		{"de5", "de"},
		{"yi1 lai4", "yī lài"},
		{"que1 fa2", "quē fá"},
		{"jing4", "jìng"},
		{"qun2", "qún"},
		{"nv3", "nǚ"},
		{"lv4 se4", "lǜ sè"},
		{"hao3", "hǎo"},
		{"gou3", "gǒu"},
		{"", ""},
		{"abc", "abc"},
		{"ni3hao3", "ni3hǎo"}, // joined syllables: only the trailing digit is a tone
	}
	for _, c := range cases {
		if got := NumberedToAccented(c.in); got != c.want {
			t.Errorf("NumberedToAccented(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNeutralToneHasNoMark(t *testing.T) {
	if got := NumberedToAccented("ma5"); got != "ma" {
		t.Errorf("expected neutral tone to drop digit, got %q", got)
	}
	if got := NumberedToAccented("ma0"); got != "ma" {
		t.Errorf("expected tone 0 to drop digit, got %q", got)
	}
}
