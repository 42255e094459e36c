package rerank

import (
	"reflect"
	"testing"
)

func TestTokenize_LowercasesAndSplits(t *testing.T) {
	stop := newStopwordSet(nil)
	got := tokenize("Machine-Learning, BASICS!!", 2, stop)
	want := []string{"machine", "learning", "basics"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTokenize_StripsDiacritics(t *testing.T) {
	stop := newStopwordSet(nil)
	got := tokenize("Résumé naïve Café", 2, stop)
	want := []string{"resume", "naive", "cafe"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTokenize_DropsShortTokens(t *testing.T) {
	stop := newStopwordSet(nil)
	got := tokenize("go is fun xy z", 3, stop)
	want := []string{"fun"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTokenize_DropsStopwordsAcrossLanguages(t *testing.T) {
	stop := newStopwordSet(nil)
	for _, tc := range []struct {
		text string
		want []string
	}{
		{"the quick brown fox", []string{"quick", "brown", "fox"}},
		{"der schnelle Fuchs", []string{"schnelle", "fuchs"}},
		{"что такое поиск", []string{"такое", "поиск"}},
	} {
		got := tokenize(tc.text, 2, stop)
		if !reflect.DeepEqual(got, tc.want) {
			t.Errorf("tokenize(%q) = %v, want %v", tc.text, got, tc.want)
		}
	}
}

func TestTokenize_CustomStopwords(t *testing.T) {
	stop := newStopwordSet([]string{"foo", "bar"})
	got := tokenize("foo baz bar qux", 2, stop)
	want := []string{"baz", "qux"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTokenize_EmptyInput(t *testing.T) {
	stop := newStopwordSet(nil)
	for _, text := range []string{"", "   ", "\t\n"} {
		if got := tokenize(text, 2, stop); len(got) != 0 {
			t.Errorf("tokenize(%q) = %v, want empty", text, got)
		}
	}
}

func TestTokenize_KeepsNumbers(t *testing.T) {
	stop := newStopwordSet(nil)
	got := tokenize("version 42 released 2026", 2, stop)
	want := []string{"version", "42", "released", "2026"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTokenize_Deterministic(t *testing.T) {
	stop := newStopwordSet(nil)
	text := "Schrödinger's cat naïvely searched: résumé, 42 times!"
	first := tokenize(text, 2, stop)
	for i := 0; i < 5; i++ {
		if got := tokenize(text, 2, stop); !reflect.DeepEqual(got, first) {
			t.Fatalf("run %d: got %v, want %v", i, got, first)
		}
	}
}
