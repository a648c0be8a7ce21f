package ui

import "testing"

func TestTranslationsComplete(t *testing.T) {
	l := NewLocalization()

	for lang := range l.GetAvailableLanguages() {
		texts, ok := l.texts[lang]
		if !ok {
			t.Errorf("Language %s has no texts", lang)
			continue
		}
		for key := range l.texts["en"] {
			if texts[key] == "" {
				t.Errorf("Language %s is missing %s", lang, key)
			}
		}
	}
}

func TestSetLanguage(t *testing.T) {
	l := NewLocalization()

	l.SetLanguage("ru")
	if l.GetCurrentLanguage() != "ru" {
		t.Errorf("Expected ru, got %s", l.GetCurrentLanguage())
	}

	l.SetLanguage("xx")
	if l.GetCurrentLanguage() != "ru" {
		t.Error("Unknown languages should be ignored")
	}

	l.SetLanguage("system")
	if l.GetCurrentLanguage() != "en" {
		t.Errorf("System language should map to en, got %s", l.GetCurrentLanguage())
	}
}

func TestGetTextFallback(t *testing.T) {
	l := NewLocalization()
	l.texts["en"]["only_en"] = "English only"

	l.SetLanguage("pt")
	if got := l.GetText("only_en"); got != "English only" {
		t.Errorf("Expected English fallback, got %q", got)
	}
	if got := l.GetText("no_such_key"); got != "no_such_key" {
		t.Errorf("Unknown keys should return the key, got %q", got)
	}
}
