package i18n

import (
	"encoding/json"
	"testing"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

func TestDebugLocalize(t *testing.T) {
	bundle := goi18n.NewBundle(language.BrazilianPortuguese)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)
	for _, name := range []string{"locales/active.pt.json", "locales/active.en.json"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, name); err != nil {
			t.Fatalf("load %s: %v", name, err)
		}
	}
	for _, langs := range [][]string{{"pt"}, {"pt-BR"}, {"pt-BR", "en"}, {"en"}} {
		loc := goi18n.NewLocalizer(bundle, langs...)
		msg, err := loc.Localize(&goi18n.LocalizeConfig{MessageID: "category.not_found"})
		t.Logf("langs=%v msg=%q err=%v", langs, msg, err)
	}
	t.Logf("bundle tags: %v", bundle.LanguageTags())
}
