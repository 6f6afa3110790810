package i18n

import (
	"embed"
	"encoding/json"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

var localizer *goi18n.Localizer

// Init builds the message bundle from the embedded locale files.
// Portuguese is the default language (end-user messages are pt-BR),
// English is the fallback for operators.
func Init() error {
	bundle := goi18n.NewBundle(language.BrazilianPortuguese)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	for _, name := range []string{"locales/active.pt.json", "locales/active.en.json"} {
		if _, err := bundle.LoadMessageFileFS(localeFS, name); err != nil {
			return err
		}
	}

	localizer = goi18n.NewLocalizer(bundle, "pt-BR", "en")
	return nil
}

// T resolves a message by id. Missing ids return the id itself so a
// forgotten translation never blanks a response.
func T(messageID string) string {
	return TData(messageID, nil)
}

// TData resolves a templated message ({{.Count}} etc).
func TData(messageID string, data map[string]any) string {
	if localizer == nil {
		return messageID
	}
	msg, err := localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    messageID,
		TemplateData: data,
	})
	if err != nil {
		return messageID
	}
	return msg
}
