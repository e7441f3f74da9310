package nimsforestkiosk

import (
	"fmt"
	"sort"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Keys are the English strings; other locales are registered against them.
var portugueseStrings = map[string]string{
	"House":                                   "Casa",
	"Building":                                "Prédio",
	"Calling: %s":                             "Chamando: %s",
	"Loading %s%%...":                         "Carregando %s%%...",
	"ID: %s":                                  "ID: %s",
	"%s - Available":                          "%s - Disponível",
	"LOADING...":                              "CARREGANDO...",
	"CALL RESIDENT":                           "CHAMAR MORADOR",
	"CALL AGAIN":                              "CHAMAR NOVAMENTE",
	"TRY AGAIN":                               "TENTAR NOVAMENTE",
	"SENDING...":                              "ENVIANDO...",
	"CALL SENT!":                              "CHAMADA ENVIADA!",
	"CONNECTION ERROR":                        "ERRO DE CONEXÃO",
	"Call to %s sent successfully!":           "Chamada para %s enviada com sucesso!",
	"✅ Notification sent to the resident":     "✅ Notificação enviada para o morador",
	"🕒 Time: %s":                              "🕒 Horário: %s",
	"📱 They will receive an alert in the app": "📱 Ele receberá um alerta no aplicativo",
}

var supportedLocales = []language.Tag{language.English, language.BrazilianPortuguese}

func init() {
	keys := make([]string, 0, len(portugueseStrings))
	for key := range portugueseStrings {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		register(language.English, key, key)
		register(language.BrazilianPortuguese, key, portugueseStrings[key])
		register(language.Portuguese, key, portugueseStrings[key])
	}
}

func register(tag language.Tag, key, msg string) {
	if err := message.SetString(tag, key, msg); err != nil {
		panic(fmt.Sprintf("register %s message %q: %v", tag, key, err))
	}
}

// ParseLocale resolves a locale name to one of the supported locales.
func ParseLocale(locale string) (language.Tag, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return language.Und, fmt.Errorf("parse locale %q: %w", locale, err)
	}
	matcher := language.NewMatcher(supportedLocales)
	_, index, confidence := matcher.Match(tag)
	if confidence == language.No {
		return language.Und, fmt.Errorf("unsupported locale %q", locale)
	}
	return supportedLocales[index], nil
}

// localeOrDefault is ParseLocale falling back to English.
func localeOrDefault(locale string) language.Tag {
	tag, err := ParseLocale(locale)
	if err != nil {
		return language.English
	}
	return tag
}

// NewPrinter returns the message printer for a locale tag.
func NewPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag)
}
