package main

import (
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

// User-facing CLI strings go through go-i18n so translations can be dropped
// in as TOML message files without rebuilding.
var localizer *i18n.Localizer

func initMessages(messagesDir string) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	if messagesDir != "" {
		entries, err := os.ReadDir(messagesDir)
		if err == nil {
			for _, entry := range entries {
				if strings.HasSuffix(entry.Name(), ".toml") {
					_, _ = bundle.LoadMessageFile(messagesDir + "/" + entry.Name())
				}
			}
		}
	}

	localizer = i18n.NewLocalizer(bundle, os.Getenv("LANG"))
}

func msg(id, fallback string, data map[string]any) string {
	return localizer.MustLocalize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{ID: id, Other: fallback},
		TemplateData:   data,
	})
}
