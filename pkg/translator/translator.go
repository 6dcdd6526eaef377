package translator

import (
	"os"
	"path/filepath"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"go.uber.org/zap"
	"golang.org/x/text/language"
)

var Translator *i18n.Bundle

type Config struct {
	TranslationFolder  string
	SupportedLanguages []string // List of supported languages
}

const (
	LanguageFr = "fr"
	LanguageEn = "en"
)

var (
	supported = []string{LanguageEn}
	matcher   = language.NewMatcher([]language.Tag{language.English})
)

func InitTranslator(cfg Config) {
	Translator = i18n.NewBundle(language.English)
	Translator.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	setSupportedLanguages(cfg.SupportedLanguages)

	lstFiles, err := os.ReadDir(cfg.TranslationFolder)
	if err != nil {
		zap.L().Error("failed to list translation folder", zap.String("folder", cfg.TranslationFolder), zap.Error(err))
		return
	}

	for _, f := range lstFiles {
		if f.IsDir() || filepath.Ext(f.Name()) != ".toml" {
			continue
		}

		_, err := Translator.LoadMessageFile(filepath.Join(cfg.TranslationFolder, f.Name()))
		if err != nil {
			zap.L().Warn("failed to load translation file", zap.String("file", f.Name()), zap.Error(err))
		}
	}
}

// MatchLanguage picks the supported language closest to an Accept-Language
// header value, falling back to English.
func MatchLanguage(acceptLanguage string) string {
	if acceptLanguage == "" {
		return LanguageEn
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return LanguageEn
	}

	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return LanguageEn
	}
	return supported[index]
}

func setSupportedLanguages(languages []string) {
	names := []string{LanguageEn}
	tags := []language.Tag{language.English}

	for _, lang := range languages {
		tag, err := language.Parse(lang)
		if err != nil {
			zap.L().Warn("ignoring unsupported language", zap.String("language", lang), zap.Error(err))
			continue
		}
		if tag == language.English {
			continue
		}
		names = append(names, lang)
		tags = append(tags, tag)
	}

	supported = names
	matcher = language.NewMatcher(tags)
}
