package translator_test

import (
	"os"
	"path/filepath"
	"testing"

	"tasktracker/pkg/translator"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/stretchr/testify/require"
)

func TestInitTranslator_LoadsMessages(t *testing.T) {
	dir := t.TempDir()

	content := []byte(`
taskNotFound = "Task not found"
hello = "Hello english"
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "en.toml"), content, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "README.md"), []byte("not a catalog"), 0o644))

	translator.InitTranslator(translator.Config{
		TranslationFolder:  dir,
		SupportedLanguages: []string{translator.LanguageEn, translator.LanguageFr},
	})

	localizer := i18n.NewLocalizer(translator.Translator, translator.LanguageEn)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: "hello"})
	require.NoError(t, err)
	require.Equal(t, "Hello english", msg)
}

func TestInitTranslator_ShippedCatalogs(t *testing.T) {
	translator.InitTranslator(translator.Config{
		TranslationFolder:  "translation",
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	localizer := i18n.NewLocalizer(translator.Translator, translator.LanguageFr)
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: "taskNotFound"})
	require.NoError(t, err)
	require.Equal(t, "Tâche introuvable", msg)
}

func TestInitTranslator_InvalidFolder(t *testing.T) {
	translator.InitTranslator(translator.Config{
		TranslationFolder:  "/path/does/not/exist",
		SupportedLanguages: []string{translator.LanguageEn},
	})
	require.NotNil(t, translator.Translator)
}

func TestMatchLanguage(t *testing.T) {
	translator.InitTranslator(translator.Config{
		TranslationFolder:  t.TempDir(),
		SupportedLanguages: []string{translator.LanguageFr, translator.LanguageEn},
	})

	require.Equal(t, translator.LanguageEn, translator.MatchLanguage(""))
	require.Equal(t, translator.LanguageFr, translator.MatchLanguage("fr-FR,fr;q=0.9,en;q=0.8"))
	require.Equal(t, translator.LanguageEn, translator.MatchLanguage("en-US"))
	require.Equal(t, translator.LanguageEn, translator.MatchLanguage("de-DE"))
	require.Equal(t, translator.LanguageEn, translator.MatchLanguage(";;;"))
}

func TestTranslatorConstants(t *testing.T) {
	require.Equal(t, "en", translator.LanguageEn)
	require.Equal(t, "fr", translator.LanguageFr)
}
