// Package i18n looks up the user-facing messages of the CLI in the embedded catalogue.
package i18n

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	goLocale "github.com/jeandeaual/go-locale"
	i18nLib "github.com/kaptinlin/go-i18n"
	"golang.org/x/text/language"
)

// TestModeEnv makes T return the key and its arguments instead of the catalogue text.
const TestModeEnv = "TK_TEST"

const defaultLocale = "en-GB"

type LocaleProvider interface {
	GetLocales() ([]string, error)
}

type systemLocales struct{}

func (systemLocales) GetLocales() ([]string, error) {
	return goLocale.GetLocales()
}

//go:embed lang/*.json
var catalogue embed.FS

var (
	catalogueFS    = catalogue
	catalogueDir   = "lang"
	localeProvider LocaleProvider = systemLocales{}

	setupOnce sync.Once
	// lookupMu serialises Localizer.Get, whose message cache is not safe for concurrent use.
	lookupMu  sync.Mutex
	bundle    *i18nLib.I18n
	localizer *i18nLib.Localizer
)

type TData map[string]interface{}

type Tvars struct {
	Count int
	Data  *TData
}

// ResetForTesting drops the loaded catalogue so the next T call reads it again.
func ResetForTesting() {
	lookupMu.Lock()
	bundle = nil
	localizer = nil
	lookupMu.Unlock()
	setupOnce = sync.Once{}
}

// T returns the message for key in the user's locale, falling back to en-GB and then to
// the key itself. At most one Tvars may be given.
func T(key string, args ...Tvars) string {
	if len(args) > 1 {
		panic("Too many arguments")
	}
	if _, testMode := os.LookupEnv(TestModeEnv); testMode {
		return describe(key, args...)
	}

	setupOnce.Do(load)

	var vars i18nLib.Vars
	if len(args) == 1 {
		vars = i18nLib.Vars{"count": args[0].Count}
		if args[0].Data != nil {
			for name, value := range *args[0].Data {
				vars[name] = value
			}
		}
	}

	lookupMu.Lock()
	defer lookupMu.Unlock()

	if vars == nil {
		return localizer.Get(key)
	}
	return localizer.Get(key, vars)
}

func load() {
	entries, err := catalogueFS.ReadDir(catalogueDir)
	if err != nil {
		panic(err)
	}

	available := []string{defaultLocale}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		locale := strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name()))
		if strings.EqualFold(locale, defaultLocale) {
			continue
		}
		available = append(available, locale)
	}

	loaded := i18nLib.NewBundle(
		i18nLib.WithDefaultLocale(defaultLocale),
		i18nLib.WithLocales(available...),
	)
	if err := loaded.LoadFS(catalogueFS, fmt.Sprintf("%s/*.json", catalogueDir)); err != nil {
		panic(err)
	}

	lookupMu.Lock()
	bundle = loaded
	localizer = loaded.NewLocalizer(candidateLocales(userLocales())...)
	lookupMu.Unlock()
}

// userLocales prefers $LANG and then asks the operating system.
func userLocales() []string {
	if lang, ok := os.LookupEnv("LANG"); ok {
		return []string{lang}
	}

	detected, err := localeProvider.GetLocales()
	if err != nil {
		return []string{language.English.String()}
	}

	locales := make([]string, 0, len(detected))
	for _, locale := range detected {
		if locale != "" {
			locales = append(locales, locale)
		}
	}
	return locales
}

// candidateLocales canonicalises raw locale names and adds each base language after its
// regional form, without duplicates.
func candidateLocales(raw []string) []string {
	out := make([]string, 0, len(raw)*2)
	seen := make(map[string]struct{}, len(raw)*2)
	add := func(locale string) {
		if _, ok := seen[locale]; ok {
			return
		}
		seen[locale] = struct{}{}
		out = append(out, locale)
	}

	for _, name := range raw {
		if name == "" {
			continue
		}
		// POSIX names such as en_GB.UTF-8 carry an encoding suffix.
		name, _, _ = strings.Cut(name, ".")
		tag, err := language.Parse(strings.ReplaceAll(name, "_", "-"))
		if err != nil {
			continue
		}
		add(tag.String())
		if base, _ := tag.Base(); base.String() != "" {
			add(base.String())
		}
	}
	return out
}

func describe(key string, args ...Tvars) string {
	var sb strings.Builder
	sb.WriteString(key)
	for i, arg := range args {
		fmt.Fprintf(&sb, ", Arg %d: {Count: %d, Data: %v}", i+1, arg.Count, arg.Data)
	}
	return sb.String()
}
