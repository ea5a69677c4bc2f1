package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sync"

	"gopkg.in/yaml.v3"
)

const DefaultLocale = "en"

type Translations map[string]string

//go:embed locales
var embedded embed.FS

var (
	locales  = make(map[string]Translations)
	mu       sync.RWMutex
	loadOnce sync.Once
)

// LoadTranslations reads <locale>/messages.yaml for every locale directory in fsys.
func LoadTranslations(fsys fs.FS) error {
	mu.Lock()
	defer mu.Unlock()

	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		locale := entry.Name()
		filePath := path.Join(locale, "messages.yaml")

		data, err := fs.ReadFile(fsys, filePath)
		if err != nil {
			continue
		}

		var config struct {
			Messages Translations `yaml:"MESSAGES"`
		}
		if err := yaml.Unmarshal(data, &config); err != nil {
			return fmt.Errorf("failed to parse %s: %w", filePath, err)
		}

		locales[locale] = config.Messages
	}

	return nil
}

func ensureLoaded() {
	loadOnce.Do(func() {
		sub, err := fs.Sub(embedded, "locales")
		if err != nil {
			return
		}
		_ = LoadTranslations(sub)
	})
}

func Translate(locale, key string) string {
	ensureLoaded()

	mu.RLock()
	defer mu.RUnlock()

	if trans, ok := locales[locale]; ok {
		if val, ok := trans[key]; ok {
			return val
		}
	}

	if locale != DefaultLocale {
		if trans, ok := locales[DefaultLocale]; ok {
			if val, ok := trans[key]; ok {
				return val
			}
		}
	}

	return key
}

func Translatef(locale, key string, args ...any) string {
	return fmt.Sprintf(Translate(locale, key), args...)
}
