package i18n

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTranslate(t *testing.T) {
	assert.Equal(t, "Today", Translate("en", "TODAY"))
	assert.Equal(t, "Hari ini", Translate("id", "TODAY"))
	assert.Equal(t, "Never expires", Translate("en", "NEVER_EXPIRES"))

	// unknown locale falls back to english
	assert.Equal(t, "Yesterday", Translate("fr", "YESTERDAY"))

	assert.Equal(t, "NON_EXISTENT_KEY", Translate("en", "NON_EXISTENT_KEY"))
}

func TestTranslatef(t *testing.T) {
	assert.Equal(t, "Expires in 5m", Translatef("en", "EXPIRES_IN", "5m"))
}

func TestLoadTranslations(t *testing.T) {
	fsys := fstest.MapFS{
		"xx/messages.yaml": {Data: []byte("MESSAGES:\n  TODAY: \"Tday\"\n")},
		"README.md":        {Data: []byte("ignored")},
	}

	require.NoError(t, LoadTranslations(fsys))
	assert.Equal(t, "Tday", Translate("xx", "TODAY"))
	assert.Equal(t, "Yesterday", Translate("xx", "YESTERDAY"))
}

func TestLoadTranslationsBadYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"zz/messages.yaml": {Data: []byte("MESSAGES: [unclosed")},
	}

	assert.Error(t, LoadTranslations(fsys))
}
