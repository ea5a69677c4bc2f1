package invite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDescribe(t *testing.T) {
	now := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)

	t.Run("Never", func(t *testing.T) {
		st := Describe(nil, now, "en")
		assert.True(t, st.Never)
		assert.False(t, st.Expired)
		assert.Equal(t, "Never expires", st.Text)
		assert.NotContains(t, st.Text, "Expires in")
		assert.Zero(t, st.Remaining)
	})

	t.Run("Expired", func(t *testing.T) {
		past := now.Add(-time.Minute)
		st := Describe(&past, now, "en")
		assert.True(t, st.Expired)
		assert.Equal(t, "Expired", st.Text)
	})

	t.Run("Active", func(t *testing.T) {
		future := now.Add(30 * time.Minute)
		st := Describe(&future, now, "en")
		assert.False(t, st.Expired)
		assert.Equal(t, 30*time.Minute, st.Remaining)
		assert.Equal(t, "Expires in 30m 0s", st.Text)
	})

	t.Run("Localized", func(t *testing.T) {
		st := Describe(nil, now, "id")
		assert.Equal(t, "Tidak pernah kedaluwarsa", st.Text)
	})
}

func TestFormatRemaining(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{45 * time.Second, "45s"},
		{5*time.Minute + 3*time.Second, "5m 3s"},
		{3*time.Hour + 20*time.Minute, "3h 20m"},
		{26 * time.Hour, "1d 2h"},
		{59*time.Second + 600*time.Millisecond, "1m 0s"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatRemaining(tc.d), tc.d.String())
	}
}
