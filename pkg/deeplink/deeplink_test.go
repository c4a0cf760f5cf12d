package deeplink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuild(t *testing.T) {
	tests := []struct {
		name    string
		bot     string
		app     string
		payload any
		want    string
	}{
		{
			name:    "default bot",
			payload: StartParams{ID: "b1"},
			want:    "https://t.me/CryptoSplitBot?startapp=eyJpZCI6ImIxIn0",
		},
		{
			name:    "with app name",
			bot:     "SplitBot",
			app:     "pay",
			payload: StartParams{ID: "b1"},
			want:    "https://t.me/SplitBot/pay?startapp=eyJpZCI6ImIxIn0",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Build(tt.bot, tt.app, tt.payload)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParse(t *testing.T) {
	link, err := Build("", "", StartParams{ID: "bill/ünïcode?", Tab: "history"})
	require.NoError(t, err)
	assert.NotContains(t, link[len("https://t.me/CryptoSplitBot?startapp="):], "=")

	sp, err := Parse(link)
	require.NoError(t, err)
	assert.Equal(t, StartParams{ID: "bill/ünïcode?", Tab: "history"}, sp)

	_, err = Parse("https://t.me/CryptoSplitBot")
	assert.ErrorIs(t, err, ErrNoStartParam)

	_, err = Parse("https://t.me/CryptoSplitBot?startapp=***")
	assert.Error(t, err)
}
