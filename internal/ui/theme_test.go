package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThemeByName(t *testing.T) {
	tests := []struct {
		name    string
		want    Theme
		wantErr bool
		mono    bool
	}{
		{name: "", want: DefaultTheme},
		{name: "default", want: DefaultTheme},
		{name: " Mono ", want: PlainTheme, mono: true},
		{name: "plain", want: PlainTheme, mono: true},
		{name: "pastel", want: DefaultTheme, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ThemeByName(tt.name)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownTheme)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.want.Border.Render("x"), got.Border.Render("x"))
			assert.Equal(t, tt.mono, Monochrome(tt.name))
		})
	}
}
