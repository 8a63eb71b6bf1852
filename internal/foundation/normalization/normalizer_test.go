package normalization

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type shade string

const (
	shadeLight shade = "light"
	shadeDark  shade = "dark"
)

func newShades() *Normalizer[shade] {
	return NewNormalizer(map[string]shade{
		"light": shadeLight,
		"Dark":  shadeDark,
		"night": shadeDark,
	}, shadeLight)
}

func TestNormalize(t *testing.T) {
	n := newShades()
	tests := []struct {
		in   string
		want shade
	}{
		{"light", shadeLight},
		{"DARK", shadeDark},
		{"  night ", shadeDark},
		{"dusk", shadeLight},
		{"", shadeLight},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			require.Equal(t, tt.want, n.Normalize(tt.in))
		})
	}
}

func TestParse(t *testing.T) {
	n := newShades()

	v, err := n.Parse(" Night")
	require.NoError(t, err)
	require.Equal(t, shadeDark, v)

	v, err = n.Parse("")
	require.NoError(t, err)
	require.Equal(t, shadeLight, v)

	_, err = n.Parse("dusk")
	require.EqualError(t, err, `invalid value "dusk", valid options: dark, light, night`)
}

func TestValidKeysIsACopy(t *testing.T) {
	n := newShades()
	keys := n.ValidKeys()
	require.Equal(t, []string{"dark", "light", "night"}, keys)
	keys[0] = "changed"
	require.Equal(t, []string{"dark", "light", "night"}, n.ValidKeys())
}
