package geloses

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		ids       []string
		wantMedia []string
		wantNorms []string
	}{
		{
			name:      "entero and levures5j",
			ids:       []string{"entero", "levures5j"},
			wantMedia: []string{"VRBG", "YGC"},
			wantNorms: []string{"ISO 21527-1", "ISO 21528-2"},
		},
		{
			name:      "duplicate media collapse",
			ids:       []string{"levures3j", "levures5j"},
			wantMedia: []string{"YGC"},
			wantNorms: []string{"ISO 21527-1"},
		},
		{
			name:      "unknown ids are silently excluded",
			ids:       []string{"entero", "bacillus_inconnu"},
			wantMedia: []string{"VRBG"},
			wantNorms: []string{"ISO 21528-2"},
		},
		{
			name:      "empty selection",
			ids:       nil,
			wantMedia: []string{},
			wantNorms: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.ids)
			assert.Equal(t, tt.wantMedia, got.Media)
			assert.Equal(t, tt.wantNorms, got.ISONorms)
		})
	}
}

func TestKnown(t *testing.T) {
	assert.True(t, Known("entero"))
	assert.False(t, Known("bacillus_inconnu"))
}
