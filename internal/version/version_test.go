package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAbout(t *testing.T) {
	assert.Contains(t, About(), "Mapudungun → IPA")
	assert.Contains(t, About(), Version)
}

func TestGuideListsEveryVariantSymbol(t *testing.T) {
	for _, sym := range []string{"ɨ", "ə", "ɯ", "sadowsky", "ʐ", "ɻ", "ɣ", "ɰ", "ʧ", "ŧ"} {
		assert.Contains(t, Guide, sym)
	}
}
