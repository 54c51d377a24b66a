package blocks

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func header(level int, text string) Block {
	return Block{Type: TypeHeader, Data: map[string]any{"level": level, "text": text}}
}

func paragraph(text string) Block {
	return Block{Type: TypeParagraph, Data: map[string]any{"text": text}}
}

func image(url any) Block {
	return Block{Type: TypeImage, Data: map[string]any{"file": map[string]any{"url": url}}}
}

func validDocument() []Block {
	return []Block{
		header(3, "Solar kettle"),
		header(5, "A kettle that boils water with sunlight alone"),
		paragraph("Long project description goes here."),
	}
}

func TestValidateDocument(t *testing.T) {
	summary, err := ValidateDocument(validDocument())
	require.NoError(t, err)

	assert.Equal(t, "Solar kettle", summary.Title)
	assert.Equal(t, "A kettle that boils water with sunlight alone", summary.Subtitle)
	assert.Nil(t, summary.ImageURL)
}

func TestValidateDocumentTooFewBlocks(t *testing.T) {
	_, err := ValidateDocument([]Block{header(3, "Solar kettle")})
	assert.ErrorContains(t, err, "at least 2 blocks")
}

func TestValidateDocumentFirstBlockWrongLevel(t *testing.T) {
	doc := validDocument()
	doc[0] = header(4, "Solar kettle")

	_, err := ValidateDocument(doc)
	assert.ErrorContains(t, err, "level 3 header")
}

func TestValidateDocumentFirstBlockNotHeader(t *testing.T) {
	doc := validDocument()
	doc[0] = paragraph("Solar kettle")

	_, err := ValidateDocument(doc)
	assert.ErrorContains(t, err, "level 3 header")
}

func TestValidateDocumentTitleBounds(t *testing.T) {
	// Bounds are exclusive: exactly 5 and exactly 50 runes both fail.
	doc := validDocument()
	doc[0] = header(3, "12345")
	_, err := ValidateDocument(doc)
	assert.ErrorContains(t, err, "title length")

	doc[0] = header(3, strings.Repeat("x", 50))
	_, err = ValidateDocument(doc)
	assert.ErrorContains(t, err, "title length")

	doc[0] = header(3, "123456")
	_, err = ValidateDocument(doc)
	assert.NoError(t, err)

	doc[0] = header(3, strings.Repeat("x", 49))
	_, err = ValidateDocument(doc)
	assert.NoError(t, err)
}

func TestValidateDocumentSubtitleBounds(t *testing.T) {
	doc := validDocument()
	doc[1] = header(5, strings.Repeat("y", 10))
	_, err := ValidateDocument(doc)
	assert.ErrorContains(t, err, "subtitle length")

	doc[1] = header(5, strings.Repeat("y", 500))
	_, err = ValidateDocument(doc)
	assert.ErrorContains(t, err, "subtitle length")

	doc[1] = header(5, strings.Repeat("y", 11))
	_, err = ValidateDocument(doc)
	assert.NoError(t, err)
}

func TestValidateDocumentSecondBlockWrongLevel(t *testing.T) {
	doc := validDocument()
	doc[1] = header(4, "A kettle that boils water with sunlight alone")

	_, err := ValidateDocument(doc)
	assert.ErrorContains(t, err, "level 5 header")
}

func TestValidateDocumentLongSubtitleShortened(t *testing.T) {
	subtitle := strings.TrimSpace(strings.Repeat("sunlight ", 40)) // 359 runes
	doc := validDocument()
	doc[1] = header(5, subtitle)

	summary, err := ValidateDocument(doc)
	require.NoError(t, err)

	assert.LessOrEqual(t, len([]rune(strings.TrimSuffix(summary.Subtitle, "..."))), 250)
	assert.True(t, strings.HasSuffix(summary.Subtitle, "..."))
	// Word boundary: no partially cut word before the marker.
	trimmed := strings.TrimSuffix(summary.Subtitle, "...")
	assert.Equal(t, strings.TrimSpace(trimmed), trimmed)
	for _, word := range strings.Fields(trimmed) {
		assert.Equal(t, "sunlight", word)
	}
}

func TestValidateDocumentTitleLengthCountsRunes(t *testing.T) {
	doc := validDocument()
	doc[0] = header(3, "Чайник") // 6 runes, 12 bytes

	_, err := ValidateDocument(doc)
	assert.NoError(t, err)
}

func TestValidateDocumentRejectsInvalidBlock(t *testing.T) {
	doc := append(validDocument(), Block{Type: "video", Data: map[string]any{}})

	_, err := ValidateDocument(doc)
	assert.ErrorContains(t, err, "unknown block type")
}

func TestValidateDocumentDerivesFirstImage(t *testing.T) {
	doc := append(validDocument(),
		image("https://cdn.example.org/first.png"),
		image("https://cdn.example.org/second.png"),
	)

	summary, err := ValidateDocument(doc)
	require.NoError(t, err)
	require.NotNil(t, summary.ImageURL)
	assert.Equal(t, "https://cdn.example.org/first.png", *summary.ImageURL)
}

func TestBlockValidateHeader(t *testing.T) {
	assert.Error(t, header(0, "text").Validate())
	assert.Error(t, header(7, "text").Validate())
	assert.Error(t, header(2, "").Validate())
	assert.NoError(t, header(1, "text").Validate())
	assert.NoError(t, header(6, "text").Validate())
}

func TestBlockValidateHeaderFloatLevel(t *testing.T) {
	// Levels decode as float64 from JSON.
	b := Block{Type: TypeHeader, Data: map[string]any{"level": float64(3), "text": "hi"}}
	assert.NoError(t, b.Validate())
}

func TestBlockValidateEmbed(t *testing.T) {
	ok := Block{Type: TypeEmbed, Data: map[string]any{"service": "youtube"}}
	assert.NoError(t, ok.Validate())

	ok.Data["service"] = "coub"
	assert.NoError(t, ok.Validate())

	bad := Block{Type: TypeEmbed, Data: map[string]any{"service": "vimeo"}}
	assert.ErrorContains(t, bad.Validate(), "unsupported embed service")

	missing := Block{Type: TypeEmbed, Data: map[string]any{}}
	assert.Error(t, missing.Validate())
}

func TestBlockValidateImage(t *testing.T) {
	assert.NoError(t, image("https://cdn.example.org/pic.png").Validate())
	assert.NoError(t, image([]any{"https://cdn.example.org/pic.png"}).Validate())

	assert.Error(t, image("").Validate())
	assert.Error(t, Block{Type: TypeImage, Data: map[string]any{}}.Validate())
	// List form requires an absolute first URL.
	assert.ErrorContains(t, image([]any{"relative/pic.png"}).Validate(), "absolute")
}

func TestBlockValidateFreeformTypes(t *testing.T) {
	for _, bt := range []BlockType{TypeParagraph, TypeList, TypeCode, TypeInlineCode, TypeTable} {
		b := Block{Type: bt, Data: map[string]any{}}
		assert.NoError(t, b.Validate(), "type %s", bt)
	}
}

func TestImageFileURLs(t *testing.T) {
	doc := append(validDocument(),
		image("https://cdn.example.org/a.png"),
		image([]any{"https://cdn.example.org/b.png", "https://cdn.example.org/c.png"}),
	)

	urls := ImageFileURLs(doc)
	assert.Equal(t, []string{
		"https://cdn.example.org/a.png",
		"https://cdn.example.org/b.png",
		"https://cdn.example.org/c.png",
	}, urls)
}

func TestShorten(t *testing.T) {
	assert.Equal(t, "short text", Shorten("short text", 250))

	got := Shorten("alpha beta gamma delta", 11)
	assert.Equal(t, "alpha beta...", got)

	// Exactly at the limit stays untouched.
	assert.Equal(t, "alpha beta", Shorten("alpha beta", 10))
}
