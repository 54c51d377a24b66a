package blocks

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

const (
	// Document-level bounds for the two leading header blocks. Title and
	// subtitle lengths are exclusive on both ends.
	titleLevel       = 3
	titleMinLen      = 5
	titleMaxLen      = 50
	subtitleLevel    = 5
	subtitleMinLen   = 10
	subtitleMaxLen   = 500
	subtitleShortLen = 250
)

// Summary carries the fields denormalized from a valid document: the title
// and subtitle from its two leading headers and the URL of its first image
// block, if any.
type Summary struct {
	Title    string
	Subtitle string
	ImageURL *string
}

// ValidateDocument checks every block structurally, enforces the document
// rule on the first two blocks, and derives the summary. The block sequence
// itself is returned to storage verbatim by the caller.
func ValidateDocument(blks []Block) (Summary, error) {
	if len(blks) < 2 {
		return Summary{}, fmt.Errorf("document requires at least 2 blocks")
	}

	for i, b := range blks {
		if err := b.Validate(); err != nil {
			return Summary{}, fmt.Errorf("block %d: %w", i, err)
		}
	}

	title := blks[0]
	if title.Type != TypeHeader || title.headerLevel() != titleLevel {
		return Summary{}, fmt.Errorf("first block must be a level %d header", titleLevel)
	}
	if n := title.headerTextLength(); n <= titleMinLen || n >= titleMaxLen {
		return Summary{}, fmt.Errorf("title length must be between %d and %d characters", titleMinLen, titleMaxLen)
	}

	subtitle := blks[1]
	if subtitle.Type != TypeHeader || subtitle.headerLevel() != subtitleLevel {
		return Summary{}, fmt.Errorf("second block must be a level %d header", subtitleLevel)
	}
	if n := subtitle.headerTextLength(); n <= subtitleMinLen || n >= subtitleMaxLen {
		return Summary{}, fmt.Errorf("subtitle length must be between %d and %d characters", subtitleMinLen, subtitleMaxLen)
	}

	return Summary{
		Title:    title.headerText(),
		Subtitle: Shorten(subtitle.headerText(), subtitleShortLen),
		ImageURL: CoverImageURL(blks),
	}, nil
}

// CoverImageURL returns the URL of the first image block in document order,
// or nil when the document has none.
func CoverImageURL(blks []Block) *string {
	for _, b := range blks {
		if b.Type != TypeImage {
			continue
		}
		if urls := b.imageURLs(); len(urls) > 0 {
			url := urls[0]
			return &url
		}
	}
	return nil
}

// ImageFileURLs collects every URL referenced by image blocks, for cleanup
// when a project is deleted.
func ImageFileURLs(blks []Block) []string {
	var urls []string
	for _, b := range blks {
		if b.Type == TypeImage {
			urls = append(urls, b.imageURLs()...)
		}
	}
	return urls
}

// Shorten truncates text to at most max visible characters, breaking only at
// word boundaries, and appends an ellipsis marker. Text within the limit is
// returned untouched.
func Shorten(text string, max int) string {
	if utf8.RuneCountInString(text) <= max {
		return text
	}

	var shorted strings.Builder
	length := 0
	for _, word := range strings.Fields(text) {
		wordLen := utf8.RuneCountInString(word)
		needed := wordLen
		if length > 0 {
			needed++ // joining space
		}
		if length+needed > max {
			break
		}
		if length > 0 {
			shorted.WriteByte(' ')
		}
		shorted.WriteString(word)
		length += needed
	}
	return shorted.String() + "..."
}
