package blocks

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// BlockType enumerates the closed set of supported editor block kinds.
type BlockType string

const (
	TypeHeader     BlockType = "header"
	TypeParagraph  BlockType = "paragraph"
	TypeList       BlockType = "list"
	TypeCode       BlockType = "code"
	TypeInlineCode BlockType = "inlineCode"
	TypeTable      BlockType = "table"
	TypeEmbed      BlockType = "embed"
	TypeImage      BlockType = "image"
)

var embedServices = map[string]struct{}{
	"youtube": {},
	"coub":    {},
}

// Block is one typed unit of document content. Data stays loosely typed so
// unknown editor fields round-trip untouched; the structural rules below are
// enforced per type on validation.
type Block struct {
	Type BlockType      `json:"type"`
	Data map[string]any `json:"data"`
}

// Validate enforces the block-level structural rules for b's type. Unknown
// types are rejected; paragraph, list, code, inlineCode and table blocks
// carry no structural constraints.
func (b Block) Validate() error {
	switch b.Type {
	case TypeHeader:
		if b.headerText() == "" {
			return fmt.Errorf("header block requires text")
		}
		if level := b.headerLevel(); level < 1 || level > 6 {
			return fmt.Errorf("header level out of range")
		}
	case TypeEmbed:
		service, _ := b.Data["service"].(string)
		if _, ok := embedServices[service]; !ok {
			return fmt.Errorf("unsupported embed service")
		}
	case TypeImage:
		urls := b.imageURLs()
		if len(urls) == 0 {
			return fmt.Errorf("image block requires a file URL")
		}
		if _, isList := b.fileURLValue().([]any); isList {
			first := urls[0]
			if !strings.HasPrefix(first, "http://") && !strings.HasPrefix(first, "https://") {
				return fmt.Errorf("image URL must be absolute")
			}
		}
	case TypeParagraph, TypeList, TypeCode, TypeInlineCode, TypeTable:
		// no structural constraints
	default:
		return fmt.Errorf("unknown block type %q", b.Type)
	}
	return nil
}

func (b Block) headerText() string {
	text, _ := b.Data["text"].(string)
	return text
}

// headerLevel tolerates both float64 (decoded JSON) and int (constructed in
// code) representations.
func (b Block) headerLevel() int {
	switch v := b.Data["level"].(type) {
	case float64:
		return int(v)
	case int:
		return v
	default:
		return 0
	}
}

func (b Block) headerTextLength() int {
	return utf8.RuneCountInString(b.headerText())
}

func (b Block) fileURLValue() any {
	file, _ := b.Data["file"].(map[string]any)
	if file == nil {
		return nil
	}
	return file["url"]
}

// imageURLs normalizes the file URL field, which arrives either as a single
// string or as a list of strings.
func (b Block) imageURLs() []string {
	switch v := b.fileURLValue().(type) {
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	case []any:
		var urls []string
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				urls = append(urls, s)
			}
		}
		return urls
	default:
		return nil
	}
}
