package ingestion

import (
	"bytes"
	"fmt"
	"html"
	"path/filepath"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"github.com/nguyenthenguyen/docx"
)

// Format identifies how a document is decoded.
type Format string

const (
	FormatText Format = "text"
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
	FormatHTML Format = "html"
)

var extensionFormats = map[string]Format{
	".txt":      FormatText,
	".text":     FormatText,
	".md":       FormatText,
	".markdown": FormatText,
	".pdf":      FormatPDF,
	".docx":     FormatDOCX,
	".html":     FormatHTML,
	".htm":      FormatHTML,
}

var (
	xmlTagRe      = regexp.MustCompile(`<[^>]+>`)
	paragraphEnds = regexp.MustCompile(`</w:p>|<w:br/>|<w:cr/>`)
)

// DetectFormat maps a filename to its decoder by extension.
func DetectFormat(filename string) (Format, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if f, ok := extensionFormats[ext]; ok {
		return f, nil
	}
	if ext == "" {
		ext = "(none)"
	}
	return "", fmt.Errorf("%w: %s", ErrUnsupportedType, ext)
}

// SupportedExtensions lists the extensions DetectFormat accepts.
func SupportedExtensions() []string {
	return []string{".txt", ".text", ".md", ".markdown", ".pdf", ".docx", ".html", ".htm"}
}

// Extract decodes raw document bytes into plain text based on the filename extension.
func Extract(filename string, data []byte) (string, error) {
	doc, err := ExtractDocument(filename, data)
	if err != nil {
		return "", err
	}
	return doc.Text, nil
}

// Document is decoded text plus its metadata.
type Document struct {
	Text     string
	Metadata *Metadata
}

// ExtractDocument decodes raw bytes, cleans the text and builds its metadata.
func ExtractDocument(filename string, data []byte) (*Document, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return nil, err
	}

	var (
		raw      string
		platform Platform
	)
	switch format {
	case FormatPDF:
		raw, err = extractPDFText(data)
	case FormatDOCX:
		raw, err = extractDocxText(data)
	case FormatHTML:
		raw, platform, err = extractHTMLText(string(data))
	default:
		if !utf8.Valid(data) {
			err = fmt.Errorf("text is not valid UTF-8")
		}
		raw = string(data)
	}
	if err != nil {
		return nil, &ExtractionError{Filename: filename, Format: format, Cause: err}
	}

	text := CleanText(raw)
	if format == FormatPDF && text == "" {
		return nil, &ExtractionError{Filename: filename, Format: format, Cause: ErrNoText}
	}
	meta := NewMetadata(text, filepath.Base(filename), format)
	meta.Platform = platform
	return &Document{Text: text, Metadata: meta}, nil
}

func extractPDFText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to read pdf: %w", err)
	}

	var sb strings.Builder
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("failed to read pdf page %d: %w", i, err)
		}
		sb.WriteString(text)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

func extractDocxText(data []byte) (string, error) {
	doc, err := docx.ReadDocxFromMemory(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("failed to parse docx: %w", err)
	}
	defer func() { _ = doc.Close() }()

	// GetContent returns the raw document.xml body.
	content := paragraphEnds.ReplaceAllString(doc.Editable().GetContent(), "\n")
	content = xmlTagRe.ReplaceAllString(content, "")
	return html.UnescapeString(content), nil
}
