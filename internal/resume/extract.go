// Package resume turns uploaded résumé documents into plain text and a best-effort profile.
package resume

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"

	pdf "github.com/ledongthuc/pdf"
)

// ErrUnsupportedFormat is returned for any extension other than pdf or docx.
var ErrUnsupportedFormat = errors.New("unsupported file format: only pdf and docx are allowed")

// UnsupportedFormatError names the rejected extension.
type UnsupportedFormatError struct {
	Ext string
}

func (e *UnsupportedFormatError) Error() string {
	if e.Ext == "" {
		return ErrUnsupportedFormat.Error() + " (no extension)"
	}
	return fmt.Sprintf("%s (got %q)", ErrUnsupportedFormat.Error(), e.Ext)
}

func (e *UnsupportedFormatError) Unwrap() error {
	return ErrUnsupportedFormat
}

// Format is a supported document type.
type Format string

const (
	FormatPDF  Format = "pdf"
	FormatDOCX Format = "docx"
)

// ParseFormat normalizes an extension such as ".PDF" or "docx".
func ParseFormat(ext string) (Format, error) {
	normalized := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(ext), "."))
	switch Format(normalized) {
	case FormatPDF, FormatDOCX:
		return Format(normalized), nil
	default:
		return "", &UnsupportedFormatError{Ext: ext}
	}
}

// ExtractText returns the plain text of a pdf or docx document.
// Unreadable documents yield empty text and no error.
func ExtractText(data []byte, ext string) (string, error) {
	format, err := ParseFormat(ext)
	if err != nil {
		return "", err
	}

	var text string
	switch format {
	case FormatPDF:
		text, err = safeExtract(data, extractTextFromPDF)
	case FormatDOCX:
		text, err = safeExtract(data, extractTextFromDocx)
	}
	if err != nil {
		return "", nil
	}
	return text, nil
}

// safeExtract shields callers from decoder panics on malformed input.
func safeExtract[T any](in T, fn func(T) (string, error)) (text string, err error) {
	defer func() {
		if r := recover(); r != nil {
			text, err = "", fmt.Errorf("decoder panic: %v", r)
		}
	}()
	return fn(in)
}

const (
	// lineTolerance is how far, as a fraction of the font size, two glyph
	// baselines may differ and still sit on one line.
	lineTolerance = 0.5
	// wordGap is the horizontal gap, as a fraction of the font size, read as a space.
	wordGap = 0.2
)

// extractTextFromPDF rebuilds lines from glyph positions page by page.
// A page that fails to decode is skipped.
func extractTextFromPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}

	var (
		pages    []string
		firstErr error
	)
	for i := 1; i <= r.NumPage(); i++ {
		text, err := safeExtract(r.Page(i), pageText)
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("page %d: %w", i, err)
			}
			continue
		}
		pages = append(pages, text)
	}
	if len(pages) == 0 && firstErr != nil {
		return "", firstErr
	}
	return normalizeWhitespace(strings.Join(pages, "\n")), nil
}

// pageText walks the glyphs of p in content order, starting a new line when
// the baseline moves and inserting a space across wide horizontal gaps.
func pageText(p pdf.Page) (string, error) {
	var (
		b       strings.Builder
		lineY   float64
		prevEnd float64
		started bool
	)
	for _, g := range p.Content().Text {
		if g.S == "" || g.S == "\n" {
			continue
		}
		size := math.Abs(g.FontSize)
		if size == 0 {
			size = 1
		}
		switch {
		case !started:
			started = true
		case math.Abs(g.Y-lineY) > size*lineTolerance:
			b.WriteByte('\n')
		case g.X-prevEnd > size*wordGap:
			b.WriteByte(' ')
		}
		b.WriteString(g.S)
		lineY = g.Y
		prevEnd = g.X + g.W
	}
	return b.String(), nil
}

func extractTextFromDocx(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", err
	}
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return "", err
		}
		defer func() { _ = rc.Close() }()
		paragraphs, err := bodyParagraphs(rc)
		if err != nil {
			return "", err
		}
		return normalizeWhitespace(strings.Join(paragraphs, "\n")), nil
	}
	return "", errors.New("no document.xml found in docx")
}

// bodyParagraphs walks word/document.xml and collects the text of top-level
// paragraphs. Paragraphs nested in tables are skipped.
func bodyParagraphs(r io.Reader) ([]string, error) {
	const wordNS = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"

	dec := xml.NewDecoder(r)
	var (
		paragraphs []string
		current    strings.Builder
		inPara     bool
		inText     bool
		tableDepth int
	)

	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		switch t := tok.(type) {
		case xml.StartElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "tbl":
				tableDepth++
			case "p":
				if tableDepth == 0 {
					inPara = true
					current.Reset()
				}
			case "t":
				inText = inPara
			case "tab":
				if inPara {
					current.WriteByte('\t')
				}
			case "br", "cr":
				if inPara {
					current.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if t.Name.Space != wordNS {
				continue
			}
			switch t.Name.Local {
			case "tbl":
				tableDepth--
			case "p":
				if inPara && tableDepth == 0 {
					paragraphs = append(paragraphs, current.String())
					inPara = false
				}
			case "t":
				inText = false
			}
		case xml.CharData:
			if inText {
				current.Write(t)
			}
		}
	}

	return paragraphs, nil
}

var horizontalSpace = strings.NewReplacer("\u00a0", " ", "\r", "")

// normalizeWhitespace collapses runs of blanks within lines and drops empty lines.
func normalizeWhitespace(s string) string {
	s = horizontalSpace.Replace(s)
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
