package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Sentinel texts stored when a parser finds no extractable content. Records
// always carry non-empty content, so empty parses map to these instead.
const (
	NoTextPDF  = "[No text found in PDF]"
	NoTextDOCX = "[No text found in DOCX]"
)

const (
	FormatPDF  = "pdf"
	FormatDOCX = "docx"
	FormatText = "text"
)

// Result is the outcome of extracting a single document.
type Result struct {
	Text   string
	Format string
	// Recognized is false when the extension was unknown and the bytes were
	// read as text on a best-effort basis.
	Recognized bool
}

// Extract pulls plain text from an in-memory upload, dispatching on the file
// extension (case-insensitive). Unknown extensions fall back to raw text with
// Recognized=false rather than failing. Parser errors propagate to the caller.
func Extract(ctx context.Context, fileName string, data []byte) (Result, error) {
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".pdf":
		text, err := extractPDF(data)
		if err != nil {
			return Result{}, fmt.Errorf("extract pdf %s: %w", fileName, err)
		}
		if strings.TrimSpace(text) == "" {
			text = NoTextPDF
		}
		return Result{Text: text, Format: FormatPDF, Recognized: true}, nil
	case ".docx":
		text, err := extractDOCX(data)
		if err != nil {
			return Result{}, fmt.Errorf("extract docx %s: %w", fileName, err)
		}
		if strings.TrimSpace(text) == "" {
			text = NoTextDOCX
		}
		return Result{Text: text, Format: FormatDOCX, Recognized: true}, nil
	case ".txt":
		return Result{Text: string(data), Format: FormatText, Recognized: true}, nil
	default:
		return Result{Text: string(data), Format: FormatText, Recognized: false}, nil
	}
}

func extractPDF(data []byte) (string, error) {
	reader := bytes.NewReader(data)
	pdfReader, err := pdf.NewReader(reader, int64(len(data)))
	if err != nil {
		return "", err
	}
	plain, err := pdfReader.GetPlainText()
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, plain); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func extractDOCX(data []byte) (string, error) {
	if len(data) == 0 {
		return "", errors.New("empty docx data")
	}
	readerAt := bytes.NewReader(data)
	zr, err := zip.NewReader(readerAt, int64(len(data)))
	if err != nil {
		return "", err
	}

	var docFile *zip.File
	for _, f := range zr.File {
		name := strings.ReplaceAll(f.Name, "\\", "/")
		if name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return "", errors.New("document.xml file not found")
	}

	rc, err := docFile.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	raw, err := io.ReadAll(rc)
	if err != nil {
		return "", err
	}

	return stripDocxXML(string(raw)), nil
}

func stripDocxXML(raw string) string {
	decoder := xml.NewDecoder(strings.NewReader(raw))
	var buf strings.Builder
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return raw
		}
		switch t := tok.(type) {
		case xml.CharData:
			buf.WriteString(string(t))
		case xml.EndElement:
			if t.Name.Local == "p" || t.Name.Local == "br" {
				if last := buf.Len(); last > 0 {
					buf.WriteString("\n")
				}
			}
		}
	}
	return strings.TrimSpace(buf.String())
}
