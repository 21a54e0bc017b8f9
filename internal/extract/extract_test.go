package extract

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"
)

func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

// buildBlankPDF assembles a valid one-page PDF with no text content,
// computing the cross-reference offsets as it writes.
func buildBlankPDF(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")

	objects := []string{
		"1 0 obj\n<< /Type /Catalog /Pages 2 0 R >>\nendobj\n",
		"2 0 obj\n<< /Type /Pages /Kids [3 0 R] /Count 1 >>\nendobj\n",
		"3 0 obj\n<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << >> >>\nendobj\n",
	}
	offsets := make([]int, len(objects)+1)
	for i, obj := range objects {
		offsets[i+1] = buf.Len()
		buf.WriteString(obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets[1:] {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestExtractPDFWithoutTextReturnsSentinel(t *testing.T) {
	res, err := Extract(context.Background(), "blank.pdf", buildBlankPDF(t))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if res.Text != NoTextPDF {
		t.Fatalf("expected sentinel %q, got %q", NoTextPDF, res.Text)
	}
	if res.Format != FormatPDF || !res.Recognized {
		t.Fatalf("expected recognized pdf format, got %+v", res)
	}
}

func TestExtractTxtRoundTrip(t *testing.T) {
	text := "blood pressure 120/80\nheart rate 72\n"
	res, err := Extract(context.Background(), "vitals.txt", []byte(text))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if res.Text != text {
		t.Fatalf("expected verbatim text, got %q", res.Text)
	}
	if res.Format != FormatText || !res.Recognized {
		t.Fatalf("expected recognized text format, got %+v", res)
	}
}

func TestExtractTxtExtensionCaseInsensitive(t *testing.T) {
	res, err := Extract(context.Background(), "NOTES.TXT", []byte("hello"))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !res.Recognized || res.Text != "hello" {
		t.Fatalf("expected recognized txt, got %+v", res)
	}
}

func TestExtractUnknownExtensionFallsBackToText(t *testing.T) {
	res, err := Extract(context.Background(), "export.csv", []byte("a,b,c"))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if res.Recognized {
		t.Fatal("expected unknown extension to be flagged unrecognized")
	}
	if res.Text != "a,b,c" || res.Format != FormatText {
		t.Fatalf("expected raw-text fallback, got %+v", res)
	}
}

func TestExtractDocxText(t *testing.T) {
	doc := `<?xml version="1.0"?><w:document xmlns:w="x"><w:body><w:p><w:r><w:t>Diagnosis: healthy</w:t></w:r></w:p></w:body></w:document>`
	res, err := Extract(context.Background(), "report.docx", buildDocx(t, doc))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if !strings.Contains(res.Text, "Diagnosis: healthy") {
		t.Fatalf("expected docx text, got %q", res.Text)
	}
	if res.Format != FormatDOCX {
		t.Fatalf("expected docx format, got %s", res.Format)
	}
}

func TestExtractDocxWithoutParagraphsReturnsSentinel(t *testing.T) {
	doc := `<?xml version="1.0"?><w:document xmlns:w="x"><w:body></w:body></w:document>`
	res, err := Extract(context.Background(), "empty.docx", buildDocx(t, doc))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if res.Text != NoTextDOCX {
		t.Fatalf("expected sentinel %q, got %q", NoTextDOCX, res.Text)
	}
}

func TestExtractCorruptDocxPropagatesError(t *testing.T) {
	if _, err := Extract(context.Background(), "broken.docx", []byte("not a zip")); err == nil {
		t.Fatal("expected corrupt docx to fail")
	}
}

func TestExtractCorruptPDFPropagatesError(t *testing.T) {
	if _, err := Extract(context.Background(), "broken.pdf", []byte("not a pdf")); err == nil {
		t.Fatal("expected corrupt pdf to fail")
	}
}

func TestExtractDocxMissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/other.xml")
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte("<x/>")); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}

	if _, err := Extract(context.Background(), "odd.docx", buf.Bytes()); err == nil {
		t.Fatal("expected missing document.xml to fail")
	}
}
