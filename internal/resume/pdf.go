package resume

import (
	"os/exec"
	"strings"

	"jobscout/internal/errors"

	pdflib "github.com/ledongthuc/pdf"
)

// LoadPages extracts the text of each physical page of a PDF, in order. It
// tries the Go library first and falls back to pdftotext -layout when the
// library cannot extract anything: layout mode keeps headers and date ranges
// on the lines the section patterns expect.
func LoadPages(path string) ([]string, error) {
	pages, err := extractPages(path)
	if err != nil || allBlank(pages) {
		if fallback, fbErr := extractPdftotext(path); fbErr == nil {
			pages = fallback
			err = nil
		}
	}
	if err != nil {
		return nil, errors.NewIOError(errors.ErrCodePDFExtractFailed,
			"failed to extract text from PDF: "+path, err)
	}
	if allBlank(pages) {
		return nil, errors.NewParseError(errors.ErrCodeEmptyDocument,
			"PDF contains no extractable text: "+path, nil)
	}
	return pages, nil
}

func extractPages(path string) ([]string, error) {
	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)
	for i := 1; i <= numPages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			pages = append(pages, "")
			continue
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// extractPdftotext shells out to pdftotext, which separates pages with form
// feeds.
func extractPdftotext(path string) ([]string, error) {
	cmd := exec.Command("pdftotext", "-layout", path, "-")
	out, err := cmd.Output()
	if err != nil {
		return nil, err
	}
	return strings.Split(string(out), "\f"), nil
}

func allBlank(pages []string) bool {
	for _, p := range pages {
		if strings.TrimSpace(p) != "" {
			return false
		}
	}
	return true
}
