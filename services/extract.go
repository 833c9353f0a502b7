package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractTextFromUpload turns an uploaded study document into plain text that
// can be fed through the podcast resolution flow as a prompt. Supported
// extensions: .pdf and .txt.
func ExtractTextFromUpload(fileHeader *multipart.FileHeader) (string, error) {
	switch strings.ToLower(filepath.Ext(fileHeader.Filename)) {
	case ".pdf":
		f, err := fileHeader.Open()
		if err != nil {
			return "", err
		}
		defer f.Close()
		return ExtractTextFromPDF(f)
	case ".txt":
		return ExtractTextFromTXT(fileHeader)
	default:
		return "", errors.New("unsupported file type, expected .pdf or .txt")
	}
}

func ExtractTextFromPDF(file multipart.File) (string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		return "", fmt.Errorf("cannot read PDF upload: %w", err)
	}

	reader, err := pdf.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		return "", fmt.Errorf("cannot open PDF: %w", err)
	}

	var textBuilder bytes.Buffer
	pages := reader.NumPage()
	for i := 1; i <= pages; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		textBuilder.WriteString(content)
	}

	return strings.TrimSpace(textBuilder.String()), nil
}

func ExtractTextFromTXT(fileHeader *multipart.FileHeader) (string, error) {
	file, err := fileHeader.Open()
	if err != nil {
		return "", err
	}
	defer file.Close()

	buf := new(bytes.Buffer)
	if _, err := buf.ReadFrom(file); err != nil {
		return "", err
	}

	return strings.TrimSpace(buf.String()), nil
}
