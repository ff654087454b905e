package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DOCX extracts paragraph text from a .docx document. The format is a zip
// archive whose word/document.xml holds runs of <w:t> text elements.
func DOCX(data []byte) (string, error) {
	archive, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}

	for _, file := range archive.File {
		if file.Name != "word/document.xml" {
			continue
		}

		reader, err := file.Open()
		if err != nil {
			return "", fmt.Errorf("open docx document: %w", err)
		}
		defer reader.Close()

		return readDocumentXML(reader)
	}

	return "", fmt.Errorf("docx has no word/document.xml")
}

func readDocumentXML(reader io.Reader) (string, error) {
	decoder := xml.NewDecoder(reader)
	builder := strings.Builder{}
	inText := false

	for {
		token, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("decode docx xml: %w", err)
		}

		switch t := token.(type) {
		case xml.StartElement:
			if t.Name.Local == "t" {
				inText = true
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				builder.WriteString("\n")
			}
		case xml.CharData:
			if inText {
				builder.Write(t)
			}
		}
	}

	return strings.TrimSpace(builder.String()), nil
}
