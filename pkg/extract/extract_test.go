package extract

import (
	"archive/zip"
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func buildDocx(t *testing.T, paragraphs []string) []byte {
	t.Helper()

	body := &bytes.Buffer{}
	body.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>`)
	body.WriteString(`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>`)
	for _, paragraph := range paragraphs {
		fmt.Fprintf(body, `<w:p><w:r><w:t>%s</w:t></w:r></w:p>`, paragraph)
	}
	body.WriteString(`</w:body></w:document>`)

	buffer := &bytes.Buffer{}
	writer := zip.NewWriter(buffer)

	entries := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="xml" ContentType="application/xml"/>` +
			`<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>` +
			`</Types>`,
		"word/document.xml": body.String(),
	}
	for name, content := range entries {
		file, err := writer.Create(name)
		require.NoError(t, err)
		_, err = file.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())

	return buffer.Bytes()
}

func TestDOCXJoinsParagraphs(t *testing.T) {
	data := buildDocx(t, []string{"Cells are the unit of life.", "Mitochondria produce ATP."})

	text, err := DOCX(data)
	require.NoError(t, err)
	require.Equal(t, "Cells are the unit of life.\nMitochondria produce ATP.", text)
}

func TestDOCXWithoutDocumentPart(t *testing.T) {
	buffer := &bytes.Buffer{}
	writer := zip.NewWriter(buffer)
	file, err := writer.Create("word/styles.xml")
	require.NoError(t, err)
	_, err = file.Write([]byte(`<w:styles/>`))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	_, err = DOCX(buffer.Bytes())
	require.Error(t, err)
}

func TestTextDispatchesByMimeType(t *testing.T) {
	data := buildDocx(t, []string{"Photosynthesis summary."})

	text, err := Text(MimeDOCX, data)
	require.NoError(t, err)
	require.Equal(t, "Photosynthesis summary.", text)

	_, err = Text(MimeDOC, data)
	require.ErrorIs(t, err, ErrUnsupported)

	_, err = Text("text/plain", []byte("plain text"))
	require.ErrorIs(t, err, ErrUnsupported)
}

func TestDOCXRejectsGarbage(t *testing.T) {
	_, err := DOCX([]byte("not a zip archive"))
	require.Error(t, err)
}
