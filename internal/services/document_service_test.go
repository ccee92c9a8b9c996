package services

import (
	"archive/zip"
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sway-pr/internal/models"
	"sway-pr/internal/repositories"
	"sway-pr/internal/testkit"
)

func buildDocx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	files := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">
<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>
<Default Extension="xml" ContentType="application/xml"/>
<Override PartName="/word/document.xml" ContentType="application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"/>
</Types>`,
		"_rels/.rels": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">
<Relationship Id="rId1" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument" Target="word/document.xml"/>
</Relationships>`,
	}
	body := ""
	for _, p := range paragraphs {
		body += `<w:p><w:r><w:t xml:space="preserve">` + p + `</w:t></w:r></w:p>`
	}
	files["word/document.xml"] = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body + `</w:body></w:document>`

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range []string{"[Content_Types].xml", "_rels/.rels", "word/document.xml"} {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(files[name]))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestExtractText(t *testing.T) {
	text, err := ExtractText("release.TXT", []byte("\xEF\xBB\xBFLaunch day\n"))
	require.NoError(t, err)
	assert.Equal(t, "Launch day", text)

	text, err = ExtractText("release.docx", buildDocx(t, "Sway launches today.", "More to follow."))
	require.NoError(t, err)
	assert.Equal(t, "Sway launches today.\nMore to follow.", text)

	_, err = ExtractText("release.docx", []byte("not a zip"))
	assert.Equal(t, models.KindMalformedInput, models.KindOf(err))

	_, err = ExtractText("release.pages", []byte("x"))
	assert.Equal(t, models.KindInvalidFileType, models.KindOf(err))
}

func TestTextToHTML(t *testing.T) {
	assert.Equal(t, "<p>Hello &amp; welcome<br>line two</p>\n<p>Next</p>\n", TextToHTML("Hello & welcome\r\nline two\n\n\nNext"))
}

func TestDocumentService(t *testing.T) {
	db := testkit.NewSQLiteDB(t)
	archive := &fakeArchive{}
	svc := NewDocumentService(repositories.NewSQLDocumentRepository(db, models.DocumentPressRelease), archive)
	ctx := context.Background()

	doc, err := svc.Upload(ctx, "", "Autumn Launch.txt", []byte("Line one\n\nLine two"))
	require.NoError(t, err)
	assert.Equal(t, "Autumn Launch", doc.Name)
	assert.Equal(t, "<p>Line one</p>\n<p>Line two</p>\n", doc.HTMLContent)
	assert.Contains(t, archive.files, "press_releases/Autumn Launch.txt")

	_, err = svc.Upload(ctx, "Empty", "empty.txt", []byte("   "))
	assert.Equal(t, models.KindMalformedInput, models.KindOf(err))
	_, err = svc.Upload(ctx, "None", "", nil)
	assert.Equal(t, models.KindMissingField, models.KindOf(err))

	updated, err := svc.Update(ctx, doc.ID, "Autumn Launch v2", "New body", "", []byte("img"))
	require.NoError(t, err)
	assert.Equal(t, "Autumn Launch v2", updated.Name)
	assert.Equal(t, "<p>New body</p>\n", updated.HTMLContent)
	assert.True(t, updated.HasImage)

	_, err = svc.Update(ctx, 999, "x", "y", "", nil)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
	_, err = svc.Update(ctx, doc.ID, "", "y", "", nil)
	assert.Equal(t, models.KindMissingField, models.KindOf(err))

	docs, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, docs, 1)

	require.NoError(t, svc.Delete(ctx, doc.ID))
	assert.Equal(t, models.KindNotFound, models.KindOf(svc.Delete(ctx, doc.ID)))
	_, err = svc.Get(ctx, doc.ID)
	assert.Equal(t, models.KindNotFound, models.KindOf(err))
}
