package services

import (
	"bytes"
	"context"
	"html"
	"io"
	"path/filepath"
	"strings"
	"sway-pr/internal/models"
	"sway-pr/internal/utils"

	"gitee.com/gooffice/gooffice/document"
	"github.com/ledongthuc/pdf"
)

var documentExtensions = map[string]string{
	".txt":  "text/plain",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	".pdf":  "application/pdf",
}

// ExtractText returns the plain text of a .txt, .docx or .pdf file.
func ExtractText(fileName string, data []byte) (string, error) {
	switch strings.ToLower(filepath.Ext(fileName)) {
	case ".txt":
		return strings.TrimSpace(DecodeText(data)), nil
	case ".docx":
		return extractDocx(data)
	case ".pdf":
		return extractPDF(data)
	}
	return "", models.NewError(models.KindInvalidFileType, "only .docx, .pdf and .txt files are accepted")
}

func extractDocx(data []byte) (string, error) {
	doc, err := document.Read(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", models.WrapError(models.KindMalformedInput, err, "the Word document could not be read")
	}

	paragraphs := make([]string, 0, len(doc.Paragraphs()))
	for _, p := range doc.Paragraphs() {
		var sb strings.Builder
		for _, r := range p.Runs() {
			sb.WriteString(r.Text())
		}
		paragraphs = append(paragraphs, sb.String())
	}
	return strings.TrimSpace(strings.Join(paragraphs, "\n")), nil
}

func extractPDF(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", models.WrapError(models.KindMalformedInput, err, "the PDF could not be read")
	}
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", models.WrapError(models.KindMalformedInput, err, "the PDF text could not be extracted")
	}
	text, err := io.ReadAll(plain)
	if err != nil {
		return "", models.WrapError(models.KindMalformedInput, err, "the PDF text could not be extracted")
	}
	return strings.TrimSpace(string(text)), nil
}

// TextToHTML wraps each blank-line separated block in a paragraph and
// keeps single line breaks.
func TextToHTML(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var sb strings.Builder
	for _, block := range strings.Split(text, "\n\n") {
		block = strings.TrimSpace(block)
		if block == "" {
			continue
		}
		lines := strings.Split(block, "\n")
		for i, l := range lines {
			lines[i] = html.EscapeString(l)
		}
		sb.WriteString("<p>")
		sb.WriteString(strings.Join(lines, "<br>"))
		sb.WriteString("</p>\n")
	}
	return sb.String()
}

// DocumentStore is the storage for one document kind.
type DocumentStore interface {
	Kind() models.DocumentKind
	Save(ctx context.Context, doc *models.Document) error
	List(ctx context.Context) ([]*models.Document, error)
	GetByID(ctx context.Context, id int64) (*models.Document, error)
	Update(ctx context.Context, doc *models.Document) (bool, error)
	Delete(ctx context.Context, id int64) (bool, error)
}

type DocumentService struct {
	store   DocumentStore
	archive FileArchive
}

func NewDocumentService(store DocumentStore, archive FileArchive) *DocumentService {
	return &DocumentService{store: store, archive: archive}
}

func (s *DocumentService) Kind() models.DocumentKind {
	return s.store.Kind()
}

func (s *DocumentService) label() string {
	if s.store.Kind() == models.DocumentPressRelease {
		return "press release"
	}
	return "email template"
}

// Upload stores a document whose content is the text of the given file.
// An empty name falls back to the file name without extension.
func (s *DocumentService) Upload(ctx context.Context, name, fileName string, data []byte) (*models.Document, error) {
	if fileName == "" || len(data) == 0 {
		return nil, models.NewError(models.KindMissingField, "a file is required")
	}
	text, err := ExtractText(fileName, data)
	if err != nil {
		return nil, err
	}
	if text == "" {
		return nil, models.NewError(models.KindMalformedInput, "the file contains no text")
	}

	name = strings.TrimSpace(name)
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(fileName), filepath.Ext(fileName))
	}

	doc := &models.Document{Name: name, Content: text, HTMLContent: TextToHTML(text)}
	if err := s.store.Save(ctx, doc); err != nil {
		return nil, storageFailure(err)
	}

	if s.archive != nil {
		contentType := documentExtensions[strings.ToLower(filepath.Ext(fileName))]
		if _, err := s.archive.Archive(ctx, string(s.store.Kind()), fileName, data, contentType); err != nil {
			utils.LogWarning("could not archive %s %s: %v", s.label(), fileName, err)
		}
	}

	utils.LogInfo("stored %s %d (%s)", s.label(), doc.ID, doc.Name)
	return doc, nil
}

func (s *DocumentService) List(ctx context.Context) ([]*models.Document, error) {
	docs, err := s.store.List(ctx)
	if err != nil {
		return nil, storageFailure(err)
	}
	return docs, nil
}

func (s *DocumentService) Get(ctx context.Context, id int64) (*models.Document, error) {
	doc, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, storageFailure(err)
	}
	if doc == nil {
		return nil, models.NewError(models.KindNotFound, "%s %d not found", s.label(), id)
	}
	return doc, nil
}

// Update replaces name and content; a nil image keeps the stored one.
func (s *DocumentService) Update(ctx context.Context, id int64, name, content, htmlContent string, image []byte) (*models.Document, error) {
	if strings.TrimSpace(name) == "" {
		return nil, models.NewError(models.KindMissingField, "name is required")
	}
	if strings.TrimSpace(content) == "" {
		return nil, models.NewError(models.KindMissingField, "content is required")
	}
	if htmlContent == "" {
		htmlContent = TextToHTML(content)
	}

	doc := &models.Document{ID: id, Name: strings.TrimSpace(name), Content: content, HTMLContent: htmlContent, Image: image}
	found, err := s.store.Update(ctx, doc)
	if err != nil {
		return nil, storageFailure(err)
	}
	if !found {
		return nil, models.NewError(models.KindNotFound, "%s %d not found", s.label(), id)
	}
	return s.Get(ctx, id)
}

func (s *DocumentService) Delete(ctx context.Context, id int64) error {
	found, err := s.store.Delete(ctx, id)
	if err != nil {
		return storageFailure(err)
	}
	if !found {
		return models.NewError(models.KindNotFound, "%s %d not found", s.label(), id)
	}
	return nil
}

