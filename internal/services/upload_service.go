package services

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"sway-pr/internal/models"
	"sway-pr/internal/utils"
	"sway-pr/internal/wsnotify"

	"github.com/xuri/excelize/v2"
)

type UploadService struct {
	uploads  UploadStore
	contacts ContactStore
	notifier Notifier
}

func NewUploadService(uploads UploadStore, contacts ContactStore, notifier Notifier) *UploadService {
	return &UploadService{uploads: uploads, contacts: contacts, notifier: notifier}
}

func (s *UploadService) List(ctx context.Context) ([]*models.Upload, error) {
	uploads, err := s.uploads.List(ctx)
	if err != nil {
		return nil, storageFailure(err)
	}
	return uploads, nil
}

func (s *UploadService) get(ctx context.Context, id int64) (*models.Upload, error) {
	upload, err := s.uploads.GetByID(ctx, id)
	if err != nil {
		return nil, storageFailure(err)
	}
	if upload == nil {
		return nil, models.NewError(models.KindNotFound, "upload %d not found", id)
	}
	return upload, nil
}

// Detail returns the batch name and every contact that belongs to it.
func (s *UploadService) Detail(ctx context.Context, id int64) (*models.UploadDetail, error) {
	upload, err := s.get(ctx, id)
	if err != nil {
		return nil, err
	}
	records, err := s.contacts.ListByUpload(ctx, id)
	if err != nil {
		return nil, storageFailure(err)
	}
	return &models.UploadDetail{UploadName: upload.Name, Records: recordMaps(records)}, nil
}

func (s *UploadService) Rename(ctx context.Context, id int64, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.NewError(models.KindMissingField, "name is required")
	}
	found, err := s.uploads.Rename(ctx, id, name)
	if err != nil {
		return storageFailure(err)
	}
	if !found {
		return models.NewError(models.KindNotFound, "upload %d not found", id)
	}
	s.publish(wsnotify.EventUploadRenamed, wsnotify.UploadPayload{UploadID: id, UploadName: name})
	return nil
}

// Delete removes the batch together with all of its contacts.
func (s *UploadService) Delete(ctx context.Context, id int64) (int64, error) {
	found, removed, err := s.uploads.Delete(ctx, id)
	if err != nil {
		return 0, storageFailure(err)
	}
	if !found {
		return 0, models.NewError(models.KindNotFound, "upload %d not found", id)
	}
	utils.LogInfo("deleted upload %d and %d contacts", id, removed)
	s.publish(wsnotify.EventUploadDeleted, wsnotify.UploadPayload{UploadID: id, RemovedRecords: removed})
	return removed, nil
}

// Export renders the batch's contacts as an XLSX workbook with one row per
// contact and one column per mappable field.
func (s *UploadService) Export(ctx context.Context, id int64) (string, *bytes.Buffer, error) {
	upload, err := s.get(ctx, id)
	if err != nil {
		return "", nil, err
	}
	records, err := s.contacts.ListByUpload(ctx, id)
	if err != nil {
		return "", nil, storageFailure(err)
	}

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Contacts"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return "", nil, fmt.Errorf("error naming sheet: %v", err)
	}

	header := make([]interface{}, 0, len(models.ContactColumns)+1)
	header = append(header, "table")
	for _, c := range models.ContactColumns {
		header = append(header, c)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return "", nil, fmt.Errorf("error writing header: %v", err)
	}

	for i, rec := range records {
		row := make([]interface{}, 0, len(header))
		row = append(row, rec.Table().String())
		for _, field := range rec.Contact().Fields() {
			if *field == nil {
				row = append(row, "")
			} else {
				row = append(row, **field)
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return "", nil, err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return "", nil, fmt.Errorf("error writing row %d: %v", i+2, err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return "", nil, fmt.Errorf("error rendering workbook: %v", err)
	}
	return exportFileName(upload.Name), buf, nil
}

func exportFileName(name string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		case r == ' ':
			return '_'
		}
		return -1
	}, name)
	if cleaned == "" {
		cleaned = "upload"
	}
	return cleaned + ".xlsx"
}

func (s *UploadService) publish(eventType string, payload interface{}) {
	if s.notifier != nil {
		s.notifier.Publish(eventType, payload)
	}
}
