package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseContactTable(t *testing.T) {
	table, ok := ParseContactTable("journalists")
	require.True(t, ok)
	assert.Equal(t, TableJournalists, table)

	for _, name := range []string{"uploads", "all", "journalists; DROP TABLE uploads", "", "Journalists"} {
		_, ok := ParseContactTable(name)
		assert.False(t, ok, name)
	}
}

func TestContactRecordFieldsFollowColumnOrder(t *testing.T) {
	var rec ContactRecord
	fields := rec.Fields()
	require.Len(t, fields, len(ContactColumns))

	for i, column := range ContactColumns {
		v := column
		*fields[i] = &v
	}
	assert.Equal(t, "outletName", *rec.OutletName)
	assert.Equal(t, "Email", *rec.Email)
	assert.Equal(t, "email_stage", *rec.EmailStage)
	assert.Equal(t, "City", rec.Value("City"))
	assert.Equal(t, "", rec.Value("id"))
}

func TestContactRecordToMap(t *testing.T) {
	name := "Jane Jones"
	uploadID := int64(3)
	rec := ContactRecord{ID: 7, UploadID: &uploadID, Name: &name}

	m := rec.ToMap()
	assert.Equal(t, int64(7), m["id"])
	assert.Equal(t, &name, m["name"])
	assert.Nil(t, m["City"])
	assert.Len(t, m, len(ContactColumns)+4)
}

func TestNewTableRecord(t *testing.T) {
	rec := NewTableRecord(TableMediaTitles, ContactRecord{ID: 1})
	_, ok := rec.(*MediaTitleRecord)
	assert.True(t, ok)
	assert.Equal(t, int64(1), rec.Contact().ID)

	rec = NewTableRecord(TableJournalists, ContactRecord{ID: 2})
	assert.Equal(t, TableJournalists, rec.Table())
}

func TestIsMappableColumn(t *testing.T) {
	assert.True(t, IsMappableColumn("Email"))
	assert.True(t, IsMappableColumn("response"))
	for _, c := range []string{"id", "upload_id", "created_at", "updated_at", "email"} {
		assert.False(t, IsMappableColumn(c), c)
	}
}

func TestKindOf(t *testing.T) {
	err := NewError(KindEmptyMapping, "no usable columns")
	assert.Equal(t, KindEmptyMapping, KindOf(err))
	assert.True(t, IsKind(err, KindEmptyMapping))
	assert.Equal(t, KindStorageFailure, KindOf(assert.AnError))
	assert.False(t, IsKind(nil, KindStorageFailure))
}
