package models

import "time"

// ContactTable is a destination table for contact records. Only the
// constants below are valid; table names never come from user input directly.
type ContactTable string

const (
	TableJournalists ContactTable = "journalists"
	TableMediaTitles ContactTable = "media_titles"
)

const (
	// TableUploads is listable but never an import destination.
	TableUploads = "uploads"
	// TableAll selects the union of both contact tables for distinct-value queries.
	TableAll = "all"
)

var ContactTables = []ContactTable{TableJournalists, TableMediaTitles}

func ParseContactTable(name string) (ContactTable, bool) {
	switch ContactTable(name) {
	case TableJournalists, TableMediaTitles:
		return ContactTable(name), true
	}
	return "", false
}

func (t ContactTable) String() string {
	return string(t)
}

// ContactColumns lists the mappable columns of both contact tables in
// schema order: every column except id, upload_id, created_at and updated_at.
var ContactColumns = []string{
	"name", "nameSuffix", "outletName", "phone", "ModeOfAddress", "Honorific", "JobTitle",
	"MediaType", "Email", "AddressLine1", "AddressLine2", "City", "County", "State",
	"PostalCode", "Country", "Twitter", "Facebook", "Instagram", "Pinterest", "YouTube",
	"ShadowEmail", "ShadowPhone", "ShadowMobile", "ShadowWebsite", "ShadowFacebook",
	"ShadowTwitter", "ShadowLinkedIn", "ShadowAddressLine1", "ShadowAddressLine2",
	"ShadowCity", "ShadowCounty", "ShadowPostalCode", "ShadowCountry", "Languages",
	"Unsubscribed", "Focus", "response", "email_stage",
}

var mappableColumns = func() map[string]struct{} {
	set := make(map[string]struct{}, len(ContactColumns))
	for _, c := range ContactColumns {
		set[c] = struct{}{}
	}
	return set
}()

func IsMappableColumn(column string) bool {
	_, ok := mappableColumns[column]
	return ok
}

// DistinctField is a contact column that distinct-value and fuzzy queries may read.
type DistinctField string

const (
	FieldOutletName DistinctField = "outletName"
	FieldCity       DistinctField = "City"
)

func ParseDistinctField(name string) (DistinctField, bool) {
	switch DistinctField(name) {
	case FieldOutletName, FieldCity:
		return DistinctField(name), true
	}
	return "", false
}

// ContactRecord holds one row of either contact table. Text fields are
// nil when the column is NULL.
type ContactRecord struct {
	ID       int64  `json:"id"`
	UploadID *int64 `json:"upload_id"`

	Name               *string `json:"name"`
	NameSuffix         *string `json:"nameSuffix"`
	OutletName         *string `json:"outletName"`
	Phone              *string `json:"phone"`
	ModeOfAddress      *string `json:"ModeOfAddress"`
	Honorific          *string `json:"Honorific"`
	JobTitle           *string `json:"JobTitle"`
	MediaType          *string `json:"MediaType"`
	Email              *string `json:"Email"`
	AddressLine1       *string `json:"AddressLine1"`
	AddressLine2       *string `json:"AddressLine2"`
	City               *string `json:"City"`
	County             *string `json:"County"`
	State              *string `json:"State"`
	PostalCode         *string `json:"PostalCode"`
	Country            *string `json:"Country"`
	Twitter            *string `json:"Twitter"`
	Facebook           *string `json:"Facebook"`
	Instagram          *string `json:"Instagram"`
	Pinterest          *string `json:"Pinterest"`
	YouTube            *string `json:"YouTube"`
	ShadowEmail        *string `json:"ShadowEmail"`
	ShadowPhone        *string `json:"ShadowPhone"`
	ShadowMobile       *string `json:"ShadowMobile"`
	ShadowWebsite      *string `json:"ShadowWebsite"`
	ShadowFacebook     *string `json:"ShadowFacebook"`
	ShadowTwitter      *string `json:"ShadowTwitter"`
	ShadowLinkedIn     *string `json:"ShadowLinkedIn"`
	ShadowAddressLine1 *string `json:"ShadowAddressLine1"`
	ShadowAddressLine2 *string `json:"ShadowAddressLine2"`
	ShadowCity         *string `json:"ShadowCity"`
	ShadowCounty       *string `json:"ShadowCounty"`
	ShadowPostalCode   *string `json:"ShadowPostalCode"`
	ShadowCountry      *string `json:"ShadowCountry"`
	Languages          *string `json:"Languages"`
	Unsubscribed       *string `json:"Unsubscribed"`
	Focus              *string `json:"Focus"`
	Response           *string `json:"response"`
	EmailStage         *string `json:"email_stage"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Fields returns pointers to the text fields in ContactColumns order.
func (c *ContactRecord) Fields() []**string {
	return []**string{
		&c.Name, &c.NameSuffix, &c.OutletName, &c.Phone, &c.ModeOfAddress, &c.Honorific, &c.JobTitle,
		&c.MediaType, &c.Email, &c.AddressLine1, &c.AddressLine2, &c.City, &c.County, &c.State,
		&c.PostalCode, &c.Country, &c.Twitter, &c.Facebook, &c.Instagram, &c.Pinterest, &c.YouTube,
		&c.ShadowEmail, &c.ShadowPhone, &c.ShadowMobile, &c.ShadowWebsite, &c.ShadowFacebook,
		&c.ShadowTwitter, &c.ShadowLinkedIn, &c.ShadowAddressLine1, &c.ShadowAddressLine2,
		&c.ShadowCity, &c.ShadowCounty, &c.ShadowPostalCode, &c.ShadowCountry, &c.Languages,
		&c.Unsubscribed, &c.Focus, &c.Response, &c.EmailStage,
	}
}

// Value returns the text of a mappable column, or "" when it is NULL or unknown.
func (c *ContactRecord) Value(column string) string {
	for i, name := range ContactColumns {
		if name == column {
			if v := *c.Fields()[i]; v != nil {
				return *v
			}
			return ""
		}
	}
	return ""
}

// ToMap is the serialization adapter used at the JSON boundary.
func (c *ContactRecord) ToMap() map[string]any {
	m := make(map[string]any, len(ContactColumns)+4)
	m["id"] = c.ID
	m["upload_id"] = c.UploadID
	for i, f := range c.Fields() {
		m[ContactColumns[i]] = *f
	}
	m["created_at"] = c.CreatedAt
	m["updated_at"] = c.UpdatedAt
	return m
}

// TableRecord is a contact record bound to the table it was read from.
type TableRecord interface {
	Table() ContactTable
	Contact() *ContactRecord
}

type JournalistRecord struct {
	ContactRecord
}

func (r *JournalistRecord) Table() ContactTable     { return TableJournalists }
func (r *JournalistRecord) Contact() *ContactRecord { return &r.ContactRecord }

type MediaTitleRecord struct {
	ContactRecord
}

func (r *MediaTitleRecord) Table() ContactTable     { return TableMediaTitles }
func (r *MediaTitleRecord) Contact() *ContactRecord { return &r.ContactRecord }

// NewTableRecord wraps a scanned record in the type matching its table.
func NewTableRecord(table ContactTable, rec ContactRecord) TableRecord {
	if table == TableMediaTitles {
		return &MediaTitleRecord{ContactRecord: rec}
	}
	return &JournalistRecord{ContactRecord: rec}
}

// ContactSummary is one item of the paged media-contacts listing.
type ContactSummary struct {
	ID          int64  `json:"id"`
	Kind        string `json:"kind"`
	ContactName string `json:"contactName"`
	OutletName  string `json:"outletName"`
	Email       string `json:"email"`
	JobTitle    string `json:"jobTitle"`
	City        string `json:"city"`
	Focus       string `json:"focus"`
	UploadID    *int64 `json:"uploadId"`
	Response    string `json:"response"`
	EmailStage  string `json:"emailStage"`
}

type ContactPage struct {
	Items    []ContactSummary `json:"items"`
	Page     int              `json:"page"`
	PageSize int              `json:"pageSize"`
	Total    int              `json:"total"`
}

// ImportRequest carries one already-validated import.
type ImportRequest struct {
	Table     ContactTable
	BatchName string
	Columns   []string
	Rows      [][]string
}

type ImportResult struct {
	Message      string `json:"message"`
	ImportedRows int    `json:"imported_rows"`
	Table        string `json:"table"`
	UploadID     int64  `json:"upload_id"`
}
