package models

type RenameUploadRequest struct {
	Name string `json:"name" validate:"required,max=255" example:"Spring launch list"`
}

type StaffRequest struct {
	StaffName  string `json:"staff_name" validate:"required,max=255" example:"Ada Lovelace"`
	StaffEmail string `json:"staff_email" validate:"required,email" example:"ada@sway.pr"`
}

type FollowUpEmailRequest struct {
	Name       string `json:"name" validate:"required"`
	Content    string `json:"content" validate:"required"`
	OutletName string `json:"outlet_name"`
	City       string `json:"city"`
}

type CoverageReportRequest struct {
	Link          string `json:"link" validate:"required,url"`
	Article       string `json:"article"`
	DateOfPublish string `json:"date_of_publish" validate:"omitempty,datetime=2006-01-02"`
}

type StaffMember struct {
	Name  string `json:"name"`
	Email string `json:"email" validate:"omitempty,email"`
}

type OutreachRequest struct {
	TargetTable  string        `json:"target_table" validate:"required,oneof=journalists media_titles"`
	OutletNames  []string      `json:"outlet_names" validate:"required,min=1,dive,required"`
	StaffMembers []StaffMember `json:"staff_members" validate:"dive"`
}

type PrepareFollowUpRequest struct {
	PressReleaseID int64   `json:"press_release_id" validate:"required"`
	StaffID        int64   `json:"staff_id"`
	UploadIDs      []int64 `json:"upload_ids"`
	Subject        string  `json:"subject"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}
