package model

// ReportArchive records a generated document uploaded to storage.
// swagger:model ReportArchive
type ReportArchive struct {
	UUIDBase
	Kind      string `gorm:"size:32;index" json:"kind"`
	Reference string `gorm:"size:64;index" json:"reference"`
	Filename  string `gorm:"size:255" json:"filename"`
	URL       string `gorm:"size:512" json:"url"`
	Size      int64  `json:"size"`
	CreatedBy uint   `gorm:"index" json:"createdBy"`
}

func (ReportArchive) TableName() string {
	return "report_archives"
}
