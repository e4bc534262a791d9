package models

// Template davetiyelerin kullandığı tema varlıklarını tanımlar.
// Bir davetiye tarafından kullanılırken silinemez (RESTRICT).
type Template struct {
	BaseModel
	Name          string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	ThumbnailPath string `gorm:"type:varchar(255)" json:"thumbnail_path"`
	HTMLPath      string `gorm:"type:varchar(255);not null" json:"html_path"`
	CSSPath       string `gorm:"type:varchar(255)" json:"css_path"`
	JSPath        string `gorm:"type:varchar(255)" json:"js_path"`
	IsActive      bool   `gorm:"not null;index" json:"is_active"`
}
