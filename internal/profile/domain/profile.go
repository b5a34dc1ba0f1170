package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

type ExperienceItem struct {
	Role        string `json:"role"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

type EducationItem struct {
	Degree string `json:"degree"`
	School string `json:"school"`
	Year   string `json:"year"`
}

// List fields are stored as serialized JSON blobs in a single column.

type StringList []string

func (l StringList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *StringList) Scan(src interface{}) error  { return jsonScan(src, l) }

type ExperienceList []ExperienceItem

func (l ExperienceList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *ExperienceList) Scan(src interface{}) error  { return jsonScan(src, l) }

type EducationList []EducationItem

func (l EducationList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *EducationList) Scan(src interface{}) error  { return jsonScan(src, l) }

func jsonValue(v interface{}) (driver.Value, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func jsonScan(src, dst interface{}) error {
	if src == nil {
		return nil
	}
	switch data := src.(type) {
	case []byte:
		return json.Unmarshal(data, dst)
	case string:
		return json.Unmarshal([]byte(data), dst)
	default:
		return fmt.Errorf("unsupported column type %T", src)
	}
}

// Profile holds one user's career data, keyed by the user's email. List
// fields live in jsonb columns; the resume attachment is kept as base64 so
// it round-trips to the client unchanged.
type Profile struct {
	ID        string `json:"-" gorm:"primaryKey"`
	UserEmail string `json:"-" gorm:"uniqueIndex;not null"`

	Name     string `json:"name"`
	Location string `json:"location"`
	AboutMe  string `json:"about_me"`

	Skills     StringList     `json:"skills" gorm:"type:jsonb"`
	Experience ExperienceList `json:"experience" gorm:"type:jsonb"`
	Education  EducationList  `json:"education" gorm:"type:jsonb"`

	ContactEmail string `json:"contact_email,omitempty"`
	Phone        string `json:"phone,omitempty"`
	LinkedIn     string `json:"linkedin,omitempty"`
	GitHub       string `json:"github,omitempty"`
	Portfolio    string `json:"portfolio,omitempty"`

	ResumeData     string `json:"resume_data,omitempty"`
	ResumeMimeType string `json:"resume_mime_type,omitempty"`
	ResumeName     string `json:"resume_name,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ExtractedProfile is the partial profile produced by resume parsing. Absent
// fields stay zero-valued and are skipped by the merge.
type ExtractedProfile struct {
	Name       string           `json:"name"`
	Location   string           `json:"location"`
	AboutMe    string           `json:"aboutMe"`
	Skills     []string         `json:"skills"`
	Experience []ExperienceItem `json:"experience"`
	Education  []EducationItem  `json:"education"`
}

// ResumeAttachment is the raw upload that triggered a resume parse.
type ResumeAttachment struct {
	Data     string // base64 payload
	MimeType string
	Filename string
}
