package recruitment

import "time"

// Posting statuses.
const (
	PostingOpen   = "open"
	PostingClosed = "closed"
	PostingFilled = "filled"
)

// Application statuses.
const (
	ApplicationPending   = "pending"
	ApplicationReviewed  = "reviewed"
	ApplicationInterview = "interview"
	ApplicationAccepted  = "accepted"
	ApplicationRejected  = "rejected"
)

type Posting struct {
	ID             int64      `json:"id"`
	Title          string     `json:"title"`
	DepartmentID   *int64     `json:"department_id,omitempty"`
	JobTitleID     *int64     `json:"job_title_id,omitempty"`
	Description    string     `json:"description,omitempty"`
	Requirements   string     `json:"requirements,omitempty"`
	Vacancies      int        `json:"vacancies"`
	SalaryRange    string     `json:"salary_range,omitempty"`
	EmploymentType string     `json:"employment_type,omitempty"`
	Location       string     `json:"location,omitempty"`
	Status         string     `json:"status"`
	PostedDate     time.Time  `json:"posted_date"`
	ClosingDate    *time.Time `json:"closing_date,omitempty"`
	CreatedBy      *int64     `json:"created_by,omitempty"`
	DepartmentName string     `json:"department_name,omitempty"`
	JobTitleName   string     `json:"job_title_name,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

type Application struct {
	ID              int64      `json:"id"`
	JobPostingID    int64      `json:"job_posting_id"`
	ApplicantName   string     `json:"applicant_name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone,omitempty"`
	ResumeFile      string     `json:"resume_file,omitempty"`
	CoverLetter     string     `json:"cover_letter,omitempty"`
	ExperienceYears *int       `json:"experience_years,omitempty"`
	Education       string     `json:"education,omitempty"`
	Status          string     `json:"status"`
	InterviewDate   *time.Time `json:"interview_date,omitempty"`
	InterviewNotes  string     `json:"interview_notes,omitempty"`
	AppliedDate     time.Time  `json:"applied_date"`
	ReviewedBy      *int64     `json:"reviewed_by,omitempty"`
	ReviewedDate    *time.Time `json:"reviewed_date,omitempty"`
	PostingTitle    string     `json:"posting_title,omitempty"`
}

type PostingFilter struct {
	Status       string
	DepartmentID int64
	// PublicOnly restricts results to open postings for the unauthenticated
	// careers listing.
	PublicOnly bool
}
