package compliance

import "time"

type DocumentTemplate struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
	Version     int    `json:"version"`
}

type TemplateRequirement struct {
	ID                  string `json:"id"`
	TemplateID          string `json:"templateId"`
	DocumentName        string `json:"documentName"`
	DocumentType        string `json:"documentType"`
	IsRequired          bool   `json:"isRequired"`
	RequiresExpiry      bool   `json:"requiresExpiry"`
	DefaultValidityDays *int   `json:"defaultValidityDays,omitempty"`
	MaxFileSizeMB       int    `json:"maxFileSizeMb"`
	DisplayOrder        int    `json:"displayOrder"`
}

// TemplateAssignment binds a template to exactly one targeting dimension:
// a single employee, a role, or a team. Rows with zero or multiple targets
// can still arrive from the catalog; TargetKind reports them as invalid.
type TemplateAssignment struct {
	ID         string `json:"id"`
	TemplateID string `json:"templateId"`
	EmployeeID string `json:"employeeId,omitempty"`
	Role       string `json:"role,omitempty"`
	TeamID     string `json:"teamId,omitempty"`
}

type Employee struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Email   string   `json:"email"`
	Role    string   `json:"role"`
	TeamIDs []string `json:"teamIds"`
}

type EmployeeDocumentRecord struct {
	ID            string     `json:"id"`
	EmployeeID    string     `json:"employeeId"`
	RequirementID string     `json:"requirementId"`
	FileRef       string     `json:"fileRef"`
	FileName      string     `json:"fileName"`
	FileType      string     `json:"fileType"`
	FileSizeBytes int64      `json:"fileSizeBytes"`
	UploaderID    string     `json:"uploaderId"`
	UploaderName  string     `json:"uploaderName"`
	Notes         string     `json:"notes,omitempty"`
	UploadedAt    time.Time  `json:"uploadedAt"`
	ExpiryDate    *time.Time `json:"expiryDate,omitempty"`
	IsVerified    bool       `json:"isVerified"`
	VerifiedBy    string     `json:"verifiedBy,omitempty"`
	VerifiedAt    *time.Time `json:"verifiedAt,omitempty"`
}

// ComplianceEntry is the evaluated state of one (employee, requirement)
// pair. Entries are derived per query and never persisted.
type ComplianceEntry struct {
	EmployeeID    string     `json:"employeeId"`
	RequirementID string     `json:"requirementId"`
	TemplateName  string     `json:"templateName"`
	DocumentName  string     `json:"documentName"`
	DocumentType  string     `json:"documentType"`
	IsRequired    bool       `json:"isRequired"`
	Status        string     `json:"status"`
	ExpiryDate    *time.Time `json:"expiryDate,omitempty"`
	UploadedAt    *time.Time `json:"uploadedAt,omitempty"`
	IsVerified    bool       `json:"isVerified"`
	VerifiedAt    *time.Time `json:"verifiedAt,omitempty"`
	FileRef       string     `json:"fileRef,omitempty"`
	FileName      string     `json:"fileName,omitempty"`
	UploaderName  string     `json:"uploaderName,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

type TemplateGroup struct {
	TemplateName string                `json:"templateName"`
	Requirements []TemplateRequirement `json:"requirements"`
}

type Stats struct {
	Compliant           int     `json:"compliant"`
	Missing             int     `json:"missing"`
	Expired             int     `json:"expired"`
	ExpiringSoon        int     `json:"expiringSoon"`
	PendingVerification int     `json:"pendingVerification"`
	TotalRequired       int     `json:"totalRequired"`
	TotalTracked        int     `json:"totalTracked"`
	ComplianceRate      float64 `json:"complianceRate"`
}

// ComplianceMatrix is the full employee x requirement grid. Entries is
// keyed by employee id, then requirement id. Rates holds the per-employee
// required-document compliance percentage used for row progress bars.
type ComplianceMatrix struct {
	AsOf      time.Time                             `json:"asOf"`
	Employees []Employee                            `json:"employees"`
	Groups    []TemplateGroup                       `json:"groups"`
	Entries   map[string]map[string]ComplianceEntry `json:"entries"`
	Rates     map[string]float64                    `json:"rates"`
	Stats     Stats                                 `json:"stats"`
	Warnings  []Warning                             `json:"warnings,omitempty"`
}

// Warning is a non-fatal data-integrity finding reported alongside a
// successful result.
type Warning struct {
	Code      string `json:"code"`
	SubjectID string `json:"subjectId"`
	Message   string `json:"message"`
}

// Snapshot is one consistent read of the three collaborator sources. The
// engine treats it as immutable for the duration of a computation.
type Snapshot struct {
	Employees    []Employee
	Templates    []DocumentTemplate
	Requirements []TemplateRequirement
	Assignments  []TemplateAssignment
	Records      []EmployeeDocumentRecord
}
