// Package model defines the entities held by the data store. The json
// tags follow the historical camelCase field names so that blobs and
// backup files written by earlier versions of the system load unchanged.
package model

// Topic is a tracked task assigned to a department. Dates are plain
// ISO (YYYY-MM-DD) strings; comparing them lexicographically is correct
// because of the fixed-width format. ClosingDate is empty unless the
// topic is closed.
type Topic struct {
	ID             int           `json:"id"`
	Title          string        `json:"title"`
	Type           string        `json:"type"`
	AssignmentDate string        `json:"assignmentDate"`
	Sender         string        `json:"sender"`
	DeptID         int           `json:"deptId"`
	Priority       PriorityLevel `json:"priority"`
	DueDate        string        `json:"dueDate"`
	Details        string        `json:"details"`
	Status         TopicStatus   `json:"status"`
	LastUpdated    string        `json:"lastUpdated"`
	CreatedBy      int           `json:"createdBy"`
	ClosingDate    string        `json:"closingDate,omitempty"`
}

// TopicPatch carries a partial update for a topic. Nil fields are left
// untouched; pointing ClosingDate at an empty string clears it.
type TopicPatch struct {
	Title          *string        `json:"title"`
	Type           *string        `json:"type"`
	AssignmentDate *string        `json:"assignmentDate"`
	Sender         *string        `json:"sender"`
	DeptID         *int           `json:"deptId"`
	Priority       *PriorityLevel `json:"priority"`
	DueDate        *string        `json:"dueDate"`
	Details        *string        `json:"details"`
	Status         *TopicStatus   `json:"status"`
	ClosingDate    *string        `json:"closingDate"`
}

// Followup is a dated progress check-in against a topic. ProgressLevel
// and ResultText are free text typed by the evaluator; the store scans
// them to drive status transitions.
type Followup struct {
	ID            int    `json:"id"`
	TopicID       int    `json:"topicId"`
	Date          string `json:"date"`
	Type          string `json:"type"`
	Notes         string `json:"notes"`
	ProgressLevel string `json:"progressLevel"`
	EvaluatorID   int    `json:"evaluatorId"`
	ResultText    string `json:"resultText"`
}

// Department is an organizational unit. Name doubles as the natural key
// for deduplication during import (trimmed, case-insensitive).
type Department struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	TelegramChatID string `json:"telegramChatId,omitempty"`
}

// DepartmentPatch is a partial update for a department.
type DepartmentPatch struct {
	Name           *string `json:"name"`
	Email          *string `json:"email"`
	TelegramChatID *string `json:"telegramChatId"`
}

// User is an account that can log in. User id 1 is the protected root
// admin and can never be deleted.
type User struct {
	ID       int      `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Role     UserRole `json:"role"`
	DeptID   int      `json:"deptId,omitempty"`
	IsActive bool     `json:"isActive"`
}

// UserPatch is a partial update for a user.
type UserPatch struct {
	Name     *string   `json:"name"`
	Email    *string   `json:"email"`
	Role     *UserRole `json:"role"`
	DeptID   *int      `json:"deptId"`
	IsActive *bool     `json:"isActive"`
}

// LogEntry is one audit record. UserName is a snapshot of the actor's
// name at the time of the action, kept even if the user is later
// renamed or deleted.
type LogEntry struct {
	ID        string `json:"id"`
	Action    string `json:"action"`
	Details   string `json:"details"`
	UserID    int    `json:"userId"`
	UserName  string `json:"userName"`
	Timestamp string `json:"timestamp"`
}

// Stats summarizes the topic collection for the dashboard.
type Stats struct {
	Total     int `json:"total"`
	Completed int `json:"completed"`
	Pending   int `json:"pending"`
	Overdue   int `json:"overdue"`
}

// Snapshot is the full backup payload: every collection plus the
// Telegram token and a schema version tag.
type Snapshot struct {
	Topics        []Topic      `json:"topics"`
	Followups     []Followup   `json:"followups"`
	Departments   []Department `json:"departments"`
	Users         []User       `json:"users"`
	AuditLogs     []LogEntry   `json:"auditLogs"`
	TelegramToken string       `json:"telegramToken"`
	Timestamp     string       `json:"timestamp"`
	Version       string       `json:"version"`
}

// SnapshotVersion tags exported backups.
const SnapshotVersion = "2.1"

// SeedDepartments returns the four departments present on a fresh
// installation.
func SeedDepartments() []Department {
	return []Department{
		{ID: 1, Name: "الإدارة العامة", Email: "admin@company.com"},
		{ID: 2, Name: "قسم التطوير", Email: "dev@company.com"},
		{ID: 3, Name: "قسم الدعم الفني", Email: "support@company.com"},
		{ID: 4, Name: "الموارد البشرية", Email: "hr@company.com"},
	}
}

// SeedUsers returns the single default admin account.
func SeedUsers() []User {
	return []User{
		{ID: 1, Name: "مدير النظام", Email: "admin@company.com", Role: RoleAdmin, DeptID: 1, IsActive: true},
	}
}
