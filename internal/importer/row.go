// Package importer maps externally-parsed spreadsheet rows onto topics.
// Parsing the spreadsheet itself happens outside the core; rows arrive
// here as generic key/value maps with bilingual column names.
package importer

import (
	"math/rand"
	"strings"
	"time"

	"github.com/iliyamo/goaltrack/internal/model"
)

// DeptResolver resolves a free-text department name to an id, creating
// the department when needed.
type DeptResolver interface {
	ResolveDepartment(name string) int
}

// Bilingual column aliases accepted in import files.
var (
	idColumns         = []string{"TopicID", "معرف الموضوع"}
	titleColumns      = []string{"Title", "المهمة"}
	deptColumns       = []string{"Responsible", "المعني بالتنفيذ", "القسم", "الإدارة"}
	assignmentColumns = []string{"AssignmentDate", "تاريخ التكليف"}
	dueColumns        = []string{"DueDate", "موعد التسليم"}
	statusColumns     = []string{"Status", "الحالة"}
	detailsColumns    = []string{"Details", "التفاصيل"}
	closingColumns    = []string{"ClosingDate", "تاريخ الإغلاق"}
)

// englishStatus loosely maps lower-cased English status names onto the
// stored Arabic enum. Unrecognized values fall back to Pending.
var englishStatus = map[string]model.TopicStatus{
	"closed":    model.StatusClosed,
	"pending":   model.StatusPending,
	"ongoing":   model.StatusOngoing,
	"overdue":   model.StatusOverdue,
	"cancelled": model.StatusCancelled,
	"stalled":   model.StatusStalled,
	"postponed": model.StatusPostponed,
	"phased":    model.StatusPhased,
}

// MapRow converts one parsed spreadsheet row into a topic. Department
// names are resolved (and auto-created) through r. Missing dates
// default to today, the closing date included; existing import files
// rely on that default.
func MapRow(row map[string]any, r DeptResolver) model.Topic {
	id := asInt(pick(row, idColumns))
	if id == 0 {
		id = rand.Intn(100000)
	}
	title := asString(pick(row, titleColumns))
	if title == "" {
		title = "بدون عنوان"
	}

	return model.Topic{
		ID:             id,
		Title:          title,
		DeptID:         r.ResolveDepartment(asString(pick(row, deptColumns))),
		AssignmentDate: parseDate(pick(row, assignmentColumns)),
		DueDate:        parseDate(pick(row, dueColumns)),
		Status:         mapStatus(asString(pick(row, statusColumns))),
		Details:        asString(pick(row, detailsColumns)),
		Type:           "مستورد",
		Priority:       model.PriorityNormal,
		Sender:         "استيراد",
		LastUpdated:    time.Now().UTC().Format("2006-01-02"),
		CreatedBy:      1,
		ClosingDate:    parseDate(pick(row, closingColumns)),
	}
}

// MapRows maps a whole batch in order.
func MapRows(rows []map[string]any, r DeptResolver) []model.Topic {
	out := make([]model.Topic, 0, len(rows))
	for _, row := range rows {
		out = append(out, MapRow(row, r))
	}
	return out
}

func pick(row map[string]any, columns []string) any {
	for _, col := range columns {
		if v, ok := row[col]; ok && v != nil && v != "" {
			return v
		}
	}
	return nil
}

func asString(v any) string {
	s, _ := v.(string)
	return s
}

func asInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case float64:
		// json.Unmarshal delivers spreadsheet numbers as float64.
		return int(n)
	}
	return 0
}

// parseDate accepts either an ISO string or a numeric Excel date
// serial (days since 1899-12-30, i.e. serial-25569 days from the Unix
// epoch). Anything absent defaults to today.
func parseDate(v any) string {
	switch d := v.(type) {
	case string:
		if d != "" {
			return d
		}
	case float64:
		sec := int64((d - 25569) * 86400)
		return time.Unix(sec, 0).UTC().Format("2006-01-02")
	case int:
		sec := int64(d-25569) * 86400
		return time.Unix(sec, 0).UTC().Format("2006-01-02")
	}
	return time.Now().UTC().Format("2006-01-02")
}

func mapStatus(v string) model.TopicStatus {
	if v == "" {
		return model.StatusPending
	}
	trimmed := strings.TrimSpace(v)
	if model.ValidStatus(model.TopicStatus(trimmed)) {
		return model.TopicStatus(trimmed)
	}
	if st, ok := englishStatus[strings.ToLower(trimmed)]; ok {
		return st
	}
	return model.StatusPending
}
