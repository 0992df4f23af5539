package store

import (
	"fmt"
	"strings"

	"github.com/iliyamo/goaltrack/internal/model"
)

// Departments returns a snapshot copy of all departments.
func (s *Store) Departments() []model.Department {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Department, len(s.departments))
	copy(out, s.departments)
	return out
}

// DepartmentByID looks a department up by id.
func (s *Store) DepartmentByID(id int) (model.Department, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.departments {
		if d.ID == id {
			return d, true
		}
	}
	return model.Department{}, false
}

// ResolveDepartment maps a free-text department name to an id, creating
// the department on the fly when the name is unseen. Matching trims and
// ignores case; empty input resolves to the default department (id 1)
// without creating anything. The max id is recomputed on every call so
// a batch that introduces several new names hands out distinct ids.
func (s *Store) ResolveDepartment(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.resolveDepartment(name)
}

func (s *Store) resolveDepartment(name string) int {
	if name == "" {
		return 1
	}
	trimmed := strings.TrimSpace(name)
	for _, d := range s.departments {
		if strings.EqualFold(strings.TrimSpace(d.Name), trimmed) {
			return d.ID
		}
	}

	maxID := 0
	for _, d := range s.departments {
		if d.ID > maxID {
			maxID = d.ID
		}
	}
	dept := model.Department{ID: maxID + 1, Name: trimmed}
	s.departments = append(s.departments, dept)
	s.save(keyDepartments, s.departments)
	s.logAction("إضافة إدارة", fmt.Sprintf("إضافة إدارة جديدة: %s", trimmed))
	return dept.ID
}

// UpdateDepartment merges a partial patch onto a department record.
func (s *Store) UpdateDepartment(id int, p model.DepartmentPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.departments {
		if s.departments[i].ID != id {
			continue
		}
		d := &s.departments[i]
		if p.Name != nil {
			d.Name = *p.Name
		}
		if p.Email != nil {
			d.Email = *p.Email
		}
		if p.TelegramChatID != nil {
			d.TelegramChatID = *p.TelegramChatID
		}
		break
	}
	s.save(keyDepartments, s.departments)
	s.logAction("تحديث إدارة", fmt.Sprintf("تحديث بيانات الإدارة رقم %d", id))
}
