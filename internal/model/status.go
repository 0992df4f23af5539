package model

// TopicStatus is the lifecycle state of a topic. The values are the
// Arabic labels used throughout the stored data; they must not be
// changed, otherwise existing blobs and backups stop matching.
type TopicStatus string

const (
	StatusPending   TopicStatus = "قيد المتابعة"
	StatusClosed    TopicStatus = "مغلقة"
	StatusOverdue   TopicStatus = "متأخرة"
	StatusOngoing   TopicStatus = "مستمر"
	StatusCancelled TopicStatus = "ملغية"
	StatusPhased    TopicStatus = "مرحلة"
	StatusPostponed TopicStatus = "مؤجلة"
	StatusStalled   TopicStatus = "متوقفة"
)

// AllStatuses lists every known status value.
var AllStatuses = []TopicStatus{
	StatusPending, StatusClosed, StatusOverdue, StatusOngoing,
	StatusCancelled, StatusPhased, StatusPostponed, StatusStalled,
}

// ValidStatus reports whether s is one of the known status values.
func ValidStatus(s TopicStatus) bool {
	for _, v := range AllStatuses {
		if v == s {
			return true
		}
	}
	return false
}

// PriorityLevel is the urgency of a topic, again carrying the Arabic
// label as its stored value.
type PriorityLevel string

const (
	PriorityLow    PriorityLevel = "منخفض"
	PriorityNormal PriorityLevel = "عادي"
	PriorityHigh   PriorityLevel = "مهم"
	PriorityUrgent PriorityLevel = "عاجل"
)

// UserRole describes what a user is allowed to do.
type UserRole string

const (
	RoleAdmin   UserRole = "مدير النظام"
	RoleManager UserRole = "مدير إدارة"
	RoleUser    UserRole = "مستخدم"
)
