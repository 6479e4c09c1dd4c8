package entity

import "time"

// Project is a named crawling configuration namespace, typically one bot
// deployment. Projects are created at deploy time and never mutated here.
type Project struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}

// VersionStatus marks a version as deployable or soft-deleted.
type VersionStatus int16

const (
	VersionStatusDeleted VersionStatus = 0
	VersionStatusAdded   VersionStatus = 1
)

func (s VersionStatus) String() string {
	switch s {
	case VersionStatusDeleted:
		return "deleted"
	case VersionStatusAdded:
		return "added"
	}
	return "unknown"
}

// Version is an immutable snapshot of deployable crawler code/config under a
// project. Number is monotonically increasing per project, starting at 1.
// Deletion is soft: the row is kept while jobs reference it.
type Version struct {
	ID        int64
	ProjectID int64
	Number    int
	Status    VersionStatus
	CreatedAt time.Time
}
