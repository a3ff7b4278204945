package models

import "time"

type TodoState string

const (
	TodoDraft TodoState = "draft"
	TodoDoing TodoState = "doing"
	TodoDone  TodoState = "done"
	TodoTrash TodoState = "trash"
)

// Valid reports whether s is one of the enumerated states.
func (s TodoState) Valid() bool {
	switch s {
	case TodoDraft, TodoDoing, TodoDone, TodoTrash:
		return true
	}
	return false
}

type Todo struct {
	ID          uint      `gorm:"primarykey"`
	Title       string    `gorm:"not null"`
	Description string    `gorm:"not null"`
	State       TodoState `gorm:"type:varchar(16);not null;check:chk_todos_state,state IN ('draft','doing','done','trash')"`
	UserID      uint      `gorm:"not null;index"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Relationships
	User *User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TodoPatch carries a partial update. Nil fields are left untouched.
type TodoPatch struct {
	Title       *string
	Description *string
	State       *TodoState
}

// Apply merges the supplied fields into t and reports whether anything was set.
func (p TodoPatch) Apply(t *Todo) bool {
	changed := false

	if p.Title != nil {
		t.Title = *p.Title
		changed = true
	}
	if p.Description != nil {
		t.Description = *p.Description
		changed = true
	}
	if p.State != nil {
		t.State = *p.State
		changed = true
	}

	return changed
}
