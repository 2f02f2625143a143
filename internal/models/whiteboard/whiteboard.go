package whiteboard

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BoardStatus string

const (
	BoardStatusActive   BoardStatus = "active"
	BoardStatusArchived BoardStatus = "archived"
	BoardStatusDraft    BoardStatus = "draft"
)

type BoardType string

const (
	BoardTypeTasks   BoardType = "tasks"
	BoardTypePlans   BoardType = "plans"
	BoardTypeJourney BoardType = "journey"
)

type Whiteboard struct {
	ID             string                      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name           string                      `json:"name" gorm:"not null"`
	OwnerID        string                      `json:"owner_id" gorm:"index"`
	IsFavorite     bool                        `json:"is_favorite" gorm:"default:false"`
	Status         BoardStatus                 `json:"status" gorm:"type:varchar(16);default:active"`
	BoardType      BoardType                   `json:"whiteboard_type" gorm:"type:varchar(16);default:tasks"`
	Collaborators  datatypes.JSONSlice[Member] `json:"collaborators"`
	Items          []BoardItem                 `json:"-" gorm:"foreignKey:BoardID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt      time.Time                   `json:"created_at"`
	UpdatedAt      time.Time                   `json:"updated_at"`
	LastAccessedAt *time.Time                  `json:"last_accessed_at"`
	DeletedAt      gorm.DeletedAt              `json:"-" gorm:"index"`
}

func (w *Whiteboard) BeforeCreate(tx *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	if w.Status == "" {
		w.Status = BoardStatusActive
	}
	if w.BoardType == "" {
		w.BoardType = BoardTypeTasks
	}
	if w.Collaborators == nil {
		w.Collaborators = datatypes.JSONSlice[Member]{}
	}
	return nil
}

// BoardWithItems is the read model returned to clients opening a board.
type BoardWithItems struct {
	Whiteboard
	Items []Item `json:"items"`
}
