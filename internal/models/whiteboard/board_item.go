package whiteboard

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

// BoardItem is the stored row of one Item. Points live in their own jsonb
// column, every other attribute in Attributes.
type BoardItem struct {
	ID         uint           `json:"-" gorm:"primaryKey"`
	BoardID    string         `json:"board_id" gorm:"type:varchar(36);not null;uniqueIndex:idx_board_item"`
	ItemID     string         `json:"item_id" gorm:"type:varchar(64);not null;uniqueIndex:idx_board_item"`
	Type       ItemType       `json:"type" gorm:"type:varchar(16);not null"`
	Points     Points         `json:"points" gorm:"type:jsonb"`
	Attributes datatypes.JSON `json:"attributes"`
	ZOrder     int            `json:"z_order" gorm:"column:z_order;index"`
	UpdatedBy  string         `json:"updated_by"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

func (BoardItem) TableName() string {
	return "board_items"
}

// NewBoardItem converts an Item into its row form.
func NewBoardItem(boardID string, item Item, zOrder int) (*BoardItem, error) {
	attrs := item.Clone()
	attrs.Points = nil
	raw, err := json.Marshal(attrs)
	if err != nil {
		return nil, err
	}
	updatedBy := item.LastEditedBy
	if updatedBy == "" {
		updatedBy = item.CreatedBy
	}
	return &BoardItem{
		BoardID:    boardID,
		ItemID:     item.ID,
		Type:       item.Type,
		Points:     item.Points.Clone(),
		Attributes: datatypes.JSON(raw),
		ZOrder:     zOrder,
		UpdatedBy:  updatedBy,
	}, nil
}

// ToItem rebuilds the Item stored in the row.
func (bi *BoardItem) ToItem() (Item, error) {
	var item Item
	if len(bi.Attributes) > 0 {
		if err := json.Unmarshal(bi.Attributes, &item); err != nil {
			return Item{}, err
		}
	}
	item.ID = bi.ItemID
	item.Type = bi.Type
	item.Points = bi.Points.Clone()
	return item, nil
}
