package repositories

import (
	"time"

	"github.com/pkg/errors"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"socketBoard/internal/errs"
	"socketBoard/internal/models/whiteboard"
)

type WhiteboardRepository struct {
	db *gorm.DB
}

func NewWhiteboardRepository(db *gorm.DB) *WhiteboardRepository {
	return &WhiteboardRepository{
		db: db,
	}
}

func (wr *WhiteboardRepository) CreateWhiteboard(board *whiteboard.Whiteboard) (*whiteboard.Whiteboard, error) {
	result := wr.db.Create(board)
	if err := result.Error; err != nil {
		return nil, errors.Wrap(err, "create whiteboard")
	}
	return board, nil
}

func (wr *WhiteboardRepository) FindWhiteboard(id string) (*whiteboard.Whiteboard, error) {
	var board whiteboard.Whiteboard
	err := wr.db.Where("id = ?", id).First(&board).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrWhiteboardNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "find whiteboard %s", id)
	}
	return &board, nil
}

func (wr *WhiteboardRepository) ListWhiteboards(ownerID string) ([]whiteboard.Whiteboard, error) {
	var boards []whiteboard.Whiteboard
	query := wr.db.Order("is_favorite DESC").Order("updated_at DESC")
	if ownerID != "" {
		query = query.Where("owner_id = ?", ownerID)
	}
	if err := query.Find(&boards).Error; err != nil {
		return nil, errors.Wrap(err, "list whiteboards")
	}
	return boards, nil
}

// TouchWhiteboard records that the board was opened.
func (wr *WhiteboardRepository) TouchWhiteboard(id string, at time.Time) error {
	result := wr.db.Model(&whiteboard.Whiteboard{}).Where("id = ?", id).
		UpdateColumn("last_accessed_at", at)
	if err := result.Error; err != nil {
		return errors.Wrapf(err, "touch whiteboard %s", id)
	}
	if result.RowsAffected == 0 {
		return errs.ErrWhiteboardNotFound
	}
	return nil
}

func (wr *WhiteboardRepository) ToggleFavorite(id string) (*whiteboard.Whiteboard, error) {
	var board whiteboard.Whiteboard
	err := wr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&board).Error; err != nil {
			return err
		}
		board.IsFavorite = !board.IsFavorite
		return tx.Model(&board).Update("is_favorite", board.IsFavorite).Error
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrWhiteboardNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "toggle favorite %s", id)
	}
	return &board, nil
}

// UpdateCollaborators rewrites the board's member list with edit inside a
// transaction. Errors from edit are returned as is.
func (wr *WhiteboardRepository) UpdateCollaborators(id string, edit func(board *whiteboard.Whiteboard) error) (*whiteboard.Whiteboard, error) {
	var board whiteboard.Whiteboard
	var editErr error
	err := wr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&board).Error; err != nil {
			return err
		}
		if editErr = edit(&board); editErr != nil {
			return editErr
		}
		return tx.Model(&board).Update("collaborators", board.Collaborators).Error
	})
	if editErr != nil {
		return nil, editErr
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errs.ErrWhiteboardNotFound
	}
	if err != nil {
		return nil, errors.Wrapf(err, "update collaborators of %s", id)
	}
	return &board, nil
}

// ListItems returns the board's rows bottom to top.
func (wr *WhiteboardRepository) ListItems(boardID string) ([]whiteboard.BoardItem, error) {
	var rows []whiteboard.BoardItem
	err := wr.db.Where("board_id = ?", boardID).Order("z_order ASC").Order("id ASC").Find(&rows).Error
	if err != nil {
		return nil, errors.Wrapf(err, "list items of %s", boardID)
	}
	return rows, nil
}

// UpsertItem inserts the row on top of the board or overwrites the stored
// one wholesale, keeping its place in the z-order. The last write wins.
func (wr *WhiteboardRepository) UpsertItem(row *whiteboard.BoardItem) error {
	return wr.db.Transaction(func(tx *gorm.DB) error {
		var top struct{ Z *int }
		if err := tx.Model(&whiteboard.BoardItem{}).Select("MAX(z_order) AS z").
			Where("board_id = ?", row.BoardID).Scan(&top).Error; err != nil {
			return errors.Wrap(err, "next z order")
		}
		row.ZOrder = 0
		if top.Z != nil {
			row.ZOrder = *top.Z + 1
		}
		err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "board_id"}, {Name: "item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"type", "points", "attributes", "updated_by", "updated_at"}),
		}).Create(row).Error
		return errors.Wrapf(err, "upsert item %s", row.ItemID)
	})
}

func (wr *WhiteboardRepository) DeleteItem(boardID, itemID string) error {
	result := wr.db.Where("board_id = ? AND item_id = ?", boardID, itemID).Delete(&whiteboard.BoardItem{})
	if err := result.Error; err != nil {
		return errors.Wrapf(err, "delete item %s", itemID)
	}
	if result.RowsAffected == 0 {
		return errs.ErrItemNotFound
	}
	return nil
}

// ReorderItems restacks the board with the listed items at the bottom in
// the given order. Unknown ids are skipped; unlisted rows keep their
// relative order above them.
func (wr *WhiteboardRepository) ReorderItems(boardID string, itemIDs []string) error {
	return wr.db.Transaction(func(tx *gorm.DB) error {
		var rows []whiteboard.BoardItem
		if err := tx.Where("board_id = ?", boardID).Order("z_order ASC").Order("id ASC").Find(&rows).Error; err != nil {
			return errors.Wrap(err, "load items")
		}
		byID := make(map[string]int, len(rows))
		for i, row := range rows {
			byID[row.ItemID] = i
		}
		ordered := make([]int, 0, len(rows))
		placed := make(map[int]bool, len(rows))
		for _, id := range itemIDs {
			i, ok := byID[id]
			if !ok || placed[i] {
				continue
			}
			placed[i] = true
			ordered = append(ordered, i)
		}
		for i := range rows {
			if !placed[i] {
				ordered = append(ordered, i)
			}
		}
		for z, i := range ordered {
			if rows[i].ZOrder == z {
				continue
			}
			err := tx.Model(&whiteboard.BoardItem{}).Where("id = ?", rows[i].ID).UpdateColumn("z_order", z).Error
			if err != nil {
				return errors.Wrapf(err, "reorder item %s", rows[i].ItemID)
			}
		}
		return nil
	})
}

// ReplaceItems stores rows as the complete content of the board, in their
// slice order.
func (wr *WhiteboardRepository) ReplaceItems(boardID string, rows []whiteboard.BoardItem) error {
	return wr.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("board_id = ?", boardID).Delete(&whiteboard.BoardItem{}).Error; err != nil {
			return errors.Wrap(err, "clear items")
		}
		for i := range rows {
			rows[i].ID = 0
			rows[i].BoardID = boardID
			rows[i].ZOrder = i
		}
		if len(rows) > 0 {
			if err := tx.CreateInBatches(rows, 100).Error; err != nil {
				return errors.Wrap(err, "insert items")
			}
		}
		result := tx.Model(&whiteboard.Whiteboard{}).Where("id = ?", boardID).Update("updated_at", time.Now())
		if err := result.Error; err != nil {
			return errors.Wrap(err, "touch whiteboard")
		}
		if result.RowsAffected == 0 {
			return errs.ErrWhiteboardNotFound
		}
		return nil
	})
}
