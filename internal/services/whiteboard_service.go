package services

import (
	"log"
	"strings"
	"time"

	"socketBoard/internal/errs"
	"socketBoard/internal/models/whiteboard"
	"socketBoard/internal/repositories"
)

type WhiteboardService struct {
	whiteboardRepo *repositories.WhiteboardRepository
	now            func() time.Time
}

func NewWhiteboardService(whiteboardRepo *repositories.WhiteboardRepository) *WhiteboardService {
	return &WhiteboardService{
		whiteboardRepo: whiteboardRepo,
		now:            time.Now,
	}
}

func (ws *WhiteboardService) CreateWhiteboard(req *whiteboard.CreateWhiteboardRequest) (*whiteboard.Whiteboard, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errs.ErrBoardNameEmpty
	}
	return ws.whiteboardRepo.CreateWhiteboard(&whiteboard.Whiteboard{
		Name:      name,
		OwnerID:   req.OwnerID,
		BoardType: req.BoardType,
	})
}

func (ws *WhiteboardService) FindWhiteboard(id string) (*whiteboard.Whiteboard, error) {
	return ws.whiteboardRepo.FindWhiteboard(id)
}

// GetWhiteboard loads the board with its items and records the access.
func (ws *WhiteboardService) GetWhiteboard(id string) (*whiteboard.BoardWithItems, error) {
	board, err := ws.whiteboardRepo.FindWhiteboard(id)
	if err != nil {
		return nil, err
	}
	items, err := ws.Items(id)
	if err != nil {
		return nil, err
	}
	now := ws.now()
	if err := ws.whiteboardRepo.TouchWhiteboard(id, now); err != nil {
		log.Printf("[WhiteboardService] touch %s: %v", id, err)
	} else {
		board.LastAccessedAt = &now
	}
	return &whiteboard.BoardWithItems{Whiteboard: *board, Items: items}, nil
}

func (ws *WhiteboardService) ListWhiteboards(ownerID string) ([]whiteboard.Whiteboard, error) {
	return ws.whiteboardRepo.ListWhiteboards(ownerID)
}

func (ws *WhiteboardService) ToggleFavorite(id string) (*whiteboard.Whiteboard, error) {
	return ws.whiteboardRepo.ToggleFavorite(id)
}

// Collaborators returns the board's roster, owner first.
func (ws *WhiteboardService) Collaborators(id string) ([]whiteboard.Collaborator, error) {
	board, err := ws.whiteboardRepo.FindWhiteboard(id)
	if err != nil {
		return nil, err
	}
	return board.Roster(), nil
}

// AddCollaborator grants member edit access to the board.
func (ws *WhiteboardService) AddCollaborator(id string, req *whiteboard.AddCollaboratorRequest) ([]whiteboard.Collaborator, error) {
	member := whiteboard.Member{
		ID:     strings.TrimSpace(req.UserID),
		Email:  strings.TrimSpace(req.Email),
		Name:   strings.TrimSpace(req.Name),
		Avatar: req.Avatar,
	}
	if member.ID == "" {
		return nil, errs.ErrInvalidUserId
	}
	if member.Name == "" {
		member.Name = member.Email
	}
	board, err := ws.whiteboardRepo.UpdateCollaborators(id, func(board *whiteboard.Whiteboard) error {
		if board.HasMember(member.ID) {
			return errs.ErrAlreadyCollaborator
		}
		board.Collaborators = append(board.Collaborators, member)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return board.Roster(), nil
}

// RemoveCollaborator revokes a member's access. The owner cannot be removed.
func (ws *WhiteboardService) RemoveCollaborator(id, userID string) ([]whiteboard.Collaborator, error) {
	board, err := ws.whiteboardRepo.UpdateCollaborators(id, func(board *whiteboard.Whiteboard) error {
		if userID == board.OwnerID {
			return errs.ErrCannotRemoveOwner
		}
		kept := board.Collaborators[:0]
		for _, m := range board.Collaborators {
			if m.ID != userID {
				kept = append(kept, m)
			}
		}
		if len(kept) == len(board.Collaborators) {
			return errs.ErrCollaboratorNotFound
		}
		board.Collaborators = kept
		return nil
	})
	if err != nil {
		return nil, err
	}
	return board.Roster(), nil
}

// Items returns the stored items bottom to top. Rows that no longer decode
// are skipped.
func (ws *WhiteboardService) Items(boardID string) ([]whiteboard.Item, error) {
	rows, err := ws.whiteboardRepo.ListItems(boardID)
	if err != nil {
		return nil, err
	}
	items := make([]whiteboard.Item, 0, len(rows))
	for i := range rows {
		item, err := rows[i].ToItem()
		if err != nil {
			log.Printf("[WhiteboardService] skip item %s of %s: %v", rows[i].ItemID, boardID, err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// SaveItems stores items as the whole content of the board.
func (ws *WhiteboardService) SaveItems(boardID string, items []whiteboard.Item) error {
	if _, err := ws.whiteboardRepo.FindWhiteboard(boardID); err != nil {
		return err
	}
	rows := make([]whiteboard.BoardItem, 0, len(items))
	seen := make(map[string]bool, len(items))
	for i, item := range items {
		if err := validateItem(item); err != nil {
			return err
		}
		if seen[item.ID] {
			return errs.ErrInvalidItem
		}
		seen[item.ID] = true
		row, err := whiteboard.NewBoardItem(boardID, item, i)
		if err != nil {
			return errs.ErrInvalidItem
		}
		row.UpdatedAt = ws.now()
		rows = append(rows, *row)
	}
	return ws.whiteboardRepo.ReplaceItems(boardID, rows)
}

// UpsertItem stores a single item. A concurrent write to the same item is
// overwritten by whichever arrives last.
func (ws *WhiteboardService) UpsertItem(boardID string, item whiteboard.Item) error {
	if err := validateItem(item); err != nil {
		return err
	}
	row, err := whiteboard.NewBoardItem(boardID, item, 0)
	if err != nil {
		return errs.ErrInvalidItem
	}
	row.UpdatedAt = ws.now()
	return ws.whiteboardRepo.UpsertItem(row)
}

func (ws *WhiteboardService) DeleteItem(boardID, itemID string) error {
	if itemID == "" {
		return errs.ErrInvalidItem
	}
	return ws.whiteboardRepo.DeleteItem(boardID, itemID)
}

// ReorderItems stores a new stacking order, ids bottom to top.
func (ws *WhiteboardService) ReorderItems(boardID string, itemIDs []string) error {
	if len(itemIDs) == 0 {
		return errs.ErrInvalidRequestBody
	}
	return ws.whiteboardRepo.ReorderItems(boardID, itemIDs)
}

func validateItem(item whiteboard.Item) error {
	if item.ID == "" {
		return errs.ErrInvalidItem
	}
	if _, err := whiteboard.ParseItemType(string(item.Type)); err != nil {
		return errs.ErrInvalidItem
	}
	return nil
}
