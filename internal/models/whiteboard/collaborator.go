package whiteboard

type CollaboratorRole string

const (
	CollaboratorRoleOwner  CollaboratorRole = "owner"
	CollaboratorRoleEditor CollaboratorRole = "editor"
)

// Member is a user granted access to a board, stored on the board row.
type Member struct {
	ID     string `json:"id"`
	Email  string `json:"email"`
	Name   string `json:"name,omitempty"`
	Avatar string `json:"avatar,omitempty"`
}

// Collaborator is one roster entry shown next to the board.
type Collaborator struct {
	Member
	Role CollaboratorRole `json:"role"`
}

// Roster lists the owner first, then every member as an editor in the
// order they were added.
func (w *Whiteboard) Roster() []Collaborator {
	out := make([]Collaborator, 0, len(w.Collaborators)+1)
	if w.OwnerID != "" {
		owner := Member{ID: w.OwnerID}
		for _, m := range w.Collaborators {
			if m.ID == w.OwnerID {
				owner = m
				break
			}
		}
		out = append(out, Collaborator{Member: owner, Role: CollaboratorRoleOwner})
	}
	for _, m := range w.Collaborators {
		if m.ID == w.OwnerID {
			continue
		}
		out = append(out, Collaborator{Member: m, Role: CollaboratorRoleEditor})
	}
	return out
}

// HasMember reports whether userID is the owner or a listed member.
func (w *Whiteboard) HasMember(userID string) bool {
	if userID == w.OwnerID {
		return true
	}
	for _, m := range w.Collaborators {
		if m.ID == userID {
			return true
		}
	}
	return false
}
