package whiteboard

type CreateWhiteboardRequest struct {
	Name      string    `json:"name"`
	OwnerID   string    `json:"owner_id"`
	BoardType BoardType `json:"whiteboard_type"`
}

type SaveItemsRequest struct {
	Items    []Item `json:"items"`
	EditorID string `json:"editor_id"`
}

type AddCollaboratorRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}
