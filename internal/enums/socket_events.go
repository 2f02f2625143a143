package enums

const (
	SOCKET_EVENT_UPSERT_ITEM   = "item_upserted"
	SOCKET_EVENT_DELETE_ITEM   = "item_deleted"
	SOCKET_EVENT_REORDER_ITEMS = "items_reordered"
	SOCKET_EVENT_CURSOR_MOVED  = "cursor_moved"
	SOCKET_EVENT_PRESENCE_LEFT = "presence_left"
	SOCKET_EVENT_SAVE_BOARD    = "save_board"
	SOCKET_EVENT_BOARD_SAVED   = "board_saved"
	SOCKET_EVENT_ERROR         = "error"
)
