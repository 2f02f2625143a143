package enums

const (
	FILE_BUCKET_WHITEBOARD_IMAGES = "whiteboard-images"
	FILE_PREFIX_WHITEBOARD_IMAGES = "whiteboards"
)
