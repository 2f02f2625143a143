package errs

type Error string

func (e Error) Error() string { return string(e) }

const (
	ErrInvalidRequestBody = Error("invalid request body")
	ErrInvalidRequest     = Error("invalid request")
	ErrInvalidParams      = Error("invalid params")
	ErrInvalidBoardId     = Error("invalid whiteboard id")
	ErrWhiteboardNotFound = Error("whiteboard not found")
	ErrBoardNameEmpty     = Error("whiteboard name is empty")
	ErrItemNotFound       = Error("item not found")
	ErrInvalidItem        = Error("invalid item")
	ErrInvalidUserId      = Error("user id is empty")
	ErrEmptyFile          = Error("file is empty")
	ErrNotAnImage         = Error("file is not an image")
	ErrImageTooLarge      = Error("image is larger than 5MB")
	ErrUploaderMissing    = Error("no image uploader configured")
	ErrPersisterMissing   = Error("no persister configured")
	ErrSaveInProgress     = Error("save already in progress")
	ErrSocketClosed       = Error("socket connection closed")
	ErrUnknownEvent       = Error("unknown socket event")
	ErrNoFileUploaded     = Error("no file uploaded")
	ErrUnableToUploadFile = Error("unable to upload file")
	ErrInternalServer     = Error("internal server error")

	ErrAlreadyCollaborator  = Error("user is already a collaborator")
	ErrCollaboratorNotFound = Error("collaborator not found")
	ErrCannotRemoveOwner    = Error("the owner cannot be removed")
)
