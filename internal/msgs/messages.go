package msgs

const (
	MsgOperationSuccessful = "Operation successful"
	MsgOperationFailed     = "Operation failed"
	MsgWhiteboardCreated   = "Whiteboard created successfully"
	MsgWhiteboardSaved     = "Whiteboard saved successfully"
	MsgImageUploaded       = "Image uploaded successfully"
	MsgWhiteboardNotFound  = "Whiteboard not found"
	MsgServiceHealthy      = "Service is healthy"
	MsgServiceDegraded     = "Service is degraded"
	MsgCollaboratorAdded   = "Collaborator added successfully"
	MsgCollaboratorRemoved = "Collaborator removed successfully"
)
