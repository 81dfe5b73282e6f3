package service

// User-facing messages surfaced through the aggregate state's ErrorMessage
// field. Raw driver errors stay in the logs; the interface layer only ever
// shows these.
const (
	MsgLoadNotesFailed  = "Couldn't load your notes. Please try again."
	MsgCreateNoteFailed = "Couldn't save the new note. Please try again."
	MsgUpdateNoteFailed = "Couldn't save your changes. Please try again."
	MsgDeleteNoteFailed = "Couldn't delete the note. Please try again."
)
