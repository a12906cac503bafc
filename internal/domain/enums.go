package domain

// SessionStatus represents the lifecycle of an upload session.
type SessionStatus string

const (
	SessionStatusPending   SessionStatus = "pending"
	SessionStatusCompleted SessionStatus = "completed"
	SessionStatusExpired   SessionStatus = "expired"
	SessionStatusCancelled SessionStatus = "cancelled"
)

// FileCategory classifies what an uploaded file is for.
type FileCategory string

const (
	CategoryInstruction FileCategory = "instruction"
	CategoryPartsList   FileCategory = "parts-list"
	CategoryThumbnail   FileCategory = "thumbnail"
	CategoryImage       FileCategory = "image"
)

// ValidCategories is the closed set of accepted file categories.
var ValidCategories = map[FileCategory]bool{
	CategoryInstruction: true,
	CategoryPartsList:   true,
	CategoryThumbnail:   true,
	CategoryImage:       true,
}
