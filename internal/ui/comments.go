package ui

// Key identifies one order line within a rendering container (a cart or a
// dashboard order card).
type Key struct {
	ContainerID int
	LineIndex   int
}

// CommentState tracks, per line, whether its comment editor is expanded.
// Entries are created lazily on first interaction; absence means collapsed.
// The state lives for the process and is never persisted.
type CommentState struct {
	expanded map[Key]bool
}

// NewCommentState creates an empty comment visibility state.
func NewCommentState() *CommentState {
	return &CommentState{expanded: make(map[Key]bool)}
}

// Toggle flips the expanded/collapsed state for key.
func (s *CommentState) Toggle(key Key) {
	s.expanded[key] = !s.expanded[key]
}

// ForceExpandIfNonEmpty expands the key when its comment text is non-empty.
// Empty text never collapses; that is left to an explicit Toggle.
func (s *CommentState) ForceExpandIfNonEmpty(key Key, text string) {
	if text != "" {
		s.expanded[key] = true
	}
}

// IsExpanded reports whether the key is expanded. Unseen keys are collapsed.
func (s *CommentState) IsExpanded(key Key) bool {
	return s.expanded[key]
}
