package domain

// Manifest is the fully parsed build declaration: the target graph plus the
// glob patterns that clean removes.
type Manifest struct {
	Graph *Graph

	// CleanPatterns are glob patterns, relative to the manifest root,
	// matching files that clean deletes.
	CleanPatterns []string

	// Path is the manifest file this was parsed from. It is empty for the
	// built-in scenario.
	Path string
}
