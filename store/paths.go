package store

// Paths names every file and directory the application persists to.
// It is built once at startup and passed to the stores explicitly; there
// are no ambient path globals.
type Paths struct {
	PrefsFile  string
	PresetsDir string
	RestoreDir string
}
