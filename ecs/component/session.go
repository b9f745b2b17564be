package component

// Components in this file are how gameplay code talks to the level
// session. Requests are carried by short-lived entities; the session
// consumes and destroys them on its next update.

// LevelChangeRequest loads TargetLevel in place of the current level.
type LevelChangeRequest struct {
	TargetLevel string
	// UserLevel selects the user namespace instead of the builtin one.
	UserLevel bool
}

// ReloadRequest rebuilds the current level from its file.
type ReloadRequest struct{}

// ResetToInitialLevelRequest returns to the level the session started on.
type ResetToInitialLevelRequest struct{}

// Persistent entities survive teardown. Everything else in the world is
// destroyed when the session builds a level.
type Persistent struct {
	ID                string
	KeepOnLevelChange bool
	KeepOnReload      bool
}

// LevelLoaded sits on the root of the level built last and is replaced on
// the next build.
type LevelLoaded struct {
	Name    string
	Objects int
	Skipped int
}

var (
	LevelChangeRequestComponent         = NewComponent[LevelChangeRequest]()
	ReloadRequestComponent              = NewComponent[ReloadRequest]()
	ResetToInitialLevelRequestComponent = NewComponent[ResetToInitialLevelRequest]()
	PersistentComponent                 = NewComponent[Persistent]()
	LevelLoadedComponent                = NewComponent[LevelLoaded]()
)
