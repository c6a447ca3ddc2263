// Package keymap defines key bindings and action dispatch for the browser.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global
	ActionQuit    Action = "quit"
	ActionHelp    Action = "help"
	ActionRefresh Action = "refresh"

	// Tabs
	ActionViewVideos Action = "view_videos"
	ActionViewAudios Action = "view_audios"
	ActionViewImages Action = "view_images"
	ActionViewOthers Action = "view_others"
	ActionNextTab    Action = "next_tab"

	// Listing navigation
	ActionSelect   Action = "select"
	ActionLocate   Action = "locate" // move the cursor to the current item
	ActionMoveUp   Action = "move_up"
	ActionMoveDown Action = "move_down"

	// Playback
	ActionPlayPause       Action = "play_pause"
	ActionNext            Action = "next"
	ActionPrevious        Action = "previous"
	ActionSeekForward     Action = "seek_forward"
	ActionSeekBack        Action = "seek_back"
	ActionSeekForwardLong Action = "seek_forward_long"
	ActionSeekBackLong    Action = "seek_back_long"
	ActionVolumeUp        Action = "volume_up"
	ActionVolumeDown      Action = "volume_down"
	ActionToggleShuffle   Action = "toggle_shuffle"
	ActionToggleLoop      Action = "toggle_loop"
	ActionToggleLyrics    Action = "toggle_lyrics"
	ActionToggleRemember  Action = "toggle_remember"
)
