package keymap

// Binding maps keys to an action, with a description for the help line.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
}

// All contains every key binding in help order.
var All = []Binding{
	{ActionQuit, []string{"q", "ctrl+c"}, "quit"},
	{ActionHelp, []string{"?"}, "help"},
	{ActionRefresh, []string{"ctrl+r"}, "rescan"},

	{ActionViewVideos, []string{"f1", "1"}, "videos"},
	{ActionViewAudios, []string{"f2", "2"}, "audio"},
	{ActionViewImages, []string{"f3", "3"}, "images"},
	{ActionViewOthers, []string{"f4", "4"}, "others"},
	{ActionNextTab, []string{"tab"}, "next tab"},

	{ActionSelect, []string{"enter"}, "open"},
	{ActionLocate, []string{"o"}, "go to current"},

	{ActionPlayPause, []string{" "}, "play/pause"},
	{ActionNext, []string{"n"}, "next"},
	{ActionPrevious, []string{"p"}, "previous"},
	{ActionSeekForward, []string{"right", "l"}, "+5s"},
	{ActionSeekBack, []string{"left", "h"}, "-5s"},
	{ActionSeekForwardLong, []string{"shift+right", "L"}, "+30s"},
	{ActionSeekBackLong, []string{"shift+left", "H"}, "-30s"},
	{ActionVolumeUp, []string{"+", "="}, "volume up"},
	{ActionVolumeDown, []string{"-"}, "volume down"},
	{ActionToggleShuffle, []string{"s"}, "shuffle"},
	{ActionToggleLoop, []string{"r"}, "loop"},
	{ActionToggleLyrics, []string{"y"}, "lyrics"},
	{ActionToggleRemember, []string{"m"}, "remember position"},
}

// Short lists the actions shown in the collapsed help line.
var Short = []Action{
	ActionSelect, ActionPlayPause, ActionNext, ActionPrevious,
	ActionToggleShuffle, ActionToggleLoop, ActionHelp, ActionQuit,
}
