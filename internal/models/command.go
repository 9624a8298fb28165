package models

// Action identifies which playback operation an interpreted command maps to.
type Action string

const (
	ActionPlay         Action = "play"
	ActionSearchPlay   Action = "search-and-play"
	ActionPlayPlaylist Action = "play-playlist"
	ActionPause        Action = "pause"
	ActionNext         Action = "next"
	ActionPrevious     Action = "previous"
	ActionSetVolume    Action = "volume"
	ActionVolumeUp     Action = "volume-up"
	ActionVolumeDown   Action = "volume-down"
	ActionStatus       Action = "status"
	ActionUnknown      Action = "unknown"
)

// Intent is the typed result of interpreting one free-form command.
// Exactly one Action is produced per input; unmapped text becomes
// ActionUnknown with the original command preserved.
type Intent struct {
	Action   Action `json:"action"`
	Query    string `json:"query,omitempty"`    // search text for search-and-play / play-playlist
	Level    int    `json:"level,omitempty"`    // target volume for ActionSetVolume
	Original string `json:"original,omitempty"` // raw input, set for ActionUnknown
}

// PlaybackDetails carries structured now-playing information in an Outcome.
type PlaybackDetails struct {
	Track     string `json:"track"`
	Artists   string `json:"artists"`
	Album     string `json:"album"`
	IsPlaying bool   `json:"isPlaying"`
	Volume    int    `json:"volume"`
	Device    string `json:"device"`
}

// Outcome is the uniform result of dispatching one Intent. Remote failures
// are folded into Success=false with a user-facing Message; Detail carries
// the raw error text for diagnostics and is never shown as the Message.
type Outcome struct {
	Success         bool             `json:"success"`
	Message         string           `json:"message"`
	Detail          string           `json:"detail,omitempty"`
	Details         *PlaybackDetails `json:"details,omitempty"`
	OriginalCommand string           `json:"originalCommand,omitempty"`
}
