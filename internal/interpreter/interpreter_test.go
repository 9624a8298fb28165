package interpreter

import (
	"testing"

	"github.com/desertthunder/maestro/internal/models"
)

func TestParse(t *testing.T) {
	tc := []struct {
		name  string
		input string
		want  models.Intent
	}{
		{
			name:  "bare play resumes",
			input: "play",
			want:  models.Intent{Action: models.ActionPlay},
		},
		{
			name:  "play with query searches",
			input: "play bohemian rhapsody",
			want:  models.Intent{Action: models.ActionSearchPlay, Query: "bohemian rhapsody"},
		},
		{
			name:  "play is case insensitive",
			input: "PLAY Bohemian Rhapsody",
			want:  models.Intent{Action: models.ActionSearchPlay, Query: "bohemian rhapsody"},
		},
		{
			name:  "play playlist extracts the rest",
			input: "play playlist deep focus",
			want:  models.Intent{Action: models.ActionPlayPlaylist, Query: "deep focus"},
		},
		{
			name:  "playlist keyword without the pattern falls through",
			input: "playlist",
			want:  models.Intent{Action: models.ActionUnknown, Original: "playlist"},
		},
		{
			name:  "pause",
			input: "please pause the music",
			want:  models.Intent{Action: models.ActionPause},
		},
		{
			name:  "resume maps to play",
			input: "resume",
			want:  models.Intent{Action: models.ActionPlay},
		},
		{
			name:  "skip",
			input: "skip this one",
			want:  models.Intent{Action: models.ActionNext},
		},
		{
			name:  "next",
			input: "next track",
			want:  models.Intent{Action: models.ActionNext},
		},
		{
			name:  "previous",
			input: "previous track",
			want:  models.Intent{Action: models.ActionPrevious},
		},
		{
			name:  "go back",
			input: "go back",
			want:  models.Intent{Action: models.ActionPrevious},
		},
		{
			name:  "set volume with percent sign",
			input: "Claude, set volume to 45%",
			want:  models.Intent{Action: models.ActionSetVolume, Level: 45},
		},
		{
			name:  "volume without set or to",
			input: "volume 80",
			want:  models.Intent{Action: models.ActionSetVolume, Level: 80},
		},
		{
			name:  "volume boundary zero",
			input: "set volume to 0",
			want:  models.Intent{Action: models.ActionSetVolume, Level: 0},
		},
		{
			name:  "volume boundary hundred",
			input: "volume to 100",
			want:  models.Intent{Action: models.ActionSetVolume, Level: 100},
		},
		{
			name:  "volume above range falls through to unknown",
			input: "set volume to 150",
			want:  models.Intent{Action: models.ActionUnknown, Original: "set volume to 150"},
		},
		{
			name:  "volume up",
			input: "turn the volume up",
			want:  models.Intent{Action: models.ActionVolumeUp},
		},
		{
			name:  "volume down",
			input: "volume down a bit",
			want:  models.Intent{Action: models.ActionVolumeDown},
		},
		{
			name:  "status keyword",
			input: "status",
			want:  models.Intent{Action: models.ActionStatus},
		},
		{
			name:  "what is playing",
			input: "what song is playing right now?",
			want:  models.Intent{Action: models.ActionStatus},
		},
		{
			name:  "what alone is not status",
			input: "what time is it",
			want:  models.Intent{Action: models.ActionUnknown, Original: "what time is it"},
		},
		{
			name:  "gibberish is unknown with echo",
			input: "make me a sandwich",
			want:  models.Intent{Action: models.ActionUnknown, Original: "make me a sandwich"},
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.input)
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

// The numeric pattern wants digits right after "volume (to)", so wording
// like "volume up to 70" lands on the coarser up cue instead.
func TestParseVolumePrecedence(t *testing.T) {
	got := Parse("volume up to 70")
	want := models.Intent{Action: models.ActionVolumeUp}
	if got != want {
		t.Errorf("Parse() = %+v, want %+v", got, want)
	}
}

func TestParseIsTotal(t *testing.T) {
	inputs := []string{"", "   ", "????", "volume", "play playlist"}
	for _, input := range inputs {
		got := Parse(input)
		if got.Action == "" {
			t.Errorf("Parse(%q) produced no action", input)
		}
	}
}
