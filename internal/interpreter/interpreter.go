// package interpreter maps free-form command text onto playback intents
package interpreter

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/desertthunder/maestro/internal/models"
)

var (
	playlistPattern = regexp.MustCompile(`play\s+playlist\s+(.+)`)
	playPattern     = regexp.MustCompile(`play\s+(.+)`)
	volumePattern   = regexp.MustCompile(`(?:set\s+)?volume\s+(?:to\s+)?(\d+)(?:\s*%)?`)
)

// Parse interprets one free-form command and returns exactly one Intent.
// Matching is case-insensitive and total: text that maps to nothing becomes
// ActionUnknown carrying the original input.
//
// Rules are checked in a fixed precedence: play (with its playlist
// sub-case) first, then the plain transport keywords, then the numeric
// volume pattern ahead of the coarser volume up/down cues, then status.
func Parse(text string) models.Intent {
	command := strings.ToLower(strings.TrimSpace(text))

	if strings.Contains(command, "play") && strings.Contains(command, "playlist") {
		if m := playlistPattern.FindStringSubmatch(command); m != nil {
			return models.Intent{Action: models.ActionPlayPlaylist, Query: m[1]}
		}
		// "play ... playlist" without the exact pattern falls through to
		// the remaining rules rather than guessing.
	}

	if strings.Contains(command, "play") && !strings.Contains(command, "playlist") {
		if m := playPattern.FindStringSubmatch(command); m != nil {
			return models.Intent{Action: models.ActionSearchPlay, Query: m[1]}
		}
		return models.Intent{Action: models.ActionPlay}
	}

	if strings.Contains(command, "pause") {
		return models.Intent{Action: models.ActionPause}
	}

	if strings.Contains(command, "resume") {
		return models.Intent{Action: models.ActionPlay}
	}

	if strings.Contains(command, "skip") || strings.Contains(command, "next") {
		return models.Intent{Action: models.ActionNext}
	}

	if strings.Contains(command, "previous") || strings.Contains(command, "go back") {
		return models.Intent{Action: models.ActionPrevious}
	}

	if m := volumePattern.FindStringSubmatch(command); m != nil {
		if level, err := strconv.Atoi(m[1]); err == nil && level >= 0 && level <= 100 {
			return models.Intent{Action: models.ActionSetVolume, Level: level}
		}
		// Out-of-range levels fall through to the coarser volume cues.
	}

	if strings.Contains(command, "volume up") {
		return models.Intent{Action: models.ActionVolumeUp}
	}

	if strings.Contains(command, "volume down") {
		return models.Intent{Action: models.ActionVolumeDown}
	}

	if strings.Contains(command, "status") ||
		(strings.Contains(command, "what") && strings.Contains(command, "playing")) {
		return models.Intent{Action: models.ActionStatus}
	}

	return models.Intent{Action: models.ActionUnknown, Original: text}
}
