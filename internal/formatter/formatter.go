// package formatter renders command outcomes, playback state, and search
// results for terminal output
package formatter

import (
	"bytes"
	"fmt"

	"github.com/desertthunder/maestro/internal/models"
	"github.com/desertthunder/maestro/internal/services"
	"github.com/desertthunder/maestro/internal/shared"
)

// FormatOutcome renders an outcome as plain text: an OK/FAIL marker, the
// message, and the now-playing details when present.
func FormatOutcome(outcome models.Outcome) string {
	var buf bytes.Buffer

	marker := "OK"
	if !outcome.Success {
		marker = "FAIL"
	}
	buf.WriteString(fmt.Sprintf("[%s] %s\n", marker, outcome.Message))

	if outcome.Details != nil {
		buf.WriteString(formatDetails(outcome.Details))
	}
	if outcome.OriginalCommand != "" {
		buf.WriteString(fmt.Sprintf("  command: %s\n", outcome.OriginalCommand))
	}

	return buf.String()
}

func formatDetails(details *models.PlaybackDetails) string {
	var buf bytes.Buffer

	state := "paused"
	if details.IsPlaying {
		state = "playing"
	}
	buf.WriteString(fmt.Sprintf("  Track:  %s\n", details.Track))
	buf.WriteString(fmt.Sprintf("  Artist: %s\n", details.Artists))
	if details.Album != "" {
		buf.WriteString(fmt.Sprintf("  Album:  %s\n", details.Album))
	}
	buf.WriteString(fmt.Sprintf("  Device: %s (%s, volume %d%%)\n", details.Device, state, details.Volume))

	return buf.String()
}

// FormatPlayback renders a playback state snapshot. A nil state means
// nothing is playing.
func FormatPlayback(state *services.PlaybackState) string {
	if state == nil || state.Item == nil {
		return "Nothing playing\n"
	}

	var buf bytes.Buffer
	item := state.Item

	verb := "Paused"
	if state.IsPlaying {
		verb = "Playing"
	}
	buf.WriteString(fmt.Sprintf("%s: %s - %s\n", verb, item.ArtistNames(), item.Name))
	if item.Album.Name != "" {
		buf.WriteString(fmt.Sprintf("Album: %s\n", item.Album.Name))
	}
	if item.DurationMS > 0 {
		buf.WriteString(fmt.Sprintf("Position: %s / %s\n",
			shared.FormatDuration(state.ProgressMS), shared.FormatDuration(item.DurationMS)))
	}
	buf.WriteString(fmt.Sprintf("Device: %s (volume %d%%)\n", state.Device.Name, state.Device.Volume()))

	return buf.String()
}

// FormatTracks renders a numbered track list for search output.
func FormatTracks(tracks []services.Track) string {
	if len(tracks) == 0 {
		return "No tracks found\n"
	}

	var buf bytes.Buffer
	for i, track := range tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s [%s]\n",
			i+1, track.ArtistNames(), track.Name, shared.FormatDuration(track.DurationMS)))
	}
	return buf.String()
}

// FormatPlaylists renders a numbered playlist list for search output.
func FormatPlaylists(playlists []services.Playlist) string {
	if len(playlists) == 0 {
		return "No playlists found\n"
	}

	var buf bytes.Buffer
	for i, playlist := range playlists {
		owner := ""
		if playlist.Owner.DisplayName != "" {
			owner = fmt.Sprintf(" (by %s)", playlist.Owner.DisplayName)
		}
		buf.WriteString(fmt.Sprintf("%d. %s%s\n", i+1, playlist.Name, owner))
	}
	return buf.String()
}

// ToJSON serializes an outcome for machine-readable output.
func ToJSON(outcome models.Outcome) ([]byte, error) {
	return shared.MarshalJSON(outcome, true)
}
