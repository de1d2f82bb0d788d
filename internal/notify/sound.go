package notify

import (
	"os/exec"

	"taskmaster/internal/logging"
)

// players to try in order; the first one present on PATH wins
var soundPlayers = []string{"afplay", "paplay", "aplay"}

// SoundNotifier plays a notification sound when a countdown finishes.
// Playback can be blocked by platform policy or a missing player; that is
// never an error, the sound just doesn't happen.
type SoundNotifier struct {
	soundPath string
	player    string
}

// NewSoundNotifier creates a sound notifier for the given audio file. When no
// player is available the notifier stays silent.
func NewSoundNotifier(soundPath string) *SoundNotifier {
	n := &SoundNotifier{soundPath: soundPath}
	for _, p := range soundPlayers {
		if _, err := exec.LookPath(p); err == nil {
			n.player = p
			break
		}
	}
	if n.player == "" {
		logging.Debug("notify", "no sound player found, notifications will be silent")
	}
	return n
}

func (n *SoundNotifier) TaskAdded(title string) {}

func (n *SoundNotifier) TaskCompleted(title string) {}

func (n *SoundNotifier) TimerFinished(mode string) {
	if n.player == "" || n.soundPath == "" {
		return
	}
	// Fire and forget; a failed play is logged only
	go func() {
		if err := exec.Command(n.player, n.soundPath).Run(); err != nil {
			logging.Debug("notify", "sound playback failed: %v", err)
		}
	}()
}
