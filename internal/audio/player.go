package audio

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// CommandRunner provides OS-specific command creation for audio playback
type CommandRunner interface {
	GetAudioCommand(filename string) (*exec.Cmd, error)
}

// Player plays the finished podcast through a local audio player
type Player struct {
	cmdRunner CommandRunner
}

// NewPlayer creates a player using the OS default audio command
func NewPlayer() *Player {
	return &Player{cmdRunner: &defaultCommandRunner{}}
}

// Play plays an audio file and blocks until playback finishes
func (p *Player) Play(filename string) error {
	if _, err := os.Stat(filename); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("audio file does not exist: %s", filename)
		}
		return fmt.Errorf("failed to check audio file: %w", err)
	}

	cmd, err := p.cmdRunner.GetAudioCommand(filename)
	if err != nil {
		return fmt.Errorf("failed to get audio command: %w", err)
	}

	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("error playing audio: %w", err)
	}
	return nil
}

// defaultCommandRunner picks a player binary available on the current OS
type defaultCommandRunner struct{}

// GetAudioCommand returns the appropriate audio command for the current OS
func (r *defaultCommandRunner) GetAudioCommand(filename string) (*exec.Cmd, error) {
	// reject filenames that could smuggle shell metacharacters
	if strings.Contains(filename, "..") || strings.ContainsAny(filename, ";|&$`") {
		return nil, fmt.Errorf("invalid filename: potential security risk")
	}

	switch runtime.GOOS {
	case "darwin":
		return exec.Command("afplay", filename), nil
	case "windows":
		return exec.Command("cmd", "/C", "start", filename), nil
	case "linux":
		// try several common audio players
		players := []string{"mpv", "mplayer", "ffplay", "aplay"}
		for _, player := range players {
			if _, err := exec.LookPath(player); err == nil {
				if player == "aplay" {
					// #nosec G204 -- Player is selected from a whitelist of known audio players
					return exec.Command(player, "-q", filename), nil
				}
				// #nosec G204 -- Player is selected from a whitelist of known audio players
				return exec.Command(player, "-nodisp", "-autoexit", "-really-quiet", filename), nil
			}
		}
		return nil, fmt.Errorf("no suitable audio player found on your system")
	default:
		return nil, fmt.Errorf("unsupported operating system: %s", runtime.GOOS)
	}
}
