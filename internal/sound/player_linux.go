//go:build linux

package sound

import "os/exec"

// playerCommand picks the first available playback command.
func playerCommand(soundFile string) (string, []string) {
	for _, candidate := range []string{"paplay", "aplay", "ffplay"} {
		path, err := exec.LookPath(candidate)
		if err != nil {
			continue
		}
		if candidate == "ffplay" {
			return path, []string{"-nodisp", "-autoexit", "-loglevel", "quiet", soundFile}
		}
		return path, []string{soundFile}
	}
	return "", nil
}
