//go:build darwin

package sound

func playerCommand(soundFile string) (string, []string) {
	return "afplay", []string{soundFile}
}
