//go:build windows

package sound

func playerCommand(soundFile string) (string, []string) {
	script := "(New-Object Media.SoundPlayer '" + soundFile + "').PlaySync()"
	return "powershell", []string{"-NoProfile", "-Command", script}
}
