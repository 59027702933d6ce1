package audio

import (
	"errors"
	"fmt"
	"net/url"
	"os/exec"
	"path/filepath"
	"sync"
)

// CommandPlayer plays audio by running an external program, such as
// "ffplay -nodisp -autoexit -loglevel quiet", with the audio path appended.
type CommandPlayer struct {
	mu      sync.Mutex
	command []string
	baseDir string
	cmd     *exec.Cmd
	done    chan struct{}
}

// NewCommandPlayer returns a player running command. Relative audio
// references are resolved against baseDir.
func NewCommandPlayer(command []string, baseDir string) (*CommandPlayer, error) {
	if len(command) == 0 {
		return nil, errors.New("audio command is empty")
	}
	return &CommandPlayer{command: command, baseDir: baseDir}, nil
}

func (p *CommandPlayer) resolve(ref string) string {
	if u, err := url.Parse(ref); err == nil && u.Scheme != "" {
		return ref
	}
	if filepath.IsAbs(ref) || p.baseDir == "" {
		return ref
	}
	return filepath.Join(p.baseDir, filepath.FromSlash(ref))
}

// Play starts the command for ref. It does not wait for playback to end.
func (p *CommandPlayer) Play(ref string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	args := append(append([]string{}, p.command[1:]...), p.resolve(ref))
	cmd := exec.Command(p.command[0], args...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", p.command[0], err)
	}

	done := make(chan struct{})
	go func() {
		_ = cmd.Wait()
		close(done)
	}()
	p.cmd = cmd
	p.done = done
	return nil
}

// Stop kills the running command, if any, and waits for it to exit.
func (p *CommandPlayer) Stop() {
	p.mu.Lock()
	cmd, done := p.cmd, p.done
	p.cmd, p.done = nil, nil
	p.mu.Unlock()

	if cmd == nil {
		return
	}
	select {
	case <-done:
	default:
		_ = cmd.Process.Kill()
		<-done
	}
}

// Playing reports whether the command is still running.
func (p *CommandPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.done == nil {
		return false
	}
	select {
	case <-p.done:
		return false
	default:
		return true
	}
}

// BrowserPlayer hands audio to a web page. The server renders an
// autoplaying audio element for the pending reference; removing the
// element stops it.
type BrowserPlayer struct {
	mu      sync.Mutex
	current string
}

// Play marks ref as the audio the page should play.
func (p *BrowserPlayer) Play(ref string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = ref
	return nil
}

// Stop clears the playing reference.
func (p *BrowserPlayer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = ""
}

// Playing reports whether a reference is being played.
func (p *BrowserPlayer) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current != ""
}

// Current returns the reference the page should be playing.
func (p *BrowserPlayer) Current() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.current
}
