package player

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/pk-services/pks/log"
)

const checkTimeout = 10 * time.Second

// Program is a player backed by an executable.
type Program struct {
	options

	name string
	// Path is the executable name or location.
	Path  string
	args  func(title, uri string) []string
	check []string
}

func (p *Program) Name() string {
	return p.name
}

func (p *Program) Args(title, uri string) []string {
	return p.withOptions(p.args(sanitizeTitle(title), uri)...)
}

func (p *Program) Play(title, uri string) (Process, error) {
	target, err := sanitizeMediaTarget(uri)
	if err != nil {
		return nil, fmt.Errorf("invalid media target: %w", err)
	}

	args := p.Args(title, target)
	cmd := exec.Command(p.Path, args...)

	if console() {
		cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	} else {
		cmd.SysProcAttr = sysProcAttr()
	}

	log.WithField("player", p.name).Infof("%s %s", p.Path, strings.Join(args, " "))
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", p.name, err)
	}

	return &process{cmd: cmd}, nil
}

// Check runs the program with its probe arguments.
// A missing program or a non-zero exit reports false.
func (p *Program) Check() bool {
	ctx, cancel := context.WithTimeout(context.Background(), checkTimeout)
	defer cancel()

	err := exec.CommandContext(ctx, p.Path, p.check...).Run()
	switch {
	case err == nil:
		return true
	case errors.Is(err, exec.ErrNotFound):
		log.Debugf("%s: not installed", p.name)
	default:
		log.Debugf("%s: check failed: %s", p.name, err)
	}
	return false
}

type process struct {
	cmd *exec.Cmd
}

func (p *process) Wait() error {
	return p.cmd.Wait()
}

func (p *process) Kill() error {
	return killProcess(p.cmd)
}

func (p *process) String() string {
	if p.cmd.Process == nil {
		return p.cmd.String()
	}
	return fmt.Sprintf("%s (pid %d)", p.cmd.String(), p.cmd.Process.Pid)
}

// sanitizeMediaTarget refuses targets that the program would read as flags.
func sanitizeMediaTarget(target string) (string, error) {
	t := strings.TrimSpace(target)
	if t == "" {
		return "", fmt.Errorf("empty target")
	}

	if strings.ContainsAny(t, "\x00\n\r") {
		return "", fmt.Errorf("invalid control characters in target")
	}

	if strings.HasPrefix(t, "-") {
		return "", fmt.Errorf("target must not start with '-' (looks like a flag)")
	}

	return t, nil
}

func sanitizeTitle(title string) string {
	t := strings.NewReplacer("\n", " ", "\r", " ", "\t", " ", "\x00", "").Replace(title)
	return strings.TrimSpace(t)
}
