package mkvmerge

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"animux/internal/assets"
	"animux/internal/language"
	"animux/internal/services"
)

// Track is one audio or subtitle input file with its container metadata.
type Track struct {
	Path     string
	Language string // ISO 639-1; converted to 639-2 for mkvmerge
	Name     string
	Default  bool
}

// Job describes a single container build.
type Job struct {
	Output         string
	Title          string
	VideoPath      string
	VideoArgs      []string // handling flags for the premux input
	Audio          []Track
	Subtitles      []Track
	Attachments    []assets.FontAttachment
	ChaptersPath   string
	GlobalTagsPath string
}

// Muxer is the behaviour the batch runner needs from this package.
type Muxer interface {
	Mux(ctx context.Context, job Job) (string, error)
}

// Executor abstracts command execution for testability.
type Executor interface {
	Run(ctx context.Context, binary string, args []string, onOutput func(string)) error
}

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// Client wraps mkvmerge CLI interactions.
type Client struct {
	binary  string
	timeout time.Duration
	exec    Executor
}

// New constructs an mkvmerge client.
func New(binary string, timeoutSeconds int, opts ...Option) (*Client, error) {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return nil, services.Wrap(services.ErrConfiguration, "mkvmerge", "new", "binary required", nil)
	}
	client := &Client{
		binary:  binary,
		timeout: time.Duration(timeoutSeconds) * time.Second,
		exec:    commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client, nil
}

// Mux executes mkvmerge for the job and returns the output path.
func (c *Client) Mux(ctx context.Context, job Job) (string, error) {
	if err := validateJob(job); err != nil {
		return "", err
	}

	muxCtx := ctx
	if c.timeout > 0 {
		var cancel context.CancelFunc
		muxCtx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	args := BuildArgs(job)
	var tail []string
	if err := c.exec.Run(muxCtx, c.binary, args, func(line string) {
		// Keep the last few lines for error reporting; mkvmerge prints
		// its diagnostics on stdout.
		tail = append(tail, line)
		if len(tail) > 8 {
			tail = tail[1:]
		}
	}); err != nil {
		detail := strings.TrimSpace(strings.Join(tail, "; "))
		return "", services.Wrap(services.ErrExternalTool, "mkvmerge", "mux", detail, err)
	}

	if _, err := os.Stat(job.Output); err != nil {
		return "", services.Wrap(services.ErrExternalTool, "mkvmerge", "mux", "produced no output file", err)
	}
	return job.Output, nil
}

func validateJob(job Job) error {
	if strings.TrimSpace(job.Output) == "" {
		return services.Wrap(services.ErrValidation, "mkvmerge", "mux", "output path required", nil)
	}
	if strings.TrimSpace(job.VideoPath) == "" {
		return services.Wrap(services.ErrValidation, "mkvmerge", "mux", "video path required", nil)
	}
	if len(job.Subtitles) == 0 {
		return services.Wrap(services.ErrValidation, "mkvmerge", "mux", "at least one subtitle track required", nil)
	}
	return nil
}

// BuildArgs constructs the mkvmerge argument list for a job. Exposed for
// tests and for dry-run reporting.
func BuildArgs(job Job) []string {
	args := []string{"-o", job.Output}
	if job.Title != "" {
		args = append(args, "--title", job.Title)
	}

	args = append(args, job.VideoArgs...)
	args = append(args, job.VideoPath)

	appendTrack := func(track Track) {
		args = append(args, "--language", "0:"+language.ToISO3(track.Language))
		if track.Name != "" {
			args = append(args, "--track-name", "0:"+track.Name)
		}
		if track.Default {
			args = append(args, "--default-track", "0:yes")
		} else {
			args = append(args, "--default-track", "0:no")
		}
		args = append(args, track.Path)
	}
	for _, track := range job.Audio {
		appendTrack(track)
	}
	for _, track := range job.Subtitles {
		appendTrack(track)
	}

	for _, font := range job.Attachments {
		args = append(args, "--attachment-mime-type", font.MIMEType)
		args = append(args, "--attach-file", font.Path)
	}

	if job.ChaptersPath != "" {
		args = append(args, "--chapters", job.ChaptersPath)
	}
	if job.GlobalTagsPath != "" {
		args = append(args, "--global-tags", job.GlobalTagsPath)
	}

	return args
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string, onOutput func(string)) error {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("stdout pipe: %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("stderr pipe: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start command: %w", err)
	}

	var wg sync.WaitGroup
	var scanErr error
	var once sync.Once

	scan := func(r io.Reader) {
		defer wg.Done()
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			if onOutput != nil {
				onOutput(scanner.Text())
			}
		}
		if err := scanner.Err(); err != nil {
			once.Do(func() {
				scanErr = err
			})
		}
	}

	wg.Add(2)
	go scan(stdout)
	go scan(stderr)

	wg.Wait()
	if scanErr != nil {
		_ = cmd.Process.Kill()
		return fmt.Errorf("scan output: %w", scanErr)
	}

	if err := cmd.Wait(); err != nil {
		return fmt.Errorf("wait command: %w", err)
	}
	return nil
}
