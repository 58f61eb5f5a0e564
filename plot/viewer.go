package plot

import (
	"context"
	"log"
	"os"
	"os/exec"
	"strings"

	"github.com/carbocation/pfx"
)

// Viewer presents a rendered chart. View returns once the chart has been
// dismissed, so charts are shown one at a time.
type Viewer interface {
	View(ctx context.Context, path string) error
}

// FileViewer leaves the chart on disk.
type FileViewer struct{}

func (FileViewer) View(_ context.Context, path string) error {
	log.Println("Wrote", path)
	return nil
}

// CommandViewer opens the chart with an external program and waits for it to
// exit.
type CommandViewer struct {
	Command string
	Args    []string
}

func (v CommandViewer) View(ctx context.Context, path string) error {
	log.Println("Opening", path, "with", v.Command)

	cmd := exec.CommandContext(ctx, v.Command, append(append([]string(nil), v.Args...), path)...)
	cmd.Stdout = os.Stderr
	cmd.Stderr = os.Stderr

	return pfx.Err(cmd.Run())
}

// NewViewer parses a command line such as "feh --scale-down". An empty
// command gives a FileViewer.
func NewViewer(command string) Viewer {
	fields := strings.Fields(command)
	if len(fields) == 0 {
		return FileViewer{}
	}

	return CommandViewer{Command: fields[0], Args: fields[1:]}
}
