// Package surface provides a CLI adapter for the interactive permission
// request primitive.
package surface

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/entities"
	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/ports"
)

// GrantSink receives the permissions the user approved. The reconciler
// never sees the decision; it observes the new state on a later CheckOnly
// pass.
type GrantSink interface {
	Grant(ctx context.Context, name string) error
}

// CliSurface implements ports.RequestSurface for CLI environments. One
// batched prompt is shown per request; approved permissions are applied to
// the sink.
type CliSurface struct {
	in       io.Reader
	out      io.Writer
	sink     GrantSink
	assessor *entities.RiskAssessor
}

var _ ports.RequestSurface = (*CliSurface)(nil)

// NewCliSurface creates a CliSurface reading decisions from in and writing
// prompts to out.
func NewCliSurface(in io.Reader, out io.Writer, sink GrantSink) *CliSurface {
	return &CliSurface{
		in:       in,
		out:      out,
		sink:     sink,
		assessor: entities.NewRiskAssessor(),
	}
}

// IsInteractive checks if the input is a terminal.
func (s *CliSurface) IsInteractive() bool {
	if f, ok := s.in.(*os.File); ok {
		stat, err := f.Stat()
		if err != nil {
			return false
		}
		return (stat.Mode() & os.ModeCharDevice) != 0
	}
	return false
}

// RequestBatch shows one prompt for all named permissions, annotated with
// their risk level, and applies the approved grants to the sink.
func (s *CliSurface) RequestBatch(ctx context.Context, names []string) error {
	if len(names) == 0 {
		return nil
	}

	_, _ = fmt.Fprintf(s.out, "The application requests the following permissions:\n")
	for _, name := range names {
		_, _ = fmt.Fprintf(s.out, "- [%s] %s\n", s.assessor.Assess(name), name)
	}
	_, _ = fmt.Fprintf(s.out, "Grant all? [y/n]: ")

	scanner := bufio.NewScanner(s.in)
	if scanner.Scan() {
		text := strings.ToLower(strings.TrimSpace(scanner.Text()))
		if text == "y" || text == "yes" {
			for _, name := range names {
				if err := s.sink.Grant(ctx, name); err != nil {
					return fmt.Errorf("failed to apply grant for %s: %w", name, err)
				}
			}
		}
		// Default deny: the state simply stays as it was.
		return nil
	}
	if err := scanner.Err(); err != nil {
		return err
	}
	return io.EOF
}
