package reconcile

import (
	"fmt"
	"os"

	"github.com/DADi590/VISOR---A-better-Android-assistant/domain/ports"
)

// Ensure implementations satisfy the interface.
var _ ports.DenialHandler = (*StderrDenialHandler)(nil)
var _ ports.DenialHandler = (*NopDenialHandler)(nil)

// StderrDenialHandler logs refused grant attempts to stderr.
type StderrDenialHandler struct{}

func (h *StderrDenialHandler) OnDenial(name string, reason string) {
	fmt.Fprintf(os.Stderr, "Grant Denied [%s]: %s\n", name, reason)
}

// NopDenialHandler does nothing.
type NopDenialHandler struct{}

func (h *NopDenialHandler) OnDenial(name string, reason string) {}
