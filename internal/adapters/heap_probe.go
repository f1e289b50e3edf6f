package adapters

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"toolchain-fixtures/internal/ports"
	"toolchain-fixtures/internal/shared"
	"toolchain-fixtures/internal/types"
)

const outOfMemoryMarker = "java.lang.OutOfMemoryError"

// CommandHeapProbeAdapter runs Command with -Xmx<heap>m and SystemProperties
// inserted right after the executable.
type CommandHeapProbeAdapter struct {
	Command          []string
	SystemProperties []string
	Dir              string
}

func NewCommandHeapProbeAdapter(command []string, systemProperties []string, dir string) CommandHeapProbeAdapter {
	return CommandHeapProbeAdapter{
		Command:          append([]string(nil), command...),
		SystemProperties: append([]string(nil), systemProperties...),
		Dir:              dir,
	}
}

func (a CommandHeapProbeAdapter) Probe(ctx context.Context, heapMB int) (types.ProbeOutcome, error) {
	if len(a.Command) == 0 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("heap probe command is empty")
	}
	if heapMB <= 0 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("heap size must be positive, got %d", heapMB))
	}
	cmd := exec.CommandContext(ctx, a.Command[0], a.args(heapMB)...)
	cmd.Dir = a.Dir
	output, err := cmd.CombinedOutput()
	if err == nil {
		return types.ProbeOutcomeSuccess, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if bytes.Contains(output, []byte(outOfMemoryMarker)) {
		return types.ProbeOutcomeOutOfMemory, nil
	}
	return "", errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("heap probe failed at %dMB", heapMB)).
		WithCause(shared.CommandError(output, err))
}

func (a CommandHeapProbeAdapter) args(heapMB int) []string {
	args := make([]string, 0, len(a.Command)+len(a.SystemProperties))
	args = append(args, fmt.Sprintf("-Xmx%dm", heapMB))
	args = append(args, a.SystemProperties...)
	return append(args, a.Command[1:]...)
}

var _ ports.HeapProbePort = CommandHeapProbeAdapter{}
