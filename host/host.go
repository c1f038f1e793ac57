// Package host implements the interactive console used to drive a
// core.Mars simulation by hand: load warriors, single-step, run whole
// cycles, and dump memory. Command names are matched by unambiguous
// prefix (beevik/prefixtree) and registered alongside their one-line
// descriptions as beevik/cmd.Command records, mirroring the console
// pattern the teacher's dependency set points at (cjr29's host module
// was left unimplemented; this follows the shape beevik/go6502's own
// console takes with the same two libraries).
package host

import (
	"bufio"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/beevik/cmd"
	"github.com/beevik/prefixtree"
	"github.com/davecgh/go-spew/spew"

	"riddick.net/corewar/asm"
	"riddick.net/corewar/core"
	"riddick.net/corewar/disasm"
	"riddick.net/corewar/term"
)

// Handler executes one parsed console command against the console's
// Mars instance, writing any output to out.
type Handler func(c *Console, args []string, out io.Writer) error

// Console owns a running Mars instance and the command table that
// operates on it.
type Console struct {
	Mars     *core.Mars
	Props    core.MarsProperties
	commands *prefixtree.Tree
	handlers map[string]Handler
	width    int
}

// New builds a console around a fresh Mars with the given properties and
// registers the built-in command set. The console's output wrap width is
// detected from the controlling terminal (term.StdoutWidth), falling back
// to term.DefaultWidth when stdout is not a tty; see SetWidth to override.
func New(props core.MarsProperties) *Console {
	c := &Console{
		Mars:     core.NewMars(props),
		Props:    props,
		commands: prefixtree.New(),
		handlers: make(map[string]Handler),
		width:    term.StdoutWidth(),
	}
	c.register("load", "load a warrior from Redcode source text", cmdLoad)
	c.register("step", "advance one cycle", cmdStep)
	c.register("run", "run until one warrior remains or maxcycles elapses", cmdRun)
	c.register("dump", "disassemble a memory range: dump <addr> <count>", cmdDump)
	c.register("inspect", "print a cell's raw field layout: inspect <addr>", cmdInspect)
	c.register("warriors", "list the currently live warriors", cmdWarriors)
	c.register("quit", "exit the console", cmdQuit)
	return c
}

// SetWidth overrides the wrap width dump/warriors output is folded to,
// e.g. when driving the console over a pipe of known width instead of a
// real terminal. A non-positive width resets to term.DefaultWidth.
func (c *Console) SetWidth(w int) {
	if w <= 0 {
		w = term.DefaultWidth
	}
	c.width = w
}

func (c *Console) register(name, description string, h Handler) {
	c.commands.Add(name, &cmd.Command{Name: name, Description: description})
	c.handlers[name] = h
}

// ErrQuit is returned by the "quit" command to signal Run's caller to
// stop the REPL loop.
var ErrQuit = fmt.Errorf("quit")

// Dispatch resolves and runs a single command line, matching the leading
// word against the registered commands by shortest unambiguous prefix.
func (c *Console) Dispatch(line string, out io.Writer) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}
	name, args := strings.ToLower(fields[0]), fields[1:]

	match, err := c.commands.Find(name)
	if err != nil {
		return fmt.Errorf("unknown command %q: %w", name, err)
	}
	entry, ok := match.(*cmd.Command)
	if !ok {
		return fmt.Errorf("internal error: command table entry for %q is malformed", name)
	}
	h, ok := c.handlers[entry.Name]
	if !ok {
		return fmt.Errorf("internal error: no handler registered for %q", entry.Name)
	}
	return h(c, args, out)
}

// Run reads commands from in, one per line, writing responses to out,
// until EOF, a "quit" command, or a fatal read error.
func (c *Console) Run(in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if err := c.Dispatch(scanner.Text(), out); err != nil {
			if err == ErrQuit {
				return nil
			}
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}

func cmdLoad(c *Console, args []string, out io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: load <source text>")
	}
	source := strings.Join(args, " ")
	res, err := asm.Assemble(source, c.Props)
	if err != nil {
		return err
	}
	name := res.WarriorName
	if name == "" {
		name = fmt.Sprintf("warrior%d", len(c.Mars.Warriors())+1)
	}
	w := core.NewWarrior(name, res.Author, res.Program, res.Origin)
	c.Mars.Load(w)
	fmt.Fprintf(out, "loaded %s (%d instructions)\n", name, len(res.Program))
	return nil
}

func cmdStep(c *Console, args []string, out io.Writer) error {
	dead := c.Mars.Cycle()
	for _, w := range dead {
		fmt.Fprintf(out, "%s died\n", w.Name)
	}
	return nil
}

func cmdRun(c *Console, args []string, out io.Writer) error {
	rounds := c.Mars.Run()
	fmt.Fprintf(out, "ran %d rounds, %d warrior(s) remaining\n", rounds, len(c.Mars.Warriors()))
	return nil
}

func cmdDump(c *Console, args []string, out io.Writer) error {
	if len(args) != 2 {
		return fmt.Errorf("usage: dump <addr> <count>")
	}
	addr, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", args[0], err)
	}
	count, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid count %q: %w", args[1], err)
	}
	lines := disasm.Range(c.Mars.Memory(), addr, count)
	for _, l := range lines {
		rendered := fmt.Sprintf("%6d  %s", l.Address, l.Text)
		wrapped := term.Wrap(rendered, c.width)
		if len(wrapped) == 0 {
			continue
		}
		fmt.Fprintln(out, wrapped[0])
		for _, cont := range wrapped[1:] {
			fmt.Fprintf(out, "        %s\n", cont)
		}
	}
	return nil
}

// cmdInspect prints a cell's raw field layout with spew rather than its
// Redcode text rendering, for chasing down modifier-projection bugs.
func cmdInspect(c *Console, args []string, out io.Writer) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: inspect <addr>")
	}
	addr, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid address %q: %w", args[0], err)
	}
	cell := c.Mars.Memory().Read(addr)
	// DisableMethods keeps spew from printing cell via its String method.
	cfg := spew.ConfigState{Indent: " ", DisableMethods: true}
	cfg.Fdump(out, cell)
	return nil
}

// cmdWarriors lists the live warriors and their thread queues, wrapping
// each (potentially very long, up to MaxProcesses entries) thread list to
// the console's detected terminal width.
func cmdWarriors(c *Console, args []string, out io.Writer) error {
	ws := c.Mars.Warriors()
	sort.Slice(ws, func(i, j int) bool { return ws[i].Name < ws[j].Name })
	for _, w := range ws {
		threads := w.Threads()
		fmt.Fprintf(out, "%-16s threads=%d\n", w.Name, len(threads))
		pcs := make([]string, len(threads))
		for i, pc := range threads {
			pcs[i] = strconv.Itoa(pc)
		}
		for _, line := range term.Wrap(strings.Join(pcs, " "), c.width) {
			fmt.Fprintf(out, "  %s\n", line)
		}
	}
	return nil
}

func cmdQuit(c *Console, args []string, out io.Writer) error {
	return ErrQuit
}
