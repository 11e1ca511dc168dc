package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/wesleyorama2/perfstats/pkg/stats"
)

// ANSI escape codes for cursor control
const (
	cursorUp  = "\033[%dA"
	clearLine = "\033[2K"
)

// ConsoleConfig contains configuration for Console.
type ConsoleConfig struct {
	Writer      io.Writer
	Quiet       bool
	NoColor     bool
	ForceColors bool
	ForceTTY    bool
}

// Console is a stats.Sink that prints the text report on every refresh.
//
// On a terminal the previous report is cleared and redrawn in place;
// otherwise each refresh is appended, separated by a blank line.
type Console struct {
	writer    io.Writer
	formatter *TextFormatter
	isTTY     bool
	quiet     bool

	mu          sync.Mutex
	linesOutput int
	refreshes   int
}

// NewConsole creates a console sink.
func NewConsole(config ConsoleConfig) *Console {
	if config.Writer == nil {
		config.Writer = os.Stdout
	}

	isTTY := config.ForceTTY || IsTerminal(config.Writer)
	useColors := !config.NoColor && (config.ForceColors || (isTTY && supportsColors()))

	formatter := &TextFormatter{Colors: NoColorScheme()}
	if useColors {
		formatter.Colors = forcedColorScheme()
	}

	return &Console{
		writer:    config.Writer,
		formatter: formatter,
		isTTY:     isTTY,
		quiet:     config.Quiet,
	}
}

// Refresh implements stats.Sink.
func (c *Console) Refresh(s stats.Snapshot) {
	if c.quiet {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.refreshes++
	text := c.formatter.Format(s)

	if !c.isTTY {
		if c.refreshes > 1 {
			c.write("\n")
		}
		c.write(text + "\n")
		return
	}

	c.clear()
	c.write(text + "\n")
	c.linesOutput = strings.Count(text, "\n") + 1
}

// Refreshes returns how many snapshots the console has received.
func (c *Console) Refreshes() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refreshes
}

// Finish clears the live report on a terminal so a final summary can follow.
func (c *Console) Finish() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.isTTY {
		c.clear()
	}
}

// clear erases the previously drawn report.
func (c *Console) clear() {
	if c.linesOutput == 0 {
		return
	}
	c.write(fmt.Sprintf(cursorUp, c.linesOutput))
	for i := 0; i < c.linesOutput; i++ {
		c.write(clearLine + "\n")
	}
	c.write(fmt.Sprintf(cursorUp, c.linesOutput))
	c.linesOutput = 0
}

func (c *Console) write(s string) {
	fmt.Fprint(c.writer, s)
}
