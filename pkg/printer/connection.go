package printer

import "sync"

// Connection is the handle to the one printer a service talks to. It owns
// the current Printer and serializes every write through it, so two callers
// never interleave bytes on the same device.
//
// io is held while bytes go out (a whole batch under Exclusive). state only
// guards the printer and config fields, so status reads never wait for a
// print run.
type Connection struct {
	io    sync.Mutex
	state sync.RWMutex

	printer Printer
	config  Config
}

// NewConnection wraps p. A nil p behaves like the null printer.
func NewConnection(p Printer, cfg Config) *Connection {
	if p == nil {
		p = NewNullPrinter()
	}
	return &Connection{printer: p, config: cfg}
}

func (c *Connection) current() Printer {
	c.state.RLock()
	defer c.state.RUnlock()
	return c.printer
}

// Print sends data to the current printer.
func (c *Connection) Print(data []byte) error {
	c.io.Lock()
	defer c.io.Unlock()
	return c.current().Print(data)
}

// Exclusive runs fn with the connection locked for its whole duration.
// Use it to send a batch of jobs back-to-back.
func (c *Connection) Exclusive(fn func(p Printer) error) error {
	c.io.Lock()
	defer c.io.Unlock()
	return fn(c.current())
}

// Replace closes the current printer and switches to p. It waits for a
// running batch to finish.
func (c *Connection) Replace(p Printer, cfg Config) error {
	if p == nil {
		p = NewNullPrinter()
	}
	c.io.Lock()
	defer c.io.Unlock()

	c.state.Lock()
	old := c.printer
	c.printer = p
	c.config = cfg
	c.state.Unlock()

	return old.Close()
}

// Disconnect detaches the current printer.
func (c *Connection) Disconnect() error {
	return c.Replace(nil, Config{Type: TypeNone})
}

// Config returns the configuration of the current printer.
func (c *Connection) Config() Config {
	c.state.RLock()
	defer c.state.RUnlock()
	return c.config
}

// Configured reports whether a real printer type is attached.
func (c *Connection) Configured() bool {
	cfg := c.Config()
	return cfg.Type != TypeNone && cfg.Type != ""
}

// IsConnected reports whether the current printer is reachable.
func (c *Connection) IsConnected() bool {
	return c.current().IsConnected()
}

// Close releases the current printer.
func (c *Connection) Close() error {
	c.io.Lock()
	defer c.io.Unlock()
	return c.current().Close()
}
