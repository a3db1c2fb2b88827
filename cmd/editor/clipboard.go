package main

import (
	"golang.design/x/clipboard"
)

// systemClipboard wraps the OS clipboard. It degrades to a process-local
// buffer when the platform clipboard is unavailable.
type systemClipboard struct {
	ok    bool
	local []byte
}

func newSystemClipboard() (*systemClipboard, error) {
	if err := clipboard.Init(); err != nil {
		return &systemClipboard{}, err
	}
	return &systemClipboard{ok: true}, nil
}

func (c *systemClipboard) Write(data []byte) {
	c.local = append(c.local[:0], data...)
	if c.ok {
		clipboard.Write(clipboard.FmtText, data)
	}
}

func (c *systemClipboard) Read() []byte {
	if c.ok {
		if data := clipboard.Read(clipboard.FmtText); len(data) > 0 {
			return data
		}
	}
	return c.local
}
