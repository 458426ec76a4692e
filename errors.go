package termgrid

import "errors"

// Package errors for termgrid.
var (
	// ErrNoConsoles is returned by pass-through console operations when
	// no console has been registered yet.
	ErrNoConsoles = errors.New("termgrid: no consoles registered")

	// ErrConsoleIndex is returned when a console index does not resolve
	// to a registered console.
	ErrConsoleIndex = errors.New("termgrid: console index out of range")

	// ErrFontIndex is returned at draw time when a console's font index
	// does not resolve to a registered font.
	ErrFontIndex = errors.New("termgrid: font index out of range")

	// ErrShaderIndex is returned at draw time when a console's shader
	// index does not resolve to a registered shader program.
	ErrShaderIndex = errors.New("termgrid: shader index out of range")

	// ErrOutOfBounds is returned when cell coordinates fall outside a
	// console surface.
	ErrOutOfBounds = errors.New("termgrid: cell coordinates out of bounds")

	// ErrHostClosed is returned when Run is called on a host that has
	// already finished its loop.
	ErrHostClosed = errors.New("termgrid: host closed")

	// ErrNoWindow is returned by New when no window was supplied and no
	// window factory is registered. Blank-import the window package or
	// pass WithWindow.
	ErrNoWindow = errors.New("termgrid: no window provider registered")
)
