package display

// connectionSymbol maps a connection cell's four direction flags to its
// box-drawing glyph. Pure lookup, no runtime ambiguity.
func connectionSymbol(c Cell) string {
	switch {
	case c.Up && c.Down && c.Left && c.Right:
		return "┼"
	case c.Up && c.Down && c.Left:
		return "┤"
	case c.Up && c.Down && c.Right:
		return "├"
	case c.Up && c.Left && c.Right:
		return "┴"
	case c.Down && c.Left && c.Right:
		return "┬"
	case c.Up && c.Down:
		return "│"
	case c.Left && c.Right:
		return "─"
	case c.Up && c.Left:
		return "╯"
	case c.Up && c.Right:
		return "╰"
	case c.Down && c.Left:
		return "╮"
	case c.Down && c.Right:
		return "╭"
	case c.Up:
		return "╵"
	case c.Down:
		return "╷"
	case c.Left:
		return "╴"
	case c.Right:
		return "╶"
	}
	return " "
}

// cellText renders a non-task cell at fixed width two: the glyph plus a
// horizontal continuation when the edge keeps running rightward.
func cellText(c Cell) string {
	sym := connectionSymbol(c)
	if c.Right {
		return sym + "─"
	}
	return sym + " "
}
