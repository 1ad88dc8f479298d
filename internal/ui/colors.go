package ui

// Color accessor functions return the ANSI escape code for a semantic
// color role in the currently active theme. Call sites use them instead
// of raw escape codes so that theme changes and NO_COLOR take effect
// everywhere at once.

// ColorGreen returns the success color of the active theme.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorRed returns the error color of the active theme.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorYellow returns the warning color of the active theme.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the primary color of the active theme.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorCyan returns the info color of the active theme.
func ColorCyan() string { return GetCurrentTheme().Info }

// ColorMagenta returns the secondary accent color of the active theme.
func ColorMagenta() string { return GetCurrentTheme().Secondary }

// ColorBold returns the bold escape code of the active theme.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline escape code of the active theme.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// ColorReset returns the reset escape code of the active theme.
func ColorReset() string { return GetCurrentTheme().Reset }
