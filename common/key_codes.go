package common

// Virtual key codes for cross-platform input handling.
// These values match GLFW key codes which use ASCII values for printable keys.
// Reference: https://pkg.go.dev/github.com/go-gl/glfw/v3.3/glfw#Key
const (
	KeyV     = 86  // V key (ASCII), dump constraint violations
	KeySpace = 32  // Spacebar (ASCII)
	KeyEsc   = 256 // Escape key (GLFW)

	// Camera mode selection
	Key1 = 49 // 1 key (ASCII), chase mode
	Key2 = 50 // 2 key (ASCII), follow mode
	Key3 = 51 // 3 key (ASCII), track mode
	Key4 = 52 // 4 key (ASCII), inside mode

	// Camera zoom and orbit
	KeyRight = 262 // Right arrow (GLFW)
	KeyLeft  = 263 // Left arrow (GLFW)
	KeyDown  = 264 // Down arrow (GLFW)
	KeyUp    = 265 // Up arrow (GLFW)
)
