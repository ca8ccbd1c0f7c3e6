package styles

// Nerd Font icons (requires a Nerd Font to display correctly)
const (
	IconGlobe    = "\uf0ac" // browser/web
	IconSearch   = "\uf002" // magnifier
	IconTab      = "\uf0ce" // table
	IconArrow    = "\uf061" // arrow right
	IconCheck    = "\uf00c" // check
	IconX        = "\uf00d" // x
	IconWarning  = "\uf071" // warning
	IconInfo     = "\uf05a" // info
	IconConfig   = "\ue615" // config
	IconDatabase = "\uf1c0" // database
	IconTrash    = "\uf1f8" // trash
	IconCursor   = "\uf054" // chevron-right
	IconKeyboard = "\uf11c" // keyboard
	IconPlay     = "\uf04b" // play

	IconVersion   = "\uf02b" // tag
	IconGitBranch = "\ue725" // git branch
	IconCalendar  = "\uf073" // calendar
	IconGithub    = "\uf09b" // github
	IconGo        = "\ue627" // go gopher
	IconDoctor    = "\uf0f1" // stethoscope
)
