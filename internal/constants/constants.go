package constants

// SessionState represents the current state of the TUI application
type SessionState int

const (
	AppName           = "ascend"
	DefaultConfigPath = "~/.config/ascend/ascend.db"
	Version           = "v0.3.0"

	// ChallengeLength is the number of days in one attempt
	ChallengeLength = 75

	// HIITInterval is the day cadence on which the second workout must be
	// a high-intensity session (day 10, 20, 30, ...)
	HIITInterval = 10

	// DateFormat is the standard calendar-date format used throughout the
	// application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// LocalUserID is the identity used by file-backed stores, which need no
	// sign-in
	LocalUserID = "local"

	// Keyring entries
	KeyringTokenUser      = "session-token"
	KeyringConnStringUser = "database-connection"

	// Reset confirmation phrase typed by the user before an attempt is
	// marked FAILED
	ResetConfirmPhrase = "RESET"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "ascend-"
	BackupFileSuffix = ".db"
)

// Session states
const (
	StateChecklist SessionState = iota
	StateHistory
	StateRules
	StateConfirmComplete
	StateCompletionCard
	StateConfirmReset
	StateConfirmClearHistory
)
