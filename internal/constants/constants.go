package constants

const (
	Version        = `0.2.0`
	AppName        = `knot`
	ConfigFile     = `cfg`
	ConfigFileType = `yaml`
	ConfigDir      = `.knot`
	LogFile        = `knot.log`
	EnvPrefix      = `KNOT`

	// DefaultVaultDir is relative to the user's home directory.
	DefaultVaultDir = `.knot_vault`

	RootCategory       = `[Root]`
	NoteExt            = `.md`
	DefaultNoteHeading = `# New Note`

	WordsPerMinute  = 200
	SyncMessageFmt  = `Manual Sync: %s`
	SyncTimeLayout  = `2006-01-02 15:04:05`
	PreviewMaxBytes = 64 * 1024
)
