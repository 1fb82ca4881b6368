package cfg

type Cfg struct {
	// Pipeline configuration
	ConfigPath string
	LogFile    string
	DryRun     bool

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
