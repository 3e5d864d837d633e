package config

const (
	defaultPremuxDir  = "premux"
	defaultAudioDir   = "audio"
	defaultSubDir     = "subs"
	defaultFontsDir   = "fonts"
	defaultCommonDir  = "common"
	defaultWorkDir    = "."
	defaultLogDir     = "~/.local/share/animux/logs"
	defaultOutName    = "[$flag$] $show$ - $ep$$ver$ (BDRip 1920x1080 HEVC FLAC) [$crc32$]"
	defaultMKVTitle   = "$show$ - $ep$$ver$"
	defaultAudioLang  = "ja"
	defaultAudioName  = "Japanese"
	defaultSubLang    = "id"
	defaultMuxBinary  = "mkvmerge"
	defaultMuxTimeout = 900
	defaultLogFormat  = "console"
	defaultLogLevel   = "info"
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Paths: Paths{
			PremuxDir: defaultPremuxDir,
			AudioDir:  defaultAudioDir,
			SubDir:    defaultSubDir,
			FontsDir:  defaultFontsDir,
			CommonDir: defaultCommonDir,
			WorkDir:   defaultWorkDir,
			LogDir:    defaultLogDir,
		},
		Naming: Naming{
			OutName:  defaultOutName,
			MKVTitle: defaultMKVTitle,
		},
		Tracks: Tracks{
			AudioLanguage:    defaultAudioLang,
			AudioName:        defaultAudioName,
			SubtitleLanguage: defaultSubLang,
		},
		Mux: Mux{
			Binary:         defaultMuxBinary,
			TimeoutSeconds: defaultMuxTimeout,
			PremuxArgs:     []string{"--no-global-tags", "--no-chapters"},
		},
		Logging: Logging{
			Format: defaultLogFormat,
			Level:  defaultLogLevel,
		},
	}
}
