package model

// Settings are the tunables shared by every search command. They are read
// from flags and OASIS_* environment variables; Trace comes from XPT_FLG.
type Settings struct {
	Rounds     int    `mapstructure:"rounds"`      // Miller-Rabin rounds for ProbablyPrime
	CheckEvery int    `mapstructure:"check-every"` // positions between interrupt polls
	MaxHits    uint64 `mapstructure:"max-hits"`    // 0 means unlimited
	Verbose    bool   `mapstructure:"verbose"`
	Trace      string `mapstructure:"trace"` // hex bit set, see log.ParseTrace
}

const (
	DefaultRounds     = 25
	DefaultCheckEvery = 100
)

func DefaultSettings() Settings {
	return Settings{
		Rounds:     DefaultRounds,
		CheckEvery: DefaultCheckEvery,
	}
}

// Validate reports settings that would make a search meaningless.
func (s Settings) Validate() error {
	if s.Rounds < 1 {
		return configErrorf(CodeText, "rounds must be at least 1, got %d", s.Rounds)
	}
	if s.CheckEvery < 1 {
		return configErrorf(CodeText, "check-every must be at least 1, got %d", s.CheckEvery)
	}
	return nil
}
