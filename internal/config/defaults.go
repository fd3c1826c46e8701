package config

// DefaultConfig returns a Config populated with all default values.
func DefaultConfig() *Config {
	return &Config{
		Analysis: AnalysisConfig{
			CooccurrenceWindowMinutes: 30,
			MinClusterSize:            2,
			TrackRecurrence:           true,
		},
		Dedup: DedupConfig{
			MaxVisitsPerDomain: 5,
			MaxOtherTotal:      10,
		},
		Sanitize: SanitizeConfig{
			Level:           "standard",
			RedactEmails:    true,
			CollapseHome:    true,
			ExcludedDomains: DefaultExcludedDomains(),
		},
		Privacy: PrivacyConfig{
			DefaultTier: "classified",
		},
		Storage: StorageConfig{
			Path:          "~/.local/share/recap",
			SQLiteFile:    "recap.db",
			HistoryFile:   "topic-history.json",
			RetentionDays: 90,
		},
		LLM: LLMConfig{
			Enabled:   false,
			Model:     "gpt-4o-mini",
			APIKeyEnv: "OPENAI_API_KEY",
			BatchSize: 25,
		},
		Logging: LoggingConfig{
			Level: "info",
			File:  "",
		},
	}
}
