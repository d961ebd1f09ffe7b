package main

var appConfig = struct {
	AppName string

	Port  string
	Debug bool

	FeedURL       string   `yaml:"feed_url" toml:"feed_url"`
	TargetRatio   float64  `yaml:"target_ratio" toml:"target_ratio"`
	OptionalTypes []string `yaml:"optional_types" toml:"optional_types"`
	RefreshCron   string   `yaml:"refresh_cron" toml:"refresh_cron"`
	DBPath        string   `yaml:"db_path" toml:"db_path"`
}{
	AppName:     "ICS Attendance Server",
	Port:        "8080",
	TargetRatio: 0.75,
	DBPath:      "attendance.db",
}
