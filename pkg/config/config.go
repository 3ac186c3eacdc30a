package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Inputs     InputsConfig
	Outputs    OutputsConfig
	Experiment ExperimentConfig
	Consent    ConsentConfig
	Topics     TopicsConfig
	Lexicon    LexiconConfig
	Logging    LoggingConfig
}

type InputsConfig struct {
	RosterFile    string
	CommentsFile  string
	PromptsFile   string
	CalendarFile  string
	Delimiter     string
	RecipientSep  string
	SchemaVersion string
}

type OutputsConfig struct {
	Dir          string
	RosterFile   string
	CommentsFile string
	PromptsFile  string
	SummaryFile  string
}

type ExperimentConfig struct {
	FirstDay         string
	LastDay          string
	SwitchDay        string
	ProximityWeeks   int
	PromptWindowDays int
}

type ConsentConfig struct {
	ConsentFile  string
	DropStudents []string
}

type TopicsConfig struct {
	NumTopics int
}

type LexiconConfig struct {
	PositiveFile string
	NegativeFile string
}

type LoggingConfig struct {
	Level      string
	Format     string
	OutputPath string
}

func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")
		viper.AddConfigPath("./config")
		viper.AddConfigPath("/etc/spoc-pipeline")
	}

	viper.SetEnvPrefix("SPOC")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

// Window parses the experiment bounds. The switch day is optional; a zero
// time is returned when it is unset.
func (e ExperimentConfig) Window() (first, last, switchDay time.Time, err error) {
	first, err = time.Parse("2006-01-02", e.FirstDay)
	if err != nil {
		return first, last, switchDay, fmt.Errorf("invalid experiment.firstDay: %w", err)
	}
	last, err = time.Parse("2006-01-02", e.LastDay)
	if err != nil {
		return first, last, switchDay, fmt.Errorf("invalid experiment.lastDay: %w", err)
	}
	if e.SwitchDay != "" {
		switchDay, err = time.Parse("2006-01-02", e.SwitchDay)
		if err != nil {
			return first, last, switchDay, fmt.Errorf("invalid experiment.switchDay: %w", err)
		}
	}
	return first, last, switchDay, nil
}

func setDefaults() {
	viper.SetDefault("inputs.rosterFile", "./data/spoc_full_data.csv")
	viper.SetDefault("inputs.commentsFile", "./data/spoc_comment_data.csv")
	viper.SetDefault("inputs.promptsFile", "./data/spoc_prompt_data.csv")
	viper.SetDefault("inputs.calendarFile", "./data/lecture_calendar.yaml")
	viper.SetDefault("inputs.delimiter", ",")
	viper.SetDefault("inputs.recipientSep", ";")
	viper.SetDefault("inputs.schemaVersion", "v2")

	viper.SetDefault("outputs.dir", "./out")
	viper.SetDefault("outputs.rosterFile", "roster_enriched.csv")
	viper.SetDefault("outputs.commentsFile", "comments_enriched.csv")
	viper.SetDefault("outputs.promptsFile", "prompts_redacted.csv")
	viper.SetDefault("outputs.summaryFile", "run_summary.prom")

	viper.SetDefault("experiment.firstDay", "2015-01-01")
	viper.SetDefault("experiment.lastDay", "2015-05-05")
	viper.SetDefault("experiment.switchDay", "")
	viper.SetDefault("experiment.proximityWeeks", 3)
	viper.SetDefault("experiment.promptWindowDays", 3)

	viper.SetDefault("consent.consentFile", "./data/consenting_students.txt")
	viper.SetDefault("consent.dropStudents", []string{})

	viper.SetDefault("topics.numTopics", 7)

	viper.SetDefault("lexicon.positiveFile", "./data/positive.txt")
	viper.SetDefault("lexicon.negativeFile", "./data/negative.txt")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "json")
	viper.SetDefault("logging.outputPath", "stdout")
}
