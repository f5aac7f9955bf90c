package survey

// QuestionType constants define how a question is asked and which transition
// fields are legal for it.
const (
	// TypeYesNo expects a boolean answer and branches on it.
	TypeYesNo = "yes_no"
	// TypeMultipleChoice expects one (or, with allow_multiple, several) of a
	// fixed option list.
	TypeMultipleChoice = "multiple_choice"
	// TypeRating expects an integer inside an inclusive range.
	TypeRating = "rating"
	// TypeOpenEnded expects free text; content never affects branching.
	TypeOpenEnded = "open_ended"
)

// Question represents one node in the survey graph.
// Type-specific fields are populated only for the matching Type; the
// validator rejects configs that set them elsewhere.
type Question struct {
	ID       string `json:"id" yaml:"id" mapstructure:"id"`
	Type     string `json:"type" yaml:"type" mapstructure:"type"`
	Text     string `json:"text" yaml:"text" mapstructure:"text"`
	Required bool   `json:"required,omitempty" yaml:"required,omitempty" mapstructure:"required"`

	// Multiple choice configuration.
	Options       []string `json:"options,omitempty" yaml:"options,omitempty" mapstructure:"options"`
	AllowMultiple bool     `json:"allow_multiple,omitempty" yaml:"allow_multiple,omitempty" mapstructure:"allow_multiple"`

	// Rating configuration. Bounds are inclusive; MinLabel/MaxLabel are
	// display-only hints for the voice agent.
	MinValue int    `json:"min_value,omitempty" yaml:"min_value,omitempty" mapstructure:"min_value"`
	MaxValue int    `json:"max_value,omitempty" yaml:"max_value,omitempty" mapstructure:"max_value"`
	MinLabel string `json:"min_label,omitempty" yaml:"min_label,omitempty" mapstructure:"min_label"`
	MaxLabel string `json:"max_label,omitempty" yaml:"max_label,omitempty" mapstructure:"max_label"`

	// Open-ended configuration.
	MaxLength   int    `json:"max_length,omitempty" yaml:"max_length,omitempty" mapstructure:"max_length"`
	Placeholder string `json:"placeholder,omitempty" yaml:"placeholder,omitempty" mapstructure:"placeholder"`

	// Transitions. NextOnYes/NextOnNo apply to yes_no questions and must both
	// be defined (possibly terminal). Next is the default edge for every other
	// type. NextByOption and NextByRange are finer-grained overrides.
	NextOnYes    Target            `json:"next_on_yes,omitzero" yaml:"next_on_yes,omitempty" mapstructure:"next_on_yes"`
	NextOnNo     Target            `json:"next_on_no,omitzero" yaml:"next_on_no,omitempty" mapstructure:"next_on_no"`
	Next         Target            `json:"next,omitzero" yaml:"next,omitempty" mapstructure:"next"`
	NextByOption map[string]string `json:"next_by_option,omitempty" yaml:"next_by_option,omitempty" mapstructure:"next_by_option"`
	NextByRange  []RangeBranch     `json:"next_by_range,omitempty" yaml:"next_by_range,omitempty" mapstructure:"next_by_range"`
}

// RangeBranch maps an inclusive rating interval to a following question.
type RangeBranch struct {
	Min  int    `json:"min" yaml:"min" mapstructure:"min"`
	Max  int    `json:"max" yaml:"max" mapstructure:"max"`
	Next Target `json:"next" yaml:"next" mapstructure:"next"`
}

// Contains reports whether v falls inside the branch bounds.
func (b RangeBranch) Contains(v int) bool {
	return v >= b.Min && v <= b.Max
}

// HasOption reports whether opt is one of the question's declared options.
func (q *Question) HasOption(opt string) bool {
	for _, o := range q.Options {
		if o == opt {
			return true
		}
	}
	return false
}

// Config is the whole survey graph plus session-level behavior. It is
// treated as an immutable snapshot for the lifetime of a call.
type Config struct {
	Enabled           bool       `json:"enabled" yaml:"enabled" mapstructure:"enabled"`
	Questions         []Question `json:"questions" yaml:"questions" mapstructure:"questions"`
	StartQuestion     string     `json:"start_question,omitempty" yaml:"start_question,omitempty" mapstructure:"start_question"`
	CompletionMessage string     `json:"completion_message,omitempty" yaml:"completion_message,omitempty" mapstructure:"completion_message"`
	AbortMessage      string     `json:"abort_message,omitempty" yaml:"abort_message,omitempty" mapstructure:"abort_message"`
	AllowSkip         bool       `json:"allow_skip,omitempty" yaml:"allow_skip,omitempty" mapstructure:"allow_skip"`
	ShowProgress      bool       `json:"show_progress,omitempty" yaml:"show_progress,omitempty" mapstructure:"show_progress"`
}

// Question returns the question with the given id, or nil if absent.
// Configs are small (a phone survey rarely exceeds a few dozen questions),
// so a linear scan keeps the snapshot free of derived indexes.
func (c *Config) Question(id string) *Question {
	for i := range c.Questions {
		if c.Questions[i].ID == id {
			return &c.Questions[i]
		}
	}
	return nil
}

// Start resolves the first question id: StartQuestion when set, otherwise
// the first question in declared order. Empty when the config has no
// questions.
func (c *Config) Start() string {
	if c.StartQuestion != "" {
		return c.StartQuestion
	}
	if len(c.Questions) > 0 {
		return c.Questions[0].ID
	}
	return ""
}
