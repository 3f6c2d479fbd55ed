package models

// ExperienceLevel is the self-reported training experience of a user.
type ExperienceLevel string

const (
	LevelBeginner     ExperienceLevel = "Beginner"
	LevelIntermediate ExperienceLevel = "Intermediate"
	LevelAdvanced     ExperienceLevel = "Advanced"
)

// UserProfile is the single per-user profile. It is always replaced as a whole.
type UserProfile struct {
	Name            string          `json:"name"`
	Age             int             `json:"age"`
	Sport           string          `json:"sport"`
	ExperienceLevel ExperienceLevel `json:"experienceLevel"`
	Goals           string          `json:"goals"`
	Injuries        string          `json:"injuries"`
	Frequency       int             `json:"frequency"` // sessions per week
	AICoaching      bool            `json:"aiCoaching"`
}
